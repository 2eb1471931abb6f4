package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

func opMload(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	v := scope.Stack.peek()
	offset := v.Uint64()
	v.SetBytes(scope.Memory.GetPtr(int64(offset), 32))
	return nil, nil
}

func opMstore(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	mStart, val := scope.Stack.pop(), scope.Stack.pop()
	scope.Memory.Set32(mStart.Uint64(), &val)
	return nil, nil
}

func opMstore8(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	off, val := scope.Stack.pop(), scope.Stack.pop()
	scope.Memory.store[off.Uint64()] = byte(val.Uint64())
	return nil, nil
}

func opSha3(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.pop(), scope.Stack.peek()
	data := scope.Memory.GetPtr(int64(offset.Uint64()), int64(size.Uint64()))

	if in.hasher == nil {
		in.hasher = crypto.NewKeccakState()
	} else {
		in.hasher.Reset()
	}
	in.hasher.Write(data)
	in.hasher.Read(in.hasherBuf[:])

	size.SetBytes(in.hasherBuf[:])
	return nil, nil
}

func opReturn(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.pop(), scope.Stack.pop()
	ret := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	return ret, errStopToken
}

func opRevert(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.pop(), scope.Stack.pop()
	ret := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	return ret, ErrExecutionReverted
}

func makeLog(n int) executionFunc {
	return func(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
		if in.readOnly {
			return nil, ErrWriteProtection
		}
		mStart, mSize := scope.Stack.pop(), scope.Stack.pop()
		topics := make([]uint256.Int, n)
		for i := 0; i < n; i++ {
			topics[i] = scope.Stack.pop()
		}
		data := scope.Memory.GetCopy(int64(mStart.Uint64()), int64(mSize.Uint64()))
		hashes := make([]common.Hash, n)
		for i, t := range topics {
			hashes[i] = common.Hash(t.Bytes32())
		}
		in.host.EmitLog(scope.Contract.Address(), data, hashes)
		return nil, nil
	}
}

func opLog(n int) executionFunc {
	return makeLog(n)
}
