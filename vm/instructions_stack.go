package vm

import "github.com/holiman/uint256"

func opPop(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.pop()
	return nil, nil
}

// opPush builds the handler for PUSH<size>. size is in [1,32]; the bytes are
// read from the padded code so a truncated trailing PUSH sees implicit
// zero bytes, per spec.md §3/§4.2.
func opPush(size int) executionFunc {
	return func(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
		codeLen := len(scope.Contract.analysis.paddedCode)
		start := int(*pc) + 1
		var word [32]byte
		if start < codeLen {
			end := start + size
			if end > codeLen {
				end = codeLen
			}
			copy(word[32-size:], scope.Contract.analysis.paddedCode[start:end])
		}
		scope.Stack.push(new(uint256.Int).SetBytes(word[:]))
		*pc += uint64(size)
		return nil, nil
	}
}

func opPush0(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int))
	return nil, nil
}

func opDup(n int) executionFunc {
	return func(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
		scope.Stack.dup(n)
		return nil, nil
	}
}

func opSwap(n int) executionFunc {
	return func(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
		scope.Stack.swap(n)
		return nil, nil
	}
}

func opPc(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(*pc))
	return nil, nil
}

func opMsize(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(uint64(scope.Memory.Len())))
	return nil, nil
}

func opGas(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(scope.Contract.Gas))
	return nil, nil
}

func opJumpdest(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	return nil, nil
}

func opStop(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	return nil, errStopToken
}

func opUndefined(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	return nil, &ErrInvalidOpCode{OpCode: scope.Contract.GetOp(*pc)}
}
