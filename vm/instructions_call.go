package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const maxCallDepth = 1024

// callGas implements the 63/64ths forwarding rule (EIP-150): at most
// available-available/64 gas may be forwarded to a child frame, and never
// more than the caller explicitly requested.
func callGas(availableGas uint64, requested *uint256.Int) uint64 {
	available := availableGas - availableGas/64
	if !requested.IsUint64() || requested.Uint64() > available {
		return available
	}
	return requested.Uint64()
}

func pushCallResult(scope *ScopeContext, in *Interpreter, res Result) {
	in.returnData = res.Output
	if res.Status == Success {
		scope.Stack.push(new(uint256.Int).SetOne())
	} else {
		scope.Stack.push(new(uint256.Int))
	}
}

// childFlags carries the parent frame's static-mode bit down to a child
// Message. Every frame gets its own Interpreter (Host.Call builds a fresh
// one per nested call, see vm/evm.go's MemoryHost.Call), so read-only mode
// can't ride along on a shared Go call stack the way go-ethereum's single
// interpreter does it — it has to be threaded through the Message instead
// (EIP-214: a CALL/CALLCODE/DELEGATECALL issued from a static frame must
// itself run static).
func childFlags(in *Interpreter, flags Flags) Flags {
	if in.readOnly {
		return flags | FlagStatic
	}
	return flags
}

func writeReturnData(scope *ScopeContext, retOffset, retSize uint64, output []byte) {
	if retSize == 0 {
		return
	}
	n := uint64(len(output))
	if n > retSize {
		n = retSize
	}
	scope.Memory.Set(retOffset, n, output[:n])
}

// pushDepthExceeded handles the call-depth-1024 edge case: push failure
// without ever invoking the host.
func pushDepthExceeded(in *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int))
	in.returnData = nil
	return nil, nil
}

func opCall(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	stack := scope.Stack
	gasWord := stack.pop()
	addrWord := stack.pop()
	value := stack.pop()
	inOffset, inSize := stack.pop(), stack.pop()
	retOffset, retSize := stack.pop(), stack.pop()

	if in.readOnly && !value.IsZero() {
		return nil, ErrWriteProtection
	}
	if in.depth+1 > maxCallDepth {
		return pushDepthExceeded(in, scope)
	}

	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))
	gas := callGas(scope.Contract.Gas, &gasWord)
	if !scope.Contract.UseGas(gas) {
		return nil, ErrOutOfGas
	}

	addr := addressFromWord(&addrWord)
	res := in.host.Call(&Message{
		Kind:        Call,
		Flags:       childFlags(in, 0),
		Depth:       in.depth + 1,
		Gas:         int64(gas),
		Recipient:   addr,
		CodeAddress: addr,
		Sender:      scope.Contract.Address(),
		Input:       args,
		Value:       &value,
	})
	if res.GasLeft > 0 {
		scope.Contract.Gas += uint64(res.GasLeft)
	}
	writeReturnData(scope, retOffset.Uint64(), retSize.Uint64(), res.Output)
	pushCallResult(scope, in, res)
	return nil, nil
}

func opCallCode(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	stack := scope.Stack
	gasWord := stack.pop()
	addrWord := stack.pop()
	value := stack.pop()
	inOffset, inSize := stack.pop(), stack.pop()
	retOffset, retSize := stack.pop(), stack.pop()

	if in.depth+1 > maxCallDepth {
		return pushDepthExceeded(in, scope)
	}

	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))
	gas := callGas(scope.Contract.Gas, &gasWord)
	if !scope.Contract.UseGas(gas) {
		return nil, ErrOutOfGas
	}

	res := in.host.Call(&Message{
		Kind:        CallCode,
		Flags:       childFlags(in, 0),
		Depth:       in.depth + 1,
		Gas:         int64(gas),
		Recipient:   scope.Contract.Address(),
		CodeAddress: addressFromWord(&addrWord),
		Sender:      scope.Contract.Address(),
		Input:       args,
		Value:       &value,
	})
	if res.GasLeft > 0 {
		scope.Contract.Gas += uint64(res.GasLeft)
	}
	writeReturnData(scope, retOffset.Uint64(), retSize.Uint64(), res.Output)
	pushCallResult(scope, in, res)
	return nil, nil
}

func opDelegateCall(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	stack := scope.Stack
	gasWord := stack.pop()
	addrWord := stack.pop()
	inOffset, inSize := stack.pop(), stack.pop()
	retOffset, retSize := stack.pop(), stack.pop()

	if in.depth+1 > maxCallDepth {
		return pushDepthExceeded(in, scope)
	}

	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))
	gas := callGas(scope.Contract.Gas, &gasWord)
	if !scope.Contract.UseGas(gas) {
		return nil, ErrOutOfGas
	}

	res := in.host.Call(&Message{
		Kind:        DelegateCall,
		Flags:       childFlags(in, 0),
		Depth:       in.depth + 1,
		Gas:         int64(gas),
		Recipient:   scope.Contract.Address(),
		CodeAddress: addressFromWord(&addrWord),
		Sender:      scope.Contract.Caller(),
		Input:       args,
		Value:       scope.Contract.Value(),
	})
	if res.GasLeft > 0 {
		scope.Contract.Gas += uint64(res.GasLeft)
	}
	writeReturnData(scope, retOffset.Uint64(), retSize.Uint64(), res.Output)
	pushCallResult(scope, in, res)
	return nil, nil
}

func opStaticCall(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	stack := scope.Stack
	gasWord := stack.pop()
	addrWord := stack.pop()
	inOffset, inSize := stack.pop(), stack.pop()
	retOffset, retSize := stack.pop(), stack.pop()

	if in.depth+1 > maxCallDepth {
		return pushDepthExceeded(in, scope)
	}

	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))
	gas := callGas(scope.Contract.Gas, &gasWord)
	if !scope.Contract.UseGas(gas) {
		return nil, ErrOutOfGas
	}

	addr := addressFromWord(&addrWord)
	res := in.host.Call(&Message{
		Kind:        StaticCallKind,
		Flags:       childFlags(in, FlagStatic),
		Depth:       in.depth + 1,
		Gas:         int64(gas),
		Recipient:   addr,
		CodeAddress: addr,
		Sender:      scope.Contract.Address(),
		Input:       args,
		Value:       new(uint256.Int),
	})
	if res.GasLeft > 0 {
		scope.Contract.Gas += uint64(res.GasLeft)
	}
	writeReturnData(scope, retOffset.Uint64(), retSize.Uint64(), res.Output)
	pushCallResult(scope, in, res)
	return nil, nil
}

func opCreate(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	return createCommon(in, scope, Create, false)
}

func opCreate2(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	return createCommon(in, scope, Create2, true)
}

func createCommon(in *Interpreter, scope *ScopeContext, kind CallKind, hasSalt bool) ([]byte, error) {
	if in.readOnly {
		return nil, ErrWriteProtection
	}
	stack := scope.Stack
	value := stack.pop()
	offset, size := stack.pop(), stack.pop()
	var salt uint256.Int
	if hasSalt {
		salt = stack.pop()
	}

	if in.depth+1 > maxCallDepth {
		return pushDepthExceeded(in, scope)
	}

	initCode := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	if in.host.GetBalance(scope.Contract.Address()).Lt(&value) {
		return pushDepthExceeded(in, scope)
	}

	gas := scope.Contract.Gas - scope.Contract.Gas/64
	if !scope.Contract.UseGas(gas) {
		return nil, ErrOutOfGas
	}

	msg := &Message{
		Kind:   kind,
		Depth:  in.depth + 1,
		Gas:    int64(gas),
		Sender: scope.Contract.Address(),
		Input:  initCode,
		Value:  &value,
	}
	if hasSalt {
		msg.Create2Salt = salt.Bytes32()
	}

	res := in.host.Call(msg)
	if res.GasLeft > 0 {
		scope.Contract.Gas += uint64(res.GasLeft)
	}
	in.returnData = res.Output
	if res.Status == Success {
		scope.Stack.push(new(uint256.Int).SetBytes(common.Address(res.CreateAddr).Bytes()))
	} else {
		scope.Stack.push(new(uint256.Int))
	}
	return nil, nil
}
