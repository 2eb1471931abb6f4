package vm

func opJump(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	dest := scope.Stack.pop()
	if !scope.Contract.ValidJumpdest(&dest) {
		return nil, ErrInvalidJump
	}
	*pc = dest.Uint64() - 1 // dispatcher advances by 1 after the handler returns
	return nil, nil
}

func opJumpi(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	dest, cond := scope.Stack.pop(), scope.Stack.pop()
	if !cond.IsZero() {
		if !scope.Contract.ValidJumpdest(&dest) {
			return nil, ErrInvalidJump
		}
		*pc = dest.Uint64() - 1
	}
	return nil, nil
}

func opSelfdestruct(pc *uint64, in *Interpreter, scope *ScopeContext) ([]byte, error) {
	if in.readOnly {
		return nil, ErrWriteProtection
	}
	beneficiary := scope.Stack.pop()
	in.host.Selfdestruct(scope.Contract.Address(), addressFromWord(&beneficiary))
	return nil, errStopToken
}
