package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ScopeContext bundles the per-call structures a running opcode handler
// needs: stack, memory, and the contract scope they belong to. Unlike the
// frame's pc and gas, these are addressed by reference throughout a frame's
// lifetime.
type ScopeContext struct {
	Memory   *Memory
	Stack    *Stack
	Contract *Contract
}

// Caller returns the current scope's caller address.
func (ctx *ScopeContext) Caller() common.Address { return ctx.Contract.Caller() }

// Address returns the address this scope of execution runs at.
func (ctx *ScopeContext) Address() common.Address { return ctx.Contract.Address() }

// CallValue returns the value carried into this frame.
func (ctx *ScopeContext) CallValue() *uint256.Int { return ctx.Contract.Value() }

// CallInput returns the frame's input/calldata. Callers must not modify it.
func (ctx *ScopeContext) CallInput() []byte { return ctx.Contract.Input }
