package vm

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/params"
)

// Interpreter drives a single execution frame: it owns the jump table for
// the active revision and the scratch state (hasher, return-data buffer)
// that is only ever touched within one Run call.
//
// An Interpreter is not safe for concurrent use. Execute/ExecuteAnalyzed
// build a fresh one per call.
type Interpreter struct {
	host   Host
	rev    Revision
	config Config
	table  *JumpTable

	txContext TxContext
	depth     int32
	msg       Message

	hasher    crypto.KeccakState
	hasherBuf [32]byte

	readOnly   bool
	returnData []byte
}

func clearingRefundFor(rev Revision) uint64 {
	switch {
	case rev.At(London):
		return params.SstoreClearsScheduleRefundEIP3529
	case rev.At(Istanbul):
		return params15000
	default:
		return params15000
	}
}

func (in *Interpreter) clearingRefund() uint64 {
	return clearingRefundFor(in.rev)
}

// NewInterpreter builds an Interpreter for one call frame.
func NewInterpreter(host Host, rev Revision, config Config, txContext TxContext, msg Message) *Interpreter {
	table := jumpTableFor(rev)
	for _, eip := range config.ExtraEips {
		_ = eip // no optional EIPs wired yet; extension point for future jump-table overlays
	}
	return &Interpreter{
		host:      host,
		rev:       rev,
		config:    config,
		table:     table,
		txContext: txContext,
		depth:     msg.Depth,
		msg:       msg,
	}
}

// Run executes contract code starting at pc 0 until a STOP/RETURN/REVERT or
// an error terminates the frame. The returned []byte is the frame's output
// (RETURN/REVERT data); it is nil on STOP or any non-revert error.
func (in *Interpreter) Run(contract *Contract, input []byte, readOnly bool) ([]byte, error) {
	in.returnData = nil
	contract.Input = input

	if readOnly && !in.readOnly {
		in.readOnly = true
		defer func() { in.readOnly = false }()
	}

	var (
		op          OpCode
		mem         = newMemory()
		stack       = newstack()
		pc          = uint64(0)
		cost        uint64
		scope       = &ScopeContext{Memory: mem, Stack: stack, Contract: contract}
		ret         []byte
		err         error
		tracer      = in.config.tracer()
	)
	defer returnStack(stack)

	tracer.OnExecutionStart(in.rev, &in.msg, contract.Code)

	for {
		op = contract.GetOp(pc)
		operation := in.table[op]
		if operation == nil {
			log.Trace("invalid opcode", "op", op, "pc", pc, "depth", in.depth)
			return nil, &ErrInvalidOpCode{OpCode: op}
		}

		cost = operation.constantGas
		if !contract.UseGas(cost) {
			return nil, ErrOutOfGas
		}

		if sLen := stack.len(); sLen < operation.minStack {
			return nil, newStackUnderflow(sLen, operation.minStack)
		} else if sLen > operation.maxStack {
			return nil, newStackOverflow(sLen, operation.maxStack)
		}

		if in.readOnly && operation.writes {
			return nil, ErrWriteProtection
		}

		var memorySize uint64
		if operation.memorySize != nil {
			size, overflow := operation.memorySize(stack)
			if overflow {
				return nil, ErrGasUintOverflow
			}
			// Round up to whole words so memory stays a multiple of 32 bytes.
			memorySize = toWordSize(size) * 32
		}

		if operation.dynamicGas != nil {
			var dynamicCost uint64
			dynamicCost, err = operation.dynamicGas(in.host, contract, stack, mem, memorySize)
			if err != nil {
				return nil, err
			}
			if !contract.UseGas(dynamicCost) {
				return nil, ErrOutOfGas
			}
		}
		if memorySize > 0 {
			mem.Resize(memorySize)
		}

		if pc < uint64(len(contract.Code)) {
			tracer.OnInstructionStart(pc, op, contract.Gas, scope)
		}

		ret, err = operation.execute(&pc, in, scope)
		if err != nil {
			break
		}
		pc++
	}

	if err == errStopToken {
		err = nil
	}
	if err != nil {
		log.Debug("frame terminated", "depth", in.depth, "pc", pc, "gas", contract.Gas, "err", err)
	}
	in.returnData = ret
	tracer.OnExecutionEnd(&Result{Status: statusFromError(err), GasLeft: int64(contract.Gas), Output: ret})
	return ret, err
}
