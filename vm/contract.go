package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Contract is the per-call scope: the frame's code, input, remaining gas,
// and addressing triple. It is constructed once per frame and discarded on
// return.
type Contract struct {
	CallerAddress common.Address
	address       common.Address
	Code          []byte
	CodeHash      common.Hash
	Input         []byte
	Gas           uint64
	value         *uint256.Int

	analysis *CodeAnalysis
}

// NewContract builds the Contract for a frame given its Message and the
// analysis of the code it is about to run.
func NewContract(msg *Message, analysis *CodeAnalysis) *Contract {
	c := &Contract{
		CallerAddress: msg.Sender,
		address:       msg.Recipient,
		Input:         msg.Input,
		Gas:           uint64(msg.Gas),
		value:         msg.Value,
		analysis:      analysis,
	}
	if analysis != nil {
		c.Code = analysis.code
	}
	return c
}

func (c *Contract) Address() common.Address { return c.address }
func (c *Contract) Caller() common.Address  { return c.CallerAddress }
func (c *Contract) Value() *uint256.Int     { return c.value }

// GetOp returns the opcode at offset n in the padded code, or STOP past the
// end of the padded buffer (which should never actually be reached given
// the 33-byte pad).
func (c *Contract) GetOp(n uint64) OpCode {
	if c.analysis != nil && n < uint64(len(c.analysis.paddedCode)) {
		return OpCode(c.analysis.paddedCode[n])
	}
	return STOP
}

// UseGas attempts to deduct gas from the contract's remaining balance.
// Reports false (without mutating Gas) if insufficient.
func (c *Contract) UseGas(gas uint64) bool {
	if c.Gas < gas {
		return false
	}
	c.Gas -= gas
	return true
}

// ValidJumpdest reports whether dest is a JUMPDEST not inside PUSH data.
func (c *Contract) ValidJumpdest(dest *uint256.Int) bool {
	udest, overflow := dest.Uint64WithOverflow()
	if overflow || c.analysis == nil {
		return false
	}
	return c.analysis.ValidJumpdest(udest)
}
