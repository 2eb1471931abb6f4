package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// CallKind selects the frame-boundary semantics a Message invokes.
type CallKind int

const (
	Call CallKind = iota
	CallCode
	DelegateCall
	StaticCallKind
	Create
	Create2
)

func (k CallKind) String() string {
	switch k {
	case Call:
		return "CALL"
	case CallCode:
		return "CALLCODE"
	case DelegateCall:
		return "DELEGATECALL"
	case StaticCallKind:
		return "STATICCALL"
	case Create:
		return "CREATE"
	case Create2:
		return "CREATE2"
	default:
		return "UNKNOWN"
	}
}

// Flags is a bitset over frame modifiers.
type Flags uint32

const (
	FlagStatic Flags = 1 << iota
)

// Message describes a single frame invocation: the immutable input an
// interpreter frame is constructed from.
type Message struct {
	Kind      CallKind
	Flags     Flags
	Depth     int32
	Gas       int64
	Recipient common.Address
	Sender    common.Address
	Input     []byte
	Value     *uint256.Int

	// CodeAddress is the address code is read from. It equals Recipient for
	// every kind except CallCode and DelegateCall, where the frame runs in
	// Recipient's storage context but executes someone else's code.
	CodeAddress common.Address
	Create2Salt [32]byte
}

// IsStatic reports whether the frame forbids state-mutating opcodes.
func (m *Message) IsStatic() bool {
	return m.Flags&FlagStatic != 0
}
