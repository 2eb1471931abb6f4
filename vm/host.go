package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// StorageStatus encodes the transition an SSTORE caused, which in turn
// determines the refund the host should account.
type StorageStatus int

const (
	StorageUnchanged StorageStatus = iota
	StorageModified
	StorageAdded
	StorageDeleted
	StorageModifiedRestored
	StorageDeletedAdded
	StorageAddedDeleted
	StorageDeletedRestored
)

// AccessStatus reports whether an address/slot was already warm under the
// EIP-2929 access list before the current access.
type AccessStatus int

const (
	Cold AccessStatus = iota
	Warm
)

// TxContext carries the block/transaction-scoped values exposed to BLOCKHASH,
// COINBASE, TIMESTAMP, and their siblings.
type TxContext struct {
	GasPrice   *uint256.Int
	Origin     common.Address
	Coinbase   common.Address
	Number     uint64
	Timestamp  uint64
	GasLimit   uint64
	Difficulty *uint256.Int // PREVRANDAO post-Merge
	ChainID    *uint256.Int
	BaseFee    *uint256.Int
}

// Host is the set of world-state queries and mutations the interpreter
// consumes. The interpreter never mutates state directly; every opcode that
// touches the outside world goes through one of these methods.
type Host interface {
	AccountExists(addr common.Address) bool
	GetStorage(addr common.Address, key common.Hash) common.Hash
	SetStorage(addr common.Address, key, value common.Hash) StorageStatus
	GetBalance(addr common.Address) *uint256.Int
	GetCodeSize(addr common.Address) int
	GetCodeHash(addr common.Address) common.Hash
	CopyCode(addr common.Address, offset uint64, dst []byte) int

	Selfdestruct(addr, beneficiary common.Address)

	Call(msg *Message) Result

	GetTxContext() TxContext
	GetBlockHash(number uint64) common.Hash

	EmitLog(addr common.Address, data []byte, topics []common.Hash)

	AccessAccount(addr common.Address) AccessStatus
	AccessStorage(addr common.Address, key common.Hash) AccessStatus

	AddRefund(amount uint64)
	SubRefund(amount uint64)
}
