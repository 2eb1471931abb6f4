package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// MemoryHost is a minimal, in-memory Host used by the package's own tests
// and by callers who want to exercise Execute without wiring a full
// world-state backend. It is not meant to back a production chain: balances,
// code, and storage all live in plain maps with no persistence, and Call
// recurses straight back into ExecuteAnalyzed for nested frames.
type MemoryHost struct {
	Rev Revision

	Balances map[common.Address]*uint256.Int
	Codes    map[common.Address][]byte
	Storage  map[common.Address]map[common.Hash]common.Hash
	Accounts map[common.Address]bool

	TxCtx TxContext

	warmAccounts map[common.Address]bool
	warmSlots    map[common.Address]map[common.Hash]bool
	refund       uint64
	logs         []hostLog
	nextAddr     uint64
}

type hostLog struct {
	Address common.Address
	Data    []byte
	Topics  []common.Hash
}

// NewMemoryHost builds an empty MemoryHost for the given revision.
func NewMemoryHost(rev Revision, txCtx TxContext) *MemoryHost {
	return &MemoryHost{
		Rev:          rev,
		Balances:     make(map[common.Address]*uint256.Int),
		Codes:        make(map[common.Address][]byte),
		Storage:      make(map[common.Address]map[common.Hash]common.Hash),
		Accounts:     make(map[common.Address]bool),
		TxCtx:        txCtx,
		warmAccounts: make(map[common.Address]bool),
		warmSlots:    make(map[common.Address]map[common.Hash]bool),
	}
}

func (h *MemoryHost) AccountExists(addr common.Address) bool {
	return h.Accounts[addr]
}

func (h *MemoryHost) GetStorage(addr common.Address, key common.Hash) common.Hash {
	slots := h.Storage[addr]
	if slots == nil {
		return common.Hash{}
	}
	return slots[key]
}

func (h *MemoryHost) SetStorage(addr common.Address, key, value common.Hash) StorageStatus {
	slots := h.Storage[addr]
	if slots == nil {
		slots = make(map[common.Hash]common.Hash)
		h.Storage[addr] = slots
	}
	current := slots[key]
	slots[key] = value

	switch {
	case current == value:
		return StorageUnchanged
	case current == (common.Hash{}):
		return StorageAdded
	case value == (common.Hash{}):
		return StorageDeleted
	default:
		return StorageModified
	}
}

func (h *MemoryHost) GetBalance(addr common.Address) *uint256.Int {
	if b, ok := h.Balances[addr]; ok {
		return b
	}
	return new(uint256.Int)
}

func (h *MemoryHost) GetCodeSize(addr common.Address) int {
	return len(h.Codes[addr])
}

func (h *MemoryHost) GetCodeHash(addr common.Address) common.Hash {
	code := h.Codes[addr]
	if len(code) == 0 {
		return common.Hash{}
	}
	return crypto.Keccak256Hash(code)
}

func (h *MemoryHost) CopyCode(addr common.Address, offset uint64, dst []byte) int {
	code := h.Codes[addr]
	return copy(dst, GetData(code, offset, uint64(len(dst))))
}

func (h *MemoryHost) Selfdestruct(addr, beneficiary common.Address) {
	bal := h.GetBalance(addr)
	ben := h.GetBalance(beneficiary)
	h.Balances[beneficiary] = new(uint256.Int).Add(ben, bal)
	h.Balances[addr] = new(uint256.Int)
	delete(h.Codes, addr)
	delete(h.Accounts, addr)
}

func (h *MemoryHost) Call(msg *Message) Result {
	switch msg.Kind {
	case Create, Create2:
		addr := h.allocateAddress()
		h.Accounts[addr] = true
		res := ExecuteAnalyzed(h, h.Rev, *msg, AnalyzeCode(msg.Input))
		if res.Status == Success {
			h.Codes[addr] = res.Output
			res.CreateAddr = addr
		}
		return res
	default:
		code := h.Codes[msg.CodeAddress]
		return ExecuteAnalyzed(h, h.Rev, *msg, AnalyzeCode(code))
	}
}

func (h *MemoryHost) GetTxContext() TxContext { return h.TxCtx }

func (h *MemoryHost) GetBlockHash(number uint64) common.Hash {
	return common.Hash{}
}

func (h *MemoryHost) EmitLog(addr common.Address, data []byte, topics []common.Hash) {
	h.logs = append(h.logs, hostLog{Address: addr, Data: data, Topics: topics})
}

func (h *MemoryHost) AccessAccount(addr common.Address) AccessStatus {
	if h.warmAccounts[addr] {
		return Warm
	}
	h.warmAccounts[addr] = true
	return Cold
}

func (h *MemoryHost) AccessStorage(addr common.Address, key common.Hash) AccessStatus {
	slots := h.warmSlots[addr]
	if slots == nil {
		slots = make(map[common.Hash]bool)
		h.warmSlots[addr] = slots
	}
	if slots[key] {
		return Warm
	}
	slots[key] = true
	return Cold
}

func (h *MemoryHost) AddRefund(amount uint64) { h.refund += amount }
func (h *MemoryHost) SubRefund(amount uint64) {
	if amount > h.refund {
		h.refund = 0
		return
	}
	h.refund -= amount
}

func (h *MemoryHost) allocateAddress() common.Address {
	h.nextAddr++
	var addr common.Address
	addr[19] = byte(h.nextAddr)
	addr[18] = byte(h.nextAddr >> 8)
	return addr
}
