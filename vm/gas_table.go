package vm

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/params"
)

// Gas costs for the simplest opcodes, named the way the teacher's own
// gas_table.go names them rather than pulling every tiny constant from
// params.
const (
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
	GasExtStep     uint64 = 20
)

func gasExpFrontier(_ Host, _ *Contract, stack *Stack, _ *Memory, _ uint64) (uint64, error) {
	expByteLen := uint64((stack.Back(1).BitLen() + 7) / 8)
	gas, overflow := math.SafeMul(expByteLen, params.ExpByteFrontier)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	if gas, overflow = math.SafeAdd(gas, GasSlowStep); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func gasExpEIP158(_ Host, _ *Contract, stack *Stack, _ *Memory, _ uint64) (uint64, error) {
	expByteLen := uint64((stack.Back(1).BitLen() + 7) / 8)
	gas, overflow := math.SafeMul(expByteLen, params.ExpByteEIP158)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	if gas, overflow = math.SafeAdd(gas, GasSlowStep); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

// memoryCopierGas builds the dynamic-gas function for opcodes that copy
// memorySize bytes and additionally charge params.CopyGas per word, where
// stackpos names the stack slot holding the copy length.
func memoryCopierGas(stackpos int) gasFunc {
	return func(_ Host, _ *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
		gas, err := memoryGasCost(mem, memorySize)
		if err != nil {
			return 0, err
		}
		words, overflow := stack.Back(stackpos).Uint64WithOverflow()
		if overflow {
			return 0, ErrGasUintOverflow
		}
		if words, overflow = math.SafeMul(toWordSize(words), params.CopyGas); overflow {
			return 0, ErrGasUintOverflow
		}
		if gas, overflow = math.SafeAdd(gas, words); overflow {
			return 0, ErrGasUintOverflow
		}
		return gas, nil
	}
}

var (
	gasCallDataCopy   = memoryCopierGas(2)
	gasCodeCopy       = memoryCopierGas(2)
	gasExtCodeCopy    = memoryCopierGas(3)
	gasReturnDataCopy = memoryCopierGas(2)
)

func gasSha3(_ Host, _ *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	wordGas, overflow := stack.Back(1).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	if wordGas, overflow = math.SafeMul(toWordSize(wordGas), params.Keccak256WordGas); overflow {
		return 0, ErrGasUintOverflow
	}
	if gas, overflow = math.SafeAdd(gas, wordGas); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

// gasSLoadEIP2929 prices SLOAD under the Berlin+ access-list rules: the host
// reports cold/warm and we surcharge accordingly. The constant gas component
// (WarmStorageReadCostEIP2929) is charged by the jump table; this returns
// only the cold surcharge.
func gasSLoadEIP2929(host Host, contract *Contract, stack *Stack, _ *Memory, _ uint64) (uint64, error) {
	slot := bytes32ToHash(stack.Peek())
	if host.AccessStorage(contract.Address(), slot) == Cold {
		return params.ColdSloadCostEIP2929 - params.WarmStorageReadCostEIP2929, nil
	}
	return 0, nil
}

func gasSLoadLegacy(_ Host, _ *Contract, _ *Stack, _ *Memory, _ uint64) (uint64, error) {
	return 0, nil
}

// gasSStoreSentry is SSTORE's dynamic-gas pre-check: the EIP-2200
// reentrancy sentry (reject if too little gas remains to even attempt a
// write) and the EIP-2929 cold-slot surcharge. It cannot price the write
// itself — current vs. new is all the Host interface exposes (per
// spec.md §6, there is no committed/original value to compare against
// before the write happens) — so the set/reset/no-op cost is charged by
// opSstore itself, from the StorageStatus SetStorage reports. See
// sstoreCost and instructions_host.go's opSstore.
func gasSStoreSentry(host Host, contract *Contract, stack *Stack, _ *Memory, _ uint64) (uint64, error) {
	if contract.Gas <= params.SstoreSentryGasEIP2200 {
		return 0, ErrOutOfGas
	}
	slot := bytes32ToHash(stack.Peek())
	if host.AccessStorage(contract.Address(), slot) == Cold {
		return params.ColdSloadCostEIP2929, nil
	}
	return 0, nil
}

// sstoreCost prices the write itself, keyed on the StorageStatus SetStorage
// reported. This is the EIP-2200 set/reset schedule; the EIP-2929 cold
// surcharge was already charged by gasSStoreSentry before the write ran.
func sstoreCost(status StorageStatus) uint64 {
	switch status {
	case StorageAdded:
		return params.SstoreSetGasEIP2200
	case StorageDeleted, StorageModified, StorageModifiedRestored, StorageDeletedRestored, StorageAddedDeleted:
		return params.SstoreResetGasEIP2200
	default: // StorageUnchanged, StorageDeletedAdded
		return params.WarmStorageReadCostEIP2929
	}
}

// refundForStorageStatus applies the SSTORE refund rule for a completed
// write, given the StorageStatus the host reported. Called by the SSTORE
// handler after SetStorage, per SPEC_FULL.md §4.7 — the interpreter itself
// keeps no refund ledger, it only instructs the host.
func refundForStorageStatus(host Host, status StorageStatus, clearingRefund uint64) {
	switch status {
	case StorageDeleted:
		host.AddRefund(clearingRefund)
	case StorageDeletedAdded:
		host.SubRefund(clearingRefund)
	case StorageModifiedRestored:
		host.AddRefund(params.SstoreSetGasEIP2200 - params.WarmStorageReadCostEIP2929)
	case StorageDeletedRestored:
		host.AddRefund((params.SstoreResetGasEIP2200 - params.ColdSloadCostEIP2929) - params.WarmStorageReadCostEIP2929)
	case StorageAddedDeleted:
		host.AddRefund(clearingRefund)
	}
}

func gasExtCodeSizeEIP2929(host Host, contract *Contract, stack *Stack, _ *Memory, _ uint64) (uint64, error) {
	addr := addressFromWord(stack.Peek())
	if host.AccessAccount(addr) == Cold {
		return params.ColdAccountAccessCostEIP2929 - params.WarmStorageReadCostEIP2929, nil
	}
	return 0, nil
}

var (
	gasExtCodeHashEIP2929 = gasExtCodeSizeEIP2929
	gasBalanceEIP2929     = gasExtCodeSizeEIP2929
)

func makeCallVariantGasCallEIP2929(oldCalculator gasFunc) gasFunc {
	return func(host Host, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
		addr := addressFromWord(stack.Back(1))
		warm := host.AccessAccount(addr) == Warm
		coldCost := params.ColdAccountAccessCostEIP2929 - params.WarmStorageReadCostEIP2929
		if !warm {
			if !contract.UseGas(coldCost) {
				return 0, ErrOutOfGas
			}
		}
		gas, err := oldCalculator(host, contract, stack, mem, memorySize)
		if warm || err != nil {
			return gas, err
		}
		contract.Gas += coldCost
		return gas + coldCost, nil
	}
}

func gasCallCode(_ Host, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	if !stack.Back(2).IsZero() {
		gas += params.CallValueTransferGas
	}
	var overflow bool
	if gas, overflow = math.SafeAdd(gas, params.CallStipend); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func gasCall(host Host, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	if !stack.Back(2).IsZero() {
		gas += params.CallValueTransferGas
	}
	addr := addressFromWord(stack.Back(1))
	if !host.AccountExists(addr) {
		gas += params.CallNewAccountGas
	}
	var overflow bool
	if gas, overflow = math.SafeAdd(gas, params.CallStipend); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func gasDelegateCall(_ Host, _ *Contract, _ *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCost(mem, memorySize)
}

func gasStaticCall(_ Host, _ *Contract, _ *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCost(mem, memorySize)
}

var (
	gasCallEIP2929         = makeCallVariantGasCallEIP2929(gasCall)
	gasCallCodeEIP2929     = makeCallVariantGasCallEIP2929(gasCallCode)
	gasDelegateCallEIP2929 = makeCallVariantGasCallEIP2929(gasDelegateCall)
	gasStaticCallEIP2929   = makeCallVariantGasCallEIP2929(gasStaticCall)
)

func makeSelfdestructGasFn(refundsEnabled bool) gasFunc {
	return func(host Host, contract *Contract, stack *Stack, _ *Memory, _ uint64) (uint64, error) {
		var gas uint64
		addr := addressFromWord(stack.Peek())
		if host.AccessAccount(addr) == Cold {
			gas = params.ColdAccountAccessCostEIP2929
		}
		if !host.AccountExists(addr) && !host.GetBalance(contract.Address()).IsZero() {
			gas += params.CreateBySelfdestructGas
		}
		if refundsEnabled {
			host.AddRefund(params.SelfdestructRefundGas)
		}
		return gas, nil
	}
}

var (
	gasSelfdestructEIP150  = func(host Host, contract *Contract, stack *Stack, mem *Memory, ms uint64) (uint64, error) {
		return makeSelfdestructGasFn(false)(host, contract, stack, mem, ms)
	}
	gasSelfdestructEIP2929 = makeSelfdestructGasFn(true)
	gasSelfdestructEIP3529 = makeSelfdestructGasFn(false)
)

func gasCreate(_ Host, _ *Contract, _ *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCost(mem, memorySize)
}

func gasCreateEIP3860(_ Host, _ *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	size, overflow := stack.Back(2).Uint64WithOverflow()
	if overflow || size > params.MaxInitCodeSize {
		return 0, ErrMaxInitCodeSizeExceeded
	}
	moreGas := params.InitCodeWordGas * ((size + 31) / 32)
	if gas, overflow = math.SafeAdd(gas, moreGas); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func gasCreate2(_ Host, _ *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	wordGas, overflow := stack.Back(2).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	if wordGas, overflow = math.SafeMul(toWordSize(wordGas), params.Keccak256WordGas); overflow {
		return 0, ErrGasUintOverflow
	}
	if gas, overflow = math.SafeAdd(gas, wordGas); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func gasCreate2EIP3860(_ Host, _ *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := gasCreate2(nil, nil, stack, mem, memorySize)
	if err != nil {
		return 0, err
	}
	size, overflow := stack.Back(2).Uint64WithOverflow()
	if overflow || size > params.MaxInitCodeSize {
		return 0, ErrMaxInitCodeSizeExceeded
	}
	moreGas := params.InitCodeWordGas * ((size + 31) / 32)
	if gas, overflow = math.SafeAdd(gas, moreGas); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func makeGasLog(n uint64) gasFunc {
	return func(_ Host, _ *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
		requestedSize, overflow := stack.Back(1).Uint64WithOverflow()
		if overflow {
			return 0, ErrGasUintOverflow
		}
		gas, err := memoryGasCost(mem, memorySize)
		if err != nil {
			return 0, err
		}
		if gas, overflow = addUint64(gas, params.LogGas); overflow {
			return 0, ErrGasUintOverflow
		}
		if gas, overflow = addUint64(gas, n*params.LogTopicGas); overflow {
			return 0, ErrGasUintOverflow
		}
		logDataGas, overflow := math.SafeMul(requestedSize, params.LogDataGas)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		if gas, overflow = addUint64(gas, logDataGas); overflow {
			return 0, ErrGasUintOverflow
		}
		return gas, nil
	}
}
