package vm_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/wuecho-labs/baseline-evm/vm"
)

func newHost() *vm.MemoryHost {
	return vm.NewMemoryHost(vm.Cancun, vm.TxContext{
		GasPrice:   uint256.NewInt(1),
		Difficulty: uint256.NewInt(0),
		ChainID:    uint256.NewInt(1),
		BaseFee:    uint256.NewInt(1),
		GasLimit:   30_000_000,
	})
}

func run(t *testing.T, host *vm.MemoryHost, code []byte, gas int64) vm.Result {
	t.Helper()
	msg := vm.Message{
		Kind:      vm.Call,
		Gas:       gas,
		Recipient: common.HexToAddress("0xaa"),
		Sender:    common.HexToAddress("0xbb"),
		Value:     new(uint256.Int),
	}
	return vm.Execute(host, host.Rev, msg, code)
}

func TestExecuteAddSucceeds(t *testing.T) {
	code := []byte{
		byte(vm.PUSH1), 2,
		byte(vm.PUSH1), 3,
		byte(vm.ADD),
		byte(vm.PUSH1), 0,
		byte(vm.MSTORE),
		byte(vm.PUSH1), 32,
		byte(vm.PUSH1), 0,
		byte(vm.RETURN),
	}
	res := run(t, newHost(), code, 100000)
	assert.Equal(t, vm.Success, res.Status)
	assert.Equal(t, uint64(5), new(uint256.Int).SetBytes(res.Output).Uint64())
}

func TestExecuteOutOfGas(t *testing.T) {
	code := []byte{byte(vm.PUSH1), 1, byte(vm.PUSH1), 1, byte(vm.ADD)}
	res := run(t, newHost(), code, 5) // not enough for two PUSH1s
	assert.Equal(t, vm.OutOfGas, res.Status)
	assert.Equal(t, int64(0), res.GasLeft)
}

func TestExecuteJumpToNonJumpdestFails(t *testing.T) {
	code := []byte{byte(vm.PUSH1), 5, byte(vm.JUMP), byte(vm.STOP), byte(vm.STOP), byte(vm.ADD)}
	res := run(t, newHost(), code, 100000)
	assert.Equal(t, vm.BadJumpDestination, res.Status)
}

func TestExecuteValidJumpSucceeds(t *testing.T) {
	code := []byte{
		byte(vm.PUSH1), 4,
		byte(vm.JUMP),
		byte(vm.INVALID),
		byte(vm.JUMPDEST),
		byte(vm.STOP),
	}
	res := run(t, newHost(), code, 100000)
	assert.Equal(t, vm.Success, res.Status)
}

func TestExecuteStackUnderflow(t *testing.T) {
	code := []byte{byte(vm.ADD)}
	res := run(t, newHost(), code, 100000)
	assert.Equal(t, vm.StackUnderflow, res.Status)
}

func TestExecuteStaticModeRejectsSstore(t *testing.T) {
	code := []byte{
		byte(vm.PUSH1), 1,
		byte(vm.PUSH1), 0,
		byte(vm.SSTORE),
	}
	host := newHost()
	msg := vm.Message{
		Kind:      vm.StaticCallKind,
		Flags:     vm.FlagStatic,
		Gas:       100000,
		Recipient: common.HexToAddress("0xaa"),
		Sender:    common.HexToAddress("0xbb"),
		Value:     new(uint256.Int),
	}
	res := vm.Execute(host, host.Rev, msg, code)
	assert.Equal(t, vm.StaticModeViolation, res.Status)
}

func TestExecuteRevertKeepsOutput(t *testing.T) {
	code := []byte{
		byte(vm.PUSH1), 0xff,
		byte(vm.PUSH1), 0,
		byte(vm.MSTORE),
		byte(vm.PUSH1), 32,
		byte(vm.PUSH1), 0,
		byte(vm.REVERT),
	}
	res := run(t, newHost(), code, 100000)
	assert.Equal(t, vm.Revert, res.Status)
	assert.Equal(t, uint64(0xff), new(uint256.Int).SetBytes(res.Output).Uint64())
}
