package vm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestMemoryResizeAndSet(t *testing.T) {
	m := newMemory()
	m.Resize(64)
	assert.Equal(t, 64, m.Len())

	m.Set(0, 3, []byte{1, 2, 3})
	assert.Equal(t, []byte{1, 2, 3}, m.GetCopy(0, 3))
}

func TestMemorySet32(t *testing.T) {
	m := newMemory()
	m.Resize(32)
	v := uint256.NewInt(0xdeadbeef)
	m.Set32(0, v)
	got := new(uint256.Int).SetBytes(m.GetPtr(0, 32))
	assert.True(t, v.Eq(got))
}

func TestMemoryResizeNeverShrinks(t *testing.T) {
	m := newMemory()
	m.Resize(64)
	m.Resize(32)
	assert.Equal(t, 64, m.Len())
}

// TestMemoryGasChargedOncePerExpansion verifies the quadratic memory-cost
// formula only bills the incremental growth, not the full new size, on a
// second expansion to the same region.
func TestMemoryGasChargedOncePerExpansion(t *testing.T) {
	m := newMemory()

	first, err := memoryGasCost(m, 32)
	assert.NoError(t, err)
	assert.Equal(t, uint64(3), first) // 1 word: 3*1 + 1/512 = 3

	m.Resize(32)

	second, err := memoryGasCost(m, 32)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), second, "no further growth means no further charge")

	third, err := memoryGasCost(m, 64)
	assert.NoError(t, err)
	assert.Equal(t, uint64(3), third, "growing by one more word only bills the delta")
}

func TestToWordSizeRounding(t *testing.T) {
	assert.Equal(t, uint64(0), toWordSize(0))
	assert.Equal(t, uint64(1), toWordSize(1))
	assert.Equal(t, uint64(1), toWordSize(32))
	assert.Equal(t, uint64(2), toWordSize(33))
}

func TestCalcMemSize64Overflow(t *testing.T) {
	huge := new(uint256.Int).SetAllOne()
	_, overflow := calcMemSize64(uint256.NewInt(0), huge)
	assert.True(t, overflow)
}

func TestCalcMemSize64ZeroLength(t *testing.T) {
	size, overflow := calcMemSize64(uint256.NewInt(100), uint256.NewInt(0))
	assert.False(t, overflow)
	assert.Equal(t, uint64(0), size)
}
