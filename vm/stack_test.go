package vm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestStackPushPop(t *testing.T) {
	s := newstack()
	defer returnStack(s)

	s.push(uint256.NewInt(1))
	s.push(uint256.NewInt(2))
	assert.Equal(t, 2, s.len())

	top := s.pop()
	assert.Equal(t, uint64(2), top.Uint64())
	assert.Equal(t, 1, s.len())
}

func TestStackDupSwap(t *testing.T) {
	s := newstack()
	defer returnStack(s)

	s.push(uint256.NewInt(10))
	s.push(uint256.NewInt(20))
	s.dup(2)
	assert.Equal(t, uint64(10), s.peek().Uint64())

	s.swap(1)
	assert.Equal(t, uint64(20), s.peek().Uint64())
}

func TestStackBackIsReadOnlyView(t *testing.T) {
	s := newstack()
	defer returnStack(s)
	s.push(uint256.NewInt(42))
	assert.Equal(t, uint64(42), s.Back(0).Uint64())
	assert.Equal(t, 1, s.len())
}

func TestNewStackUnderflowError(t *testing.T) {
	err := newStackUnderflow(1, 3)
	assert.Contains(t, err.Error(), "stack underflow")
}

func TestNewStackOverflowError(t *testing.T) {
	err := newStackOverflow(1025, 1024)
	assert.Contains(t, err.Error(), "stack limit")
}
