package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpCodeIsPush(t *testing.T) {
	assert.True(t, PUSH1.IsPush())
	assert.True(t, PUSH32.IsPush())
	assert.False(t, ADD.IsPush())
}

func TestOpCodePushSize(t *testing.T) {
	assert.Equal(t, 1, PUSH1.PushSize())
	assert.Equal(t, 32, PUSH32.PushSize())
}

func TestOpCodeString(t *testing.T) {
	assert.Equal(t, "ADD", ADD.String())
	assert.Equal(t, "JUMPDEST", JUMPDEST.String())
}
