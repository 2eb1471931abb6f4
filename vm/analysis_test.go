package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeCodeValidJumpdest(t *testing.T) {
	// PUSH1 0x04, JUMP, JUMPDEST, STOP
	code := []byte{byte(PUSH1), 0x04, byte(JUMP), byte(JUMPDEST), byte(STOP)}
	a := AnalyzeCode(code)

	assert.True(t, a.ValidJumpdest(3))
	assert.False(t, a.ValidJumpdest(0))
	assert.False(t, a.ValidJumpdest(100))
}

func TestAnalyzeCodeSkipsPushData(t *testing.T) {
	// PUSH1 with an operand byte that happens to equal JUMPDEST's opcode
	// value must not be mistaken for a real jump target.
	code := []byte{byte(PUSH1), byte(JUMPDEST), byte(STOP)}
	a := AnalyzeCode(code)

	assert.False(t, a.ValidJumpdest(1))
}

func TestAnalyzeCodePaddingAbsorbsTrailingPush(t *testing.T) {
	code := []byte{byte(PUSH32)}
	a := AnalyzeCode(code)
	assert.Equal(t, len(code)+33, len(a.paddedCode))
	assert.Equal(t, STOP, OpCode(a.paddedCode[len(code)+31]))
}

func TestCodeSize(t *testing.T) {
	code := []byte{byte(STOP), byte(STOP)}
	a := AnalyzeCode(code)
	assert.Equal(t, uint64(2), a.CodeSize())
}
