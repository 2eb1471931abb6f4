package vm

import (
	"sync"

	"github.com/holiman/uint256"
)

// stackLimit is the maximum number of 256-bit words a frame's stack may hold.
const stackLimit = 1024

// Stack is a fixed-capacity LIFO of 256-bit words. Index 0 addresses the top.
type Stack struct {
	data []uint256.Int
}

var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{data: make([]uint256.Int, 0, 16)}
	},
}

// newstack draws a Stack from the pool rather than allocating, following the
// per-frame scope reuse the teacher applies to its own scratch structures.
func newstack() *Stack {
	return stackPool.Get().(*Stack)
}

// returnStack resets s and returns it to the pool. Callers must not touch s
// again afterwards.
func returnStack(s *Stack) {
	s.data = s.data[:0]
	stackPool.Put(s)
}

func (s *Stack) push(v *uint256.Int) {
	s.data = append(s.data, *v)
}

func (s *Stack) pop() uint256.Int {
	n := len(s.data) - 1
	v := s.data[n]
	s.data = s.data[:n]
	return v
}

func (s *Stack) len() int {
	return len(s.data)
}

// Back returns a pointer to the n-th item from the top (0 = top) without
// removing it. Callers must not retain the pointer past the next mutation.
func (s *Stack) Back(n int) *uint256.Int {
	return &s.data[len(s.data)-n-1]
}

func (s *Stack) swap(n int) {
	top := len(s.data) - 1
	s.data[top], s.data[top-n] = s.data[top-n], s.data[top]
}

func (s *Stack) dup(n int) {
	s.data = append(s.data, s.data[len(s.data)-n])
}

func (s *Stack) peek() *uint256.Int {
	return &s.data[len(s.data)-1]
}

// Peek is the exported form used by gas/memory-size calculators, which live
// in the same package but read better calling the stack by its public name.
func (s *Stack) Peek() *uint256.Int {
	return s.peek()
}

func (s *Stack) String() string {
	str := "["
	for i, v := range s.data {
		if i > 0 {
			str += " "
		}
		str += v.Hex()
	}
	return str + "]"
}

func newStackUnderflow(have, want int) *ErrStackUnderflow {
	return &ErrStackUnderflow{stackLen: have, required: want}
}

func newStackOverflow(have, limit int) *ErrStackOverflow {
	return &ErrStackOverflow{stackLen: have, limit: limit}
}
