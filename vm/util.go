package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// addressFromWord truncates a stack word to its low 20 bytes, the
// convention every address-bearing opcode operand uses.
func addressFromWord(w *uint256.Int) common.Address {
	return common.Address(w.Bytes20())
}

// bytes32ToHash reinterprets a stack word as a 32-byte hash/storage key.
func bytes32ToHash(w *uint256.Int) common.Hash {
	return common.Hash(w.Bytes32())
}

// GetData returns a length-size slice of data starting at offset, zero-padded
// on the right if the slice runs past the end of data. Used by CALLDATACOPY,
// CODECOPY, and their EXT variants to make truncated reads observable as
// trailing zeros rather than a fault.
func GetData(data []byte, offset, size uint64) []byte {
	length := uint64(len(data))
	if offset > length {
		offset = length
	}
	end := offset + size
	if end > length {
		end = length
	}
	ret := make([]byte, size)
	copy(ret, data[offset:end])
	return ret
}

// bigUint64 converts v to a uint64, reporting overflow instead of truncating.
func bigUint64(v *uint256.Int) (uint64, bool) {
	return v.Uint64WithOverflow()
}

// allZero reports whether b consists entirely of zero bytes.
func allZero(b []byte) bool {
	for _, byt := range b {
		if byt != 0 {
			return false
		}
	}
	return true
}

// minUint64 and maxUint64 mirror the small helpers the teacher scatters
// through gas_table.go rather than reaching for a generics-based min/max.
func minUint64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func maxUint64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
