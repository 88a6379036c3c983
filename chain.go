package lzstep

import (
	"encoding/binary"
	"math/bits"
)

// HashChain is a Searcher that uses hash chaining to find matches. It
// only compares positions that start with the same three bytes, so it is
// much faster than BruteForce on long inputs, but it returns the same
// matches: candidates are visited from nearest to farthest, and a later
// candidate only replaces the best one if it is strictly longer.
type HashChain struct {
	head [1 << hashBits]int32

	src        []byte
	windowSize int

	// prev[i] is the previous position with the same hash as i, or -1.
	prev []int32
}

const (
	hashBits = 14
	hashMask = 1<<hashBits - 1
	hashMul  = 0x1e35a7bd
)

func hash3(b []byte) uint32 {
	u := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	return (u * hashMul) >> (32 - hashBits) & hashMask
}

func (h *HashChain) Reset(src []byte, windowSize int) {
	for i := range h.head {
		h.head[i] = -1
	}
	h.src = src
	h.windowSize = windowSize

	prev := h.prev[:0]
	for i := 0; i+MinMatchLength <= len(src); i++ {
		k := hash3(src[i:])
		prev = append(prev, h.head[k])
		h.head[k] = int32(i)
	}
	h.prev = prev
}

func (h *HashChain) Search(pos int) (Match, bool) {
	if pos >= len(h.prev) {
		// Fewer than MinMatchLength bytes are left.
		return Match{}, false
	}

	var best Match
	for c := int(h.prev[pos]); c >= 0; c = int(h.prev[c]) {
		d := pos - c
		if d > h.windowSize {
			break
		}
		if n := matchLen(h.src, c, pos); n > best.Length {
			best = Match{Length: n, Distance: d}
		}
	}

	if best.Length < MinMatchLength {
		return Match{}, false
	}
	return best, true
}

// matchLen returns how many bytes starting at i equal the bytes starting
// at j, stopping at the end of src. With i < j the two ranges may overlap,
// which is what a self-referencing copy needs.
func matchLen(src []byte, i, j int) int {
	n := 0
	for j+n+8 <= len(src) {
		x := binary.LittleEndian.Uint64(src[i+n:]) ^ binary.LittleEndian.Uint64(src[j+n:])
		if x != 0 {
			return n + bits.TrailingZeros64(x)>>3
		}
		n += 8
	}
	for j+n < len(src) && src[i+n] == src[j+n] {
		n++
	}
	return n
}
