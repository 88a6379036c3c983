package encode

import (
	"encoding/binary"
	"fmt"
	"hash"

	"github.com/andybalholm/lzstep"
	"github.com/pierrec/xxHash/xxHash32"
)

const (
	lz4MinMatch  = 4
	lz4MaxOffset = 1<<16 - 1
	maxLZ4Block  = 4 << 20

	// The last 5 bytes of a block are always literals, and the last match
	// starts at least 12 bytes before the end.
	lz4LastLiterals = 5
	lz4MatchLimit   = 12

	lz4Magic = 0x184D2204
)

// lz4Descriptor is the frame descriptor: version 1, linked blocks, content
// checksum, 4 MB maximum block size, and its header checksum.
var lz4Descriptor = []byte{0x44, 0x70, 0x1d}

// LZ4Block is an Encoder for the LZ4 block format. LZ4 has no 3-byte
// matches, so those are written as literals. A block stands alone, so it
// must be given all of its input in one call.
type LZ4Block struct{}

func (LZ4Block) Reset() {}

func (LZ4Block) Encode(dst []byte, src []byte, runs []lzstep.Run, lastBlock bool) ([]byte, error) {
	if !lastBlock {
		return nil, fmt.Errorf("%w: an LZ4 block must hold the whole input", ErrBlockSize)
	}
	return appendLZ4Block(dst, src, runs)
}

func appendLZ4Block(dst []byte, src []byte, runs []lzstep.Run) ([]byte, error) {
	if err := checkDistance(runs, lz4MaxOffset); err != nil {
		return nil, err
	}

	pos := 0
	for _, m := range lz4Tail(lz4Runs(runs), len(src)) {
		dst = appendLZ4Sequence(dst, src[pos:pos+m.Unmatched], m.Length, m.Distance)
		pos += m.Unmatched + m.Length
	}
	return appendLZ4Sequence(dst, src[pos:], 0, 0), nil
}

// lz4Runs drops the trailing literal run and folds matches shorter than
// lz4MinMatch into the literals of the following run.
func lz4Runs(runs []lzstep.Run) []lzstep.Run {
	out := make([]lzstep.Run, 0, len(runs))
	carry := 0
	for _, r := range runs {
		if r.Length < lz4MinMatch {
			carry += r.Unmatched + r.Length
			continue
		}
		r.Unmatched += carry
		carry = 0
		out = append(out, r)
	}
	return out
}

// lz4Tail makes the matches of a block of n bytes obey the end-of-block
// rules. A last match that runs into the final literals is shortened; it is
// dropped only if it would then be too short or start too late.
func lz4Tail(matches []lzstep.Run, n int) []lzstep.Run {
	tail := n
	for _, m := range matches {
		tail -= m.Unmatched + m.Length
	}
	for len(matches) > 0 {
		last := &matches[len(matches)-1]
		if cut := lz4LastLiterals - tail; cut > 0 && last.Length-cut >= lz4MinMatch {
			last.Length -= cut
			tail += cut
		}
		if tail >= lz4LastLiterals && tail+last.Length >= lz4MatchLimit {
			break
		}
		tail += last.Unmatched + last.Length
		matches = matches[:len(matches)-1]
	}
	return matches
}

// appendLZ4Sequence writes one sequence: a token, the literals, and, unless
// length is 0, the match offset and any extra length bytes.
func appendLZ4Sequence(dst, literals []byte, length, offset int) []byte {
	token := nibble(len(literals)) << 4
	if length > 0 {
		token |= nibble(length - lz4MinMatch)
	}
	dst = append(dst, token)
	if len(literals) >= 15 {
		dst = appendInt(dst, len(literals)-15)
	}
	dst = append(dst, literals...)
	if length == 0 {
		return dst
	}

	dst = binary.LittleEndian.AppendUint16(dst, uint16(offset))
	if length-lz4MinMatch >= 15 {
		dst = appendInt(dst, length-lz4MinMatch-15)
	}
	return dst
}

func nibble(n int) byte {
	if n >= 15 {
		return 15
	}
	return byte(n)
}

// appendInt appends n to dst in LZ4's variable-length integer format.
func appendInt(dst []byte, n int) []byte {
	for ; n >= 255; n -= 255 {
		dst = append(dst, 255)
	}
	return append(dst, byte(n))
}

// LZ4Frame is an Encoder for the LZ4 frame format, with a content checksum.
type LZ4Frame struct {
	checksum hash.Hash32
	block    []byte
}

func (f *LZ4Frame) Reset() {
	f.checksum = nil
}

func (f *LZ4Frame) Encode(dst []byte, src []byte, runs []lzstep.Run, lastBlock bool) ([]byte, error) {
	if len(src) > maxLZ4Block {
		return nil, fmt.Errorf("%w: %d bytes in an LZ4 block", ErrBlockSize, len(src))
	}
	if f.checksum == nil {
		f.checksum = xxHash32.New(0)
		dst = binary.LittleEndian.AppendUint32(dst, lz4Magic)
		dst = append(dst, lz4Descriptor...)
	}

	var err error
	f.block, err = appendLZ4Block(f.block[:0], src, runs)
	if err != nil {
		return nil, err
	}
	// An empty block would read as the end mark.
	if len(src) > 0 {
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(f.block)))
		dst = append(dst, f.block...)
	}
	f.checksum.Write(src)

	if lastBlock {
		dst = binary.LittleEndian.AppendUint32(dst, 0)
		dst = binary.LittleEndian.AppendUint32(dst, f.checksum.Sum32())
	}
	return dst, nil
}
