// Package encode writes step sequences in real compressed formats, so that
// the output of the step builder can be checked by an independent decoder.
package encode

import (
	"errors"
	"fmt"

	"github.com/andybalholm/lzstep"
)

var (
	// ErrDistance is returned when a match reaches further back than the
	// format can express.
	ErrDistance = errors.New("encode: match distance too large for format")

	// ErrBlockSize is returned when a block is larger than the format allows.
	ErrBlockSize = errors.New("encode: block too large for format")
)

// An Encoder encodes data in its final format.
type Encoder interface {
	// Encode appends the encoded format of src to dst, using the match
	// information from runs.
	Encode(dst []byte, src []byte, runs []lzstep.Run, lastBlock bool) ([]byte, error)

	// Reset clears any internal state, preparing the Encoder to be used with
	// a new stream.
	Reset()
}

// Compress splits src into blocks of blockSize bytes, builds the steps for
// each block with a window of windowSize bytes, and encodes them with e.
// Matches never cross block boundaries. SnappyBlock and LZ4Block need the
// whole input as one block; use WholeBlock for them.
func Compress(dst []byte, e Encoder, src []byte, windowSize, blockSize int) ([]byte, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("encode: invalid block size %d", blockSize)
	}
	e.Reset()

	var (
		hc    lzstep.HashChain
		p     lzstep.GreedyParser
		steps lzstep.Steps
		err   error
	)
	for start := 0; start < len(src) || start == 0; start += blockSize {
		end := start + blockSize
		if end > len(src) {
			end = len(src)
		}
		block := src[start:end]
		steps = p.Parse(steps[:0], &hc, block, windowSize)
		dst, err = e.Encode(dst, block, steps.Runs(), end == len(src))
		if err != nil {
			return nil, err
		}
		if end == len(src) {
			break
		}
	}
	return dst, nil
}

// WholeBlock returns a block size that puts all of src in one block.
func WholeBlock(src []byte) int {
	return len(src) + 1
}

func checkDistance(runs []lzstep.Run, max int) error {
	for _, r := range runs {
		if r.Length > 0 && r.Distance > max {
			return fmt.Errorf("%w: %d > %d", ErrDistance, r.Distance, max)
		}
	}
	return nil
}
