package encode

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/andybalholm/lzstep"
)

const (
	// maxSnappyOffset is the farthest back a two-byte-offset copy can reach.
	maxSnappyOffset = 1<<16 - 1

	// maxSnappyChunk is the most uncompressed data one framed chunk may hold.
	maxSnappyChunk = 65536
)

const (
	tagLiteral = 0x00
	tagCopy1   = 0x01
	tagCopy2   = 0x02

	chunkCompressed   = 0x00
	chunkUncompressed = 0x01
)

// SnappyBlock is an Encoder for the snappy block format. A snappy block is
// a whole stream, so it should be given all of its input in one call.
type SnappyBlock struct{}

func (SnappyBlock) Reset() {}

func (SnappyBlock) Encode(dst []byte, src []byte, runs []lzstep.Run, lastBlock bool) ([]byte, error) {
	if !lastBlock {
		return nil, fmt.Errorf("%w: a snappy block must hold the whole input", ErrBlockSize)
	}
	if err := checkDistance(runs, maxSnappyOffset); err != nil {
		return nil, err
	}
	dst = binary.AppendUvarint(dst, uint64(len(src)))
	return appendSnappyBody(dst, src, runs), nil
}

// SnappyFrame is an Encoder for the snappy framing format, which is what
// snappy.NewReader expects. Each block becomes one chunk.
type SnappyFrame struct {
	wroteHeader bool
	body        []byte
}

var snappyStreamID = []byte("\xff\x06\x00\x00sNaPpY")

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// maskedCRC is the chunk checksum from the framing format: CRC-32C, rotated
// and offset.
func maskedCRC(b []byte) uint32 {
	c := crc32.Checksum(b, castagnoli)
	return (c>>15 | c<<17) + 0xa282ead8
}

func (e *SnappyFrame) Reset() {
	e.wroteHeader = false
}

func (e *SnappyFrame) Encode(dst []byte, src []byte, runs []lzstep.Run, lastBlock bool) ([]byte, error) {
	if len(src) > maxSnappyChunk {
		return nil, fmt.Errorf("%w: %d bytes in a snappy chunk", ErrBlockSize, len(src))
	}
	if err := checkDistance(runs, maxSnappyOffset); err != nil {
		return nil, err
	}

	if !e.wroteHeader {
		dst = append(dst, snappyStreamID...)
		e.wroteHeader = true
	}

	e.body = binary.AppendUvarint(e.body[:0], uint64(len(src)))
	e.body = appendSnappyBody(e.body, src, runs)

	chunkType, payload := byte(chunkCompressed), e.body
	if len(payload) >= len(src)-len(src)/8 {
		// Less than 12.5% saved.
		chunkType, payload = chunkUncompressed, src
	}
	return appendSnappyChunk(dst, chunkType, maskedCRC(src), payload), nil
}

func appendSnappyChunk(dst []byte, chunkType byte, checksum uint32, payload []byte) []byte {
	n := len(payload) + 4
	dst = append(dst, chunkType, byte(n), byte(n>>8), byte(n>>16))
	dst = binary.LittleEndian.AppendUint32(dst, checksum)
	return append(dst, payload...)
}

func appendSnappyBody(dst, src []byte, runs []lzstep.Run) []byte {
	pos := 0
	for _, r := range runs {
		if r.Unmatched > 0 {
			dst = appendLiteral(dst, src[pos:pos+r.Unmatched])
			pos += r.Unmatched
		}
		if r.Length > 0 {
			dst = appendCopy(dst, r.Length, r.Distance)
			pos += r.Length
		}
	}
	if pos < len(src) {
		dst = appendLiteral(dst, src[pos:])
	}
	return dst
}

// appendLiteral writes lit with a one-byte tag, followed by 1 to 4 bytes of
// length when it is longer than 60.
func appendLiteral(dst, lit []byte) []byte {
	n := uint32(len(lit) - 1)
	if n < 60 {
		dst = append(dst, byte(n)<<2|tagLiteral)
		return append(dst, lit...)
	}
	size := 1
	for size < 4 && n>>(8*size) != 0 {
		size++
	}
	dst = append(dst, byte(59+size)<<2|tagLiteral)
	for i := 0; i < size; i++ {
		dst = append(dst, byte(n>>(8*i)))
	}
	return append(dst, lit...)
}

// appendCopy splits a copy into ops of at most 64 bytes. A 65 to 67 byte
// tail is split as 60 + the rest, so the last op is never shorter than 4
// and can still use the two-byte form.
func appendCopy(dst []byte, length, offset int) []byte {
	for length > 0 {
		n := length
		switch {
		case n >= 68:
			n = 64
		case n > 64:
			n = 60
		}
		dst = appendCopyOp(dst, n, offset)
		length -= n
	}
	return dst
}

// appendCopyOp writes one copy op. The two-byte form holds lengths 4 to 11
// and offsets below 2048; everything else, including 3-byte matches, takes
// three bytes.
func appendCopyOp(dst []byte, n, offset int) []byte {
	if n >= 4 && n < 12 && offset < 2048 {
		return append(dst, byte(offset>>8)<<5|byte(n-4)<<2|tagCopy1, byte(offset))
	}
	return append(dst, byte(n-1)<<2|tagCopy2, byte(offset), byte(offset>>8))
}
