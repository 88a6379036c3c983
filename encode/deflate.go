package encode

import (
	"hash/crc32"
	"math/bits"
	"time"

	"github.com/andybalholm/lzstep"
)

const (
	maxDeflateDistance = 32768
	maxDeflateLength   = 258
	endOfBlock         = 256
)

var (
	lengthBase  = [29]int{3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31, 35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258}
	lengthExtra = [29]uint{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0}
	distBase    = [30]int{1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193, 257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577}
	distExtra   = [30]uint{0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13}
)

// A huffCode is a code from the fixed Huffman tables, already bit-reversed
// for writing LSB first.
type huffCode struct {
	code uint16
	len  uint8
}

var fixedLitCodes, fixedDistCodes = fixedCodes()

func reversed(code uint16, n uint8) huffCode {
	return huffCode{code: bits.Reverse16(code) >> (16 - n), len: n}
}

func fixedCodes() (lit [288]huffCode, dist [30]huffCode) {
	for i := range lit {
		switch {
		case i < 144:
			lit[i] = reversed(uint16(0x30+i), 8)
		case i < 256:
			lit[i] = reversed(uint16(0x190+i-144), 9)
		case i < 280:
			lit[i] = reversed(uint16(i-256), 7)
		default:
			lit[i] = reversed(uint16(0xc0+i-280), 8)
		}
	}
	for i := range dist {
		dist[i] = reversed(uint16(i), 5)
	}
	return lit, dist
}

// findCode returns the index of the last entry in base that is <= v.
func findCode(base []int, v int) int {
	i := len(base) - 1
	for base[i] > v {
		i--
	}
	return i
}

// bitWriter accumulates bits LSB first, carrying any partial byte from one
// block to the next.
type bitWriter struct {
	bits  uint64
	nbits uint
}

func (w *bitWriter) write(dst []byte, v uint64, n uint) []byte {
	w.bits |= v << w.nbits
	w.nbits += n
	for w.nbits >= 8 {
		dst = append(dst, byte(w.bits))
		w.bits >>= 8
		w.nbits -= 8
	}
	return dst
}

func (w *bitWriter) writeCode(dst []byte, c huffCode) []byte {
	return w.write(dst, uint64(c.code), uint(c.len))
}

func (w *bitWriter) flush(dst []byte) []byte {
	if w.nbits > 0 {
		dst = append(dst, byte(w.bits))
	}
	w.bits, w.nbits = 0, 0
	return dst
}

// Deflate is an Encoder for raw DEFLATE (RFC 1951) using the fixed Huffman
// codes. Each call to Encode writes one block.
type Deflate struct {
	w bitWriter
}

func (d *Deflate) Reset() {
	d.w = bitWriter{}
}

func (d *Deflate) Encode(dst []byte, src []byte, runs []lzstep.Run, lastBlock bool) ([]byte, error) {
	if err := checkDistance(runs, maxDeflateDistance); err != nil {
		return nil, err
	}

	final := uint64(0)
	if lastBlock {
		final = 1
	}
	dst = d.w.write(dst, final, 1)
	dst = d.w.write(dst, 1, 2)

	pos := 0
	for _, r := range runs {
		for _, c := range src[pos : pos+r.Unmatched] {
			dst = d.w.writeCode(dst, fixedLitCodes[c])
		}
		pos += r.Unmatched

		for length := r.Length; length > 0; {
			n := length
			if n > maxDeflateLength {
				n = maxDeflateLength
				if length-n < lzstep.MinMatchLength {
					n = length - lzstep.MinMatchLength
				}
			}
			dst = d.appendMatch(dst, n, r.Distance)
			length -= n
		}
		pos += r.Length
	}
	for _, c := range src[pos:] {
		dst = d.w.writeCode(dst, fixedLitCodes[c])
	}

	dst = d.w.writeCode(dst, fixedLitCodes[endOfBlock])
	if lastBlock {
		dst = d.w.flush(dst)
	}
	return dst, nil
}

func (d *Deflate) appendMatch(dst []byte, length, distance int) []byte {
	lc := findCode(lengthBase[:], length)
	dst = d.w.writeCode(dst, fixedLitCodes[257+lc])
	dst = d.w.write(dst, uint64(length-lengthBase[lc]), lengthExtra[lc])

	dc := findCode(distBase[:], distance)
	dst = d.w.writeCode(dst, fixedDistCodes[dc])
	return d.w.write(dst, uint64(distance-distBase[dc]), distExtra[dc])
}

// GZIP is an Encoder for the gzip file format (RFC 1952), wrapping Deflate.
type GZIP struct {
	// ModTime is stored in the header. The zero value means no time is
	// recorded.
	ModTime time.Time

	f           Deflate
	wroteHeader bool
	length      uint32
	crc         uint32
}

func (g *GZIP) Reset() {
	g.f.Reset()
	g.wroteHeader = false
	g.length = 0
	g.crc = 0
}

func (g *GZIP) header(dst []byte) []byte {
	dst = append(dst,
		0x1f, 0x8b, // magic number
		8, // CM = deflate
		0, // FLG
	)
	var mtime uint32
	if !g.ModTime.IsZero() {
		mtime = uint32(g.ModTime.Unix())
	}
	dst = appendUint32(dst, mtime)
	return append(dst,
		0,   // XFL
		255, // OS (unknown)
	)
}

func appendUint32(dst []byte, n uint32) []byte {
	return append(dst,
		byte(n),
		byte(n>>8),
		byte(n>>16),
		byte(n>>24),
	)
}

func (g *GZIP) Encode(dst []byte, src []byte, runs []lzstep.Run, lastBlock bool) ([]byte, error) {
	if !g.wroteHeader {
		dst = g.header(dst)
		g.wroteHeader = true
	}
	dst, err := g.f.Encode(dst, src, runs, lastBlock)
	if err != nil {
		return nil, err
	}

	g.length += uint32(len(src))
	g.crc = crc32.Update(g.crc, crc32.IEEETable, src)

	if lastBlock {
		dst = appendUint32(dst, g.crc)
		dst = appendUint32(dst, g.length)
	}
	return dst, nil
}
