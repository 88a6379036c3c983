package stats

import (
	"bytes"
	"fmt"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/andybalholm/lzstep/encode"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/exp/slices"
)

// A Codec compresses a whole stream at once.
type Codec interface {
	// Name is the name of the compression format.
	Name() string
	// Compress returns the compressed form of src.
	Compress(src []byte) ([]byte, error)
}

// Codecs returns every codec, configured for a window of 1<<windowBits bytes
// where the format lets the window be chosen.
func Codecs(windowBits int) []Codec {
	return []Codec{
		deflateCodec{windowBits},
		brotliCodec{windowBits},
		zstdCodec{windowBits},
		s2Codec{},
		snappyCodec{},
		lz4Codec{},
		stepsCodec{"steps+snappy", new(encode.SnappyFrame), windowBits},
		stepsCodec{"steps+lz4", new(encode.LZ4Frame), windowBits},
		stepsCodec{"steps+deflate", new(encode.Deflate), windowBits},
	}
}

// CodecNames returns the names of the codecs that Codecs returns.
func CodecNames() []string {
	var names []string
	for _, c := range Codecs(MinWindowBits) {
		names = append(names, c.Name())
	}
	return names
}

type deflateCodec struct{ bits int }

func (deflateCodec) Name() string { return "deflate" }

func (c deflateCodec) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriterWindow(&buf, 1<<c.bits)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type brotliCodec struct{ bits int }

func (brotliCodec) Name() string { return "brotli" }

// brotli windows are at least 1<<10 bytes.
const minBrotliWindowBits = 10

func (c brotliCodec) Compress(src []byte) ([]byte, error) {
	lgwin := c.bits
	if lgwin < minBrotliWindowBits {
		lgwin = minBrotliWindowBits
	}
	var buf bytes.Buffer
	w := brotli.NewWriterOptions(&buf, brotli.WriterOptions{
		Quality: 6,
		LGWin:   lgwin,
	})
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type zstdCodec struct{ bits int }

func (zstdCodec) Name() string { return "zstd" }

func (c zstdCodec) Compress(src []byte) ([]byte, error) {
	window := 1 << c.bits
	if window < zstd.MinWindowSize {
		window = zstd.MinWindowSize
	}
	enc, err := zstd.NewWriter(nil, zstd.WithWindowSize(window), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(src, nil), nil
}

type s2Codec struct{}

func (s2Codec) Name() string { return "s2" }

func (s2Codec) Compress(src []byte) ([]byte, error) {
	return s2.Encode(nil, src), nil
}

type snappyCodec struct{}

func (snappyCodec) Name() string { return "snappy" }

func (snappyCodec) Compress(src []byte) ([]byte, error) {
	return snappy.Encode(nil, src), nil
}

type lz4Codec struct{}

func (lz4Codec) Name() string { return "lz4" }

func (lz4Codec) Compress(src []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	n, err := lz4.CompressBlock(src, dst, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Incompressible; it would be stored as it is.
		return src, nil
	}
	return dst[:n], nil
}

// stepsCodec builds greedy steps with the hash chain searcher and writes
// them with one of the encoders from the encode package.
type stepsCodec struct {
	name string
	enc  encode.Encoder
	bits int
}

func (c stepsCodec) Name() string { return c.name }

func (c stepsCodec) Compress(src []byte) ([]byte, error) {
	return encode.Compress(nil, c.enc, src, 1<<c.bits, 1<<16)
}

// A Comparison is the result of compressing a stream with one codec.
type Comparison struct {
	Codec      string
	Original   int
	Compressed int
	Elapsed    time.Duration
}

// Reduction returns the size reduction in percent.
func (c Comparison) Reduction() float64 {
	return Summary{Original: c.Original, Compressed: c.Compressed}.Reduction()
}

// Compare compresses the concatenation of messages with each codec and
// returns the results, smallest output first.
func Compare(messages [][]byte, codecs []Codec) ([]Comparison, error) {
	stream := bytes.Join(messages, nil)
	results := make([]Comparison, 0, len(codecs))
	for _, c := range codecs {
		start := time.Now()
		out, err := c.Compress(stream)
		if err != nil {
			return nil, fmt.Errorf("stats: %s: %w", c.Name(), err)
		}
		results = append(results, Comparison{
			Codec:      c.Name(),
			Original:   len(stream),
			Compressed: len(out),
			Elapsed:    time.Since(start),
		})
	}
	slices.SortStableFunc(results, func(a, b Comparison) int {
		return a.Compressed - b.Compressed
	})
	return results, nil
}

// SelectCodecs returns the codecs from all whose names are in names, or all
// of them if names is empty.
func SelectCodecs(all []Codec, names []string) ([]Codec, error) {
	if len(names) == 0 {
		return all, nil
	}
	var out []Codec
	for _, name := range names {
		i := slices.IndexFunc(all, func(c Codec) bool { return c.Name() == name })
		if i < 0 {
			return nil, fmt.Errorf("stats: unknown codec %q", name)
		}
		out = append(out, all[i])
	}
	return out, nil
}
