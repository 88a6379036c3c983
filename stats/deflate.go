package stats

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/pierrec/xxHash/xxHash32"
)

// The sliding window sizes offered, as powers of two.
const (
	MinWindowBits = 9
	MaxWindowBits = 15
)

var (
	// ErrWindowBits is returned for a window size outside
	// [MinWindowBits, MaxWindowBits].
	ErrWindowBits = errors.New("stats: window bits out of range")

	// ErrMismatch is returned when a message does not survive a round trip.
	ErrMismatch = errors.New("stats: decompressed message does not match")

	errClosed = errors.New("stats: deflater already closed")
)

// A Result describes the compression of one message.
type Result struct {
	Original   int
	Compressed int
	Elapsed    time.Duration

	// Checksum is the xxHash32 of the original message.
	Checksum uint32
}

// A Deflater compresses a sequence of messages as one raw DEFLATE stream,
// flushing after each message. Later messages can refer back to earlier ones
// as long as they are within the window.
type Deflater struct {
	windowBits int
	buf        bytes.Buffer
	w          *flate.Writer
	results    []Result
	closed     bool
}

// NewDeflater returns a Deflater with a window of 1<<windowBits bytes.
func NewDeflater(windowBits int) (*Deflater, error) {
	if windowBits < MinWindowBits || windowBits > MaxWindowBits {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrWindowBits, windowBits, MinWindowBits, MaxWindowBits)
	}
	d := &Deflater{windowBits: windowBits}
	w, err := flate.NewWriterWindow(&d.buf, 1<<windowBits)
	if err != nil {
		return nil, fmt.Errorf("stats: creating deflate writer: %w", err)
	}
	d.w = w
	return d, nil
}

// WindowBits returns the log2 of the window size.
func (d *Deflater) WindowBits() int { return d.windowBits }

// Push compresses msg and flushes the stream, so that the output for msg is
// complete. The Result counts the bytes written by the flush.
func (d *Deflater) Push(msg []byte) (Result, error) {
	if d.closed {
		return Result{}, errClosed
	}
	start := time.Now()
	before := d.buf.Len()
	if _, err := d.w.Write(msg); err != nil {
		return Result{}, fmt.Errorf("stats: deflate: %w", err)
	}
	if err := d.w.Flush(); err != nil {
		return Result{}, fmt.Errorf("stats: deflate flush: %w", err)
	}
	r := Result{
		Original:   len(msg),
		Compressed: d.buf.Len() - before,
		Elapsed:    time.Since(start),
		Checksum:   xxHash32.Checksum(msg, 0),
	}
	d.results = append(d.results, r)
	return r, nil
}

// Results returns the results of every Push so far.
func (d *Deflater) Results() []Result { return d.results }

// Verify ends the stream, inflates it, and checks every message against the
// checksum recorded when it was pushed. No more messages can be pushed after
// Verify.
func (d *Deflater) Verify() error {
	if !d.closed {
		if err := d.w.Close(); err != nil {
			return fmt.Errorf("stats: deflate close: %w", err)
		}
		d.closed = true
	}

	r := flate.NewReader(bytes.NewReader(d.buf.Bytes()))
	defer r.Close()
	for i, res := range d.results {
		msg := make([]byte, res.Original)
		if _, err := io.ReadFull(r, msg); err != nil {
			return fmt.Errorf("stats: inflating message %d: %w", i, err)
		}
		if xxHash32.Checksum(msg, 0) != res.Checksum {
			return fmt.Errorf("%w: message %d", ErrMismatch, i)
		}
	}
	if n, err := io.Copy(io.Discard, r); err != nil || n != 0 {
		return fmt.Errorf("%w: %d trailing bytes (%v)", ErrMismatch, n, err)
	}
	return nil
}

// Run compresses messages with a window of 1<<windowBits bytes, checks that
// they decompress correctly, and returns a Result for each one.
func Run(messages [][]byte, windowBits int) ([]Result, error) {
	d, err := NewDeflater(windowBits)
	if err != nil {
		return nil, err
	}
	for _, msg := range messages {
		if _, err := d.Push(msg); err != nil {
			return nil, err
		}
	}
	if err := d.Verify(); err != nil {
		return nil, err
	}
	return d.Results(), nil
}
