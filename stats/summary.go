package stats

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Saved returns the number of bytes saved. It is negative if the message
// grew.
func (r Result) Saved() int {
	return r.Original - r.Compressed
}

// Reduction returns the size reduction as a percentage of the original
// size. It is negative if the message grew.
func (r Result) Reduction() float64 {
	if r.Original == 0 {
		return 0
	}
	return float64(r.Saved()) * 100 / float64(r.Original)
}

// String formats r like "1024 ->  312 bytes (69.53% decrease) overhead: 0.08ms".
func (r Result) String() string {
	dir := "increase"
	if r.Saved() > 0 {
		dir = "decrease"
	}
	pct := math.Abs(math.Round(r.Reduction()*100) / 100)
	return fmt.Sprintf("%4d -> %4d bytes (%s%% %s) overhead: %.2fms",
		r.Original, r.Compressed, strconv.FormatFloat(pct, 'f', -1, 64), dir,
		float64(r.Elapsed)/float64(time.Millisecond))
}

// A Summary totals the results for a message stream.
type Summary struct {
	Messages   int
	Original   int
	Compressed int
	Elapsed    time.Duration
}

// Summarize adds up results.
func Summarize(results []Result) Summary {
	s := Summary{Messages: len(results)}
	for _, r := range results {
		s.Original += r.Original
		s.Compressed += r.Compressed
		s.Elapsed += r.Elapsed
	}
	return s
}

// Saved returns the total number of bytes saved.
func (s Summary) Saved() int {
	return s.Original - s.Compressed
}

// Reduction returns the overall reduction in percent, or 0 if there was no
// input.
func (s Summary) Reduction() float64 {
	if s.Original == 0 {
		return 0
	}
	return (1 - float64(s.Compressed)/float64(s.Original)) * 100
}

// Worse reports whether compression made the stream bigger.
func (s Summary) Worse() bool {
	return s.Compressed > s.Original
}

func (s Summary) String() string {
	return fmt.Sprintf("original %4d bytes, compressed %4d bytes, saved %d bytes, ratio %5.1f%%",
		s.Original, s.Compressed, s.Saved(), s.Reduction())
}
