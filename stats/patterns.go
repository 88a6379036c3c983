// Package stats measures how well DEFLATE and other codecs compress
// streams of synthetic messages, for comparing window sizes and data shapes.
package stats

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slices"
)

// A Pattern selects the kind of data the messages contain.
type Pattern string

const (
	Random            Pattern = "random"
	RandomRepeating   Pattern = "random_repeating"
	Text              Pattern = "text"
	Increasing        Pattern = "increasing"
	ProgressiveGrowth Pattern = "progressive_growth"
	JSON              Pattern = "json"
)

// ErrPattern is returned for an unknown pattern name.
var ErrPattern = errors.New("stats: unknown pattern")

type patternInfo struct {
	label       string
	description string
	observation string
}

var patterns = map[Pattern]patternInfo{
	Random: {
		"Random bytes (different)",
		"Generates completely random bytes for each message.",
		"Random data compresses poorly because there are no patterns for the sliding window to capture and reuse.",
	},
	RandomRepeating: {
		"Random bytes (same)",
		"Uses the same random bytes for all messages.",
		"Even random data compresses when it repeats (and the sliding window is big enough).",
	},
	Text: {
		"Repeated text",
		`Repeats "The quick brown fox jumps over the lazy dog." a bunch of times.`,
		"As you might expect, text with repeated phrases compresses well. What you might not expect is that the compression doesn't get better with a bigger sliding window.",
	},
	Increasing: {
		"Increasing numbers",
		"Comma-separated increasing numbers.",
		"Bigger sliding windows can lead to worse compression? It turns out that DEFLATE doesn't always pick the best match in the sliding window, but uses a heuristic that can hurt compression sometimes.",
	},
	ProgressiveGrowth: {
		"Progressive growth",
		"Repeating chunks of random data at different sizes (100, 200, 400, 800 and 1600 bytes)",
		"Larger chunks of data can fit into larger sliding windows, leading to better compression.",
	},
	JSON: {
		"JSON",
		"Simulates JSON data with nested objects and arrays.",
		"JSON compresses well due to similar patterns across objects. It also helps that these all have mostly identical schemas.",
	},
}

// Patterns returns all the patterns, in the order they are offered.
func Patterns() []Pattern {
	return []Pattern{Random, RandomRepeating, Text, Increasing, ProgressiveGrowth, JSON}
}

// ParsePattern returns the Pattern named s.
func ParsePattern(s string) (Pattern, error) {
	p := Pattern(s)
	if _, ok := patterns[p]; !ok {
		return "", fmt.Errorf("%w %q", ErrPattern, s)
	}
	return p, nil
}

func (p Pattern) Label() string       { return patterns[p].label }
func (p Pattern) Description() string { return patterns[p].description }

// Observation explains what the pattern shows about sliding windows.
func (p Pattern) Observation() string { return patterns[p].observation }

// FixedSize reports whether the pattern ignores the message size.
func (p Pattern) FixedSize() bool {
	return p == ProgressiveGrowth || p == JSON
}

const pangram = "The quick brown fox jumps over the lazy dog. "

// A Generator produces message streams. Its output depends only on Rand and
// Now, so a seeded Generator always produces the same messages.
type Generator struct {
	Rand *rand.Rand
	Now  func() time.Time
}

// NewGenerator returns a Generator seeded with seed and a fixed clock.
func NewGenerator(seed int64) *Generator {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &Generator{
		Rand: rand.New(rand.NewSource(seed)),
		Now:  func() time.Time { return start },
	}
}

// Generate returns count messages of 1<<sizeBits bytes each, following the
// pattern p. ProgressiveGrowth and JSON messages have their own sizes.
func (g *Generator) Generate(p Pattern, sizeBits, count int) ([][]byte, error) {
	if sizeBits < 0 || sizeBits > 30 {
		return nil, fmt.Errorf("stats: invalid message size bits %d", sizeBits)
	}
	size := 1 << sizeBits
	result := make([][]byte, 0, count)

	switch p {
	case Random:
		for i := 0; i < count; i++ {
			result = append(result, g.randomBytes(size))
		}

	case RandomRepeating:
		s := g.randomBytes(size)
		for i := 0; i < count; i++ {
			result = append(result, slices.Clone(s))
		}

	case Text:
		// The text continues from one message to the next.
		idx := 0
		for i := 0; i < count; i++ {
			msg := make([]byte, 0, size)
			for len(msg) < size {
				need := size - len(msg)
				have := len(pangram) - idx
				if have > need {
					msg = append(msg, pangram[idx:idx+need]...)
					idx += need
				} else {
					msg = append(msg, pangram[idx:]...)
					idx = 0
				}
			}
			result = append(result, msg)
		}

	case Increasing:
		// Each message starts where the previous one stopped; when the next
		// number doesn't fit, the rest of the message is filled with zeros.
		n := 1
		for i := 0; i < count; i++ {
			msg := make([]byte, 0, size)
			for len(msg) < size {
				num := strconv.Itoa(n)
				remaining := size - len(msg)
				comma := 0
				if len(msg) > 0 {
					comma = 1
				}
				if len(num)+comma > remaining {
					msg = append(msg, strings.Repeat("0", remaining)...)
					break
				}
				if comma > 0 {
					msg = append(msg, ',')
				}
				msg = append(msg, num...)
				n++
			}
			result = append(result, msg)
		}

	case ProgressiveGrowth:
		const total = 100000
		for i := 0; i < count; i++ {
			n := 100 << i
			if i > 10 {
				n = total
			}
			chunk := g.randomBytes(n)
			msg := make([]byte, 0, total)
			for len(msg) < total {
				msg = append(msg, chunk...)
			}
			result = append(result, msg[:total])
		}

	case JSON:
		for i := 0; i < count; i++ {
			msg, err := g.jsonMessage(i)
			if err != nil {
				return nil, err
			}
			result = append(result, msg)
		}

	default:
		return nil, fmt.Errorf("%w %q", ErrPattern, string(p))
	}
	return result, nil
}

func (g *Generator) randomBytes(n int) []byte {
	b := make([]byte, n)
	g.Rand.Read(b)
	return b
}

// Generate is a shortcut for NewGenerator(seed).Generate(p, sizeBits, count).
func Generate(p Pattern, sizeBits, count int, seed int64) ([][]byte, error) {
	return NewGenerator(seed).Generate(p, sizeBits, count)
}
