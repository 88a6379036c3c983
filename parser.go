package lzstep

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Steps is a sequence of steps that covers an input from start to end, with
// no gaps and no overlaps.
type Steps []Step

// A GreedyParser implements the greedy matching strategy: It goes from start
// to end, taking the match it is offered at each position if there is one,
// and a literal otherwise.
type GreedyParser struct{}

// Parse builds the steps for src, appends them to dst, and returns dst.
// The searcher is reset for src before it is used.
func (GreedyParser) Parse(dst Steps, s Searcher, src []byte, windowSize int) Steps {
	s.Reset(src, windowSize)
	pos := 0
	for pos < len(src) {
		if m, ok := s.Search(pos); ok {
			dst = append(dst, Step{
				Position: pos,
				Length:   m.Length,
				Distance: m.Distance,
			})
			pos += m.Length
			continue
		}
		dst = append(dst, Step{
			Position: pos,
			Symbol:   src[pos],
		})
		pos++
	}
	return dst
}

// BuildSteps returns the greedy step sequence for input, using FindMatch at
// each position. The result depends only on its arguments.
func BuildSteps(input []byte, windowSize int) Steps {
	return GreedyParser{}.Parse(nil, new(BruteForce), input, windowSize)
}

// Clone returns a copy of s that shares no memory with it.
func (s Steps) Clone() Steps {
	return slices.Clone(s)
}

// Equal reports whether s and t contain the same steps.
func (s Steps) Equal(t Steps) bool {
	return slices.Equal(s, t)
}

// Index returns the index of the step that starts at pos, or -1 if no step
// starts there.
func (s Steps) Index(pos int) int {
	i, found := slices.BinarySearchFunc(s, pos, func(st Step, pos int) int {
		return st.Position - pos
	})
	if !found {
		return -1
	}
	return i
}

// Covering returns the index of the step that covers the byte at pos,
// or -1 if pos is outside the sequence.
func (s Steps) Covering(pos int) int {
	i, found := slices.BinarySearchFunc(s, pos, func(st Step, pos int) int {
		return st.Position - pos
	})
	if found {
		return i
	}
	if i == 0 || pos >= s[i-1].End() {
		return -1
	}
	return i - 1
}

// Runs converts s to run-length form. Consecutive literals are folded into
// the Unmatched count of the following match; trailing literals become a
// final Run with Length 0.
func (s Steps) Runs() []Run {
	var runs []Run
	unmatched := 0
	for _, st := range s {
		if !st.IsMatch() {
			unmatched++
			continue
		}
		runs = append(runs, Run{
			Unmatched: unmatched,
			Length:    st.Length,
			Distance:  st.Distance,
		})
		unmatched = 0
	}
	if unmatched > 0 {
		runs = append(runs, Run{Unmatched: unmatched})
	}
	return runs
}

// Validate checks that s is a valid step sequence for input: the steps tile
// the input exactly, every match is at least MinMatchLength long, stays
// within windowSize and the start of the input, and copies bytes that are
// actually equal.
func (s Steps) Validate(input []byte, windowSize int) error {
	pos := 0
	for i, st := range s {
		if st.Position != pos {
			return fmt.Errorf("lzstep: step %d starts at %d, want %d", i, st.Position, pos)
		}
		if !st.IsMatch() {
			if pos >= len(input) || input[pos] != st.Symbol {
				return fmt.Errorf("lzstep: literal %d at %d does not match input", i, pos)
			}
			pos++
			continue
		}
		if st.Length < MinMatchLength {
			return fmt.Errorf("lzstep: match %d at %d is only %d bytes", i, pos, st.Length)
		}
		if st.Distance < 1 || st.Distance > windowSize || st.Distance > pos {
			return fmt.Errorf("lzstep: match %d at %d has invalid distance %d", i, pos, st.Distance)
		}
		if st.End() > len(input) {
			return fmt.Errorf("lzstep: match %d at %d runs past the end of the input", i, pos)
		}
		for k := 0; k < st.Length; k++ {
			if input[pos+k] != input[pos-st.Distance+k] {
				return fmt.Errorf("lzstep: match %d at %d differs from its reference at offset %d", i, pos, k)
			}
		}
		pos += st.Length
	}
	if pos != len(input) {
		return fmt.Errorf("lzstep: steps cover %d bytes, input has %d", pos, len(input))
	}
	return nil
}
