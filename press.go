// Package lzstep breaks LZ77 compression down into steps that can be
// replayed one at a time.
//
// An LZ77 compressor walks through its input, and at each position it either
// copies a run of bytes from earlier in the stream (a match) or emits the
// byte as it is (a literal). Real compressors do this too fast to watch. This
// package produces the same kind of decisions as a list of Steps, and a
// Navigator that moves a cursor back and forth over them, so that something
// else (a terminal, a web page) can show what the compressor is looking at.
//
// The steps can also be converted to Runs, the intermediate representation
// used by the block encoders in the encode package.
package lzstep

// MinMatchLength is the shortest repeat that is reported as a match.
// Shorter repeats are emitted as literals.
const MinMatchLength = 3

// A Match is a back-reference: the Length bytes at the current position are
// the same as the Length bytes Distance positions earlier.
type Match struct {
	Length   int
	Distance int
}

// A Step is one unit of encoder output. If Length is 0 it is a literal,
// carrying the byte at Position in Symbol; otherwise it is a match.
type Step struct {
	Position int
	Symbol   byte

	Length   int
	Distance int
}

// IsMatch reports whether s is a back-reference rather than a literal.
func (s Step) IsMatch() bool {
	return s.Length > 0
}

// Len returns the number of input bytes covered by s.
func (s Step) Len() int {
	if s.Length > 0 {
		return s.Length
	}
	return 1
}

// End returns the index of the byte after the last byte covered by s.
func (s Step) End() int {
	return s.Position + s.Len()
}

// Match returns the back-reference of a match step.
func (s Step) Match() (Match, bool) {
	if !s.IsMatch() {
		return Match{}, false
	}
	return Match{Length: s.Length, Distance: s.Distance}, true
}

// A Run is the run-length form of a group of steps: some literal bytes
// followed by a match.
type Run struct {
	Unmatched int // the number of literal bytes since the previous match
	Length    int // the number of bytes in the matched string; it may be 0 at the end of the input
	Distance  int // how far back in the stream to copy from
}

// Window returns the bounds of the look-back region for pos: the bytes that a
// match starting at pos may refer to.
func Window(pos, windowSize int) (start, end int) {
	start = pos - windowSize
	if start < 0 {
		start = 0
	}
	return start, pos
}
