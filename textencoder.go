package lzstep

import (
	"fmt"
	"strings"
)

// A Token is one item of the encoded-output view: a literal byte, or a
// back-reference written as (l=Length,d=Distance).
type Token struct {
	Step Step
	Text string
}

// Tokens returns the encoded-output view of s, one Token per step.
func (s Steps) Tokens() []Token {
	tokens := make([]Token, len(s))
	for i, st := range s {
		tokens[i] = Token{Step: st, Text: st.String()}
	}
	return tokens
}

// TokenAt returns the token to highlight for a cursor at pos: the one whose
// step covers pos, even if pos is in the middle of a match. The index is -1
// if pos is outside the input.
func (s Steps) TokenAt(pos int) (Token, int) {
	i := s.Covering(pos)
	if i < 0 {
		return Token{}, -1
	}
	return Token{Step: s[i], Text: s[i].String()}, i
}

// String renders a literal as its byte, and a match as (l=Length,d=Distance).
func (s Step) String() string {
	if s.IsMatch() {
		return fmt.Sprintf("(l=%d,d=%d)", s.Length, s.Distance)
	}
	return string([]byte{s.Symbol})
}

// String returns the encoded-output view of s as a single line.
func (s Steps) String() string {
	var b strings.Builder
	for _, st := range s {
		b.WriteString(st.String())
	}
	return b.String()
}

// A TextEncoder produces a human-readable representation of the LZ77
// compression in run-length form. Matches are replaced with <Length,Distance>
// symbols.
type TextEncoder struct{}

// Encode appends the encoded form of src to dst, using the match information
// from runs.
func (TextEncoder) Encode(dst []byte, src []byte, runs []Run) []byte {
	pos := 0
	for _, r := range runs {
		if r.Unmatched > 0 {
			dst = append(dst, src[pos:pos+r.Unmatched]...)
			pos += r.Unmatched
		}
		if r.Length > 0 {
			dst = append(dst, fmt.Sprintf("<%d,%d>", r.Length, r.Distance)...)
			pos += r.Length
		}
	}
	if pos < len(src) {
		dst = append(dst, src[pos:]...)
	}
	return dst
}
