package lzstep

// A Span is a half-open range [Start, End) of input positions.
type Span struct {
	Start, End int
}

// Len returns the number of positions in s.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Contains reports whether i is in s.
func (s Span) Contains(i int) bool {
	return i >= s.Start && i < s.End
}

// A Frame is everything a renderer needs to draw the current cursor
// position.
type Frame struct {
	// Position is the cursor: the input index of the current step.
	Position int

	// Index is the index of the current step, or -1 if Position is not
	// the start of any step.
	Index int

	// Total is the number of steps.
	Total int

	// Step is the step at Position. If Position is not the start of a step,
	// it is the step the search would produce there. HasStep is false if
	// Position is at the end of the input.
	Step    Step
	HasStep bool

	// Window is the look-back region, Next is the bytes about to be emitted,
	// and Reference is the earlier copy of them when Step is a match.
	Window    Span
	Next      Span
	Reference Span

	CanBackward bool
	CanForward  bool
}

// DisplayIndex is the step number to show: Index, or 0 if the cursor is
// unresolved.
func (f Frame) DisplayIndex() int {
	if f.Index < 0 {
		return 0
	}
	return f.Index
}

// A Highlight describes how a single input byte should be drawn.
type Highlight uint8

const (
	InWindow Highlight = 1 << iota
	WindowFirst
	WindowLast
	NextSingle
	NextMulti
	Reference
)

// Has reports whether all the bits in flag are set in h.
func (h Highlight) Has(flag Highlight) bool {
	return h&flag == flag
}

// Classify returns the highlights for the input byte at i.
func (f Frame) Classify(i int) Highlight {
	var h Highlight
	if f.Window.Contains(i) {
		h |= InWindow
		if i == f.Window.Start {
			h |= WindowFirst
		}
		if i == f.Window.End-1 {
			h |= WindowLast
		}
	}
	if f.Next.Contains(i) {
		if f.Next.Len() > 1 {
			h |= NextMulti
		} else {
			h |= NextSingle
		}
	}
	if f.Reference.Contains(i) {
		h |= Reference
	}
	return h
}

func newFrame(steps Steps, src []byte, s Searcher, pos, windowSize int) Frame {
	f := Frame{
		Position: pos,
		Index:    steps.Index(pos),
		Total:    len(steps),
	}
	f.Window.Start, f.Window.End = Window(pos, windowSize)

	switch {
	case f.Index >= 0:
		f.Step = steps[f.Index]
		f.HasStep = true
		f.CanBackward = f.Index > 0
		f.CanForward = f.Index < len(steps)-1
	case pos >= 0 && pos < len(src):
		f.Step = Step{Position: pos, Symbol: src[pos]}
		if m, ok := s.Search(pos); ok {
			f.Step = Step{Position: pos, Length: m.Length, Distance: m.Distance}
		}
		f.HasStep = true
	}

	if f.HasStep {
		f.Next = Span{Start: pos, End: f.Step.End()}
		if f.Step.IsMatch() {
			ref := pos - f.Step.Distance
			f.Reference = Span{Start: ref, End: ref + f.Step.Length}
		}
	}
	return f
}
