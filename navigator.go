package lzstep

// A Navigator moves a cursor through the steps for an input. The steps are
// rebuilt only by Recompute; between calls they do not change.
//
// A Navigator is not safe for concurrent use.
type Navigator struct {
	input      []byte
	windowSize int
	limits     Limits
	searcher   Searcher

	steps    Steps
	position int

	subscribers []func(Frame)
}

// An Option configures a Navigator.
type Option func(*Navigator)

// WithLimits sets the limits used to validate the window size and input.
// The default is DefaultLimits.
func WithLimits(l Limits) Option {
	return func(n *Navigator) { n.limits = l }
}

// WithSearcher sets the Searcher used to build steps. The default is
// BruteForce.
func WithSearcher(s Searcher) Option {
	return func(n *Navigator) { n.searcher = s }
}

// NewNavigator builds the steps for input and returns a Navigator with the
// cursor on the first step.
func NewNavigator(input []byte, windowSize int, opts ...Option) (*Navigator, error) {
	n := &Navigator{
		input:  input,
		limits: DefaultLimits,
	}
	for _, o := range opts {
		o(n)
	}
	if n.searcher == nil {
		n.searcher = new(BruteForce)
	}
	if err := n.limits.CheckInput(len(input)); err != nil {
		return nil, err
	}
	if err := n.Recompute(windowSize); err != nil {
		return nil, err
	}
	return n, nil
}

// Recompute rebuilds the steps with a new window size and moves the cursor
// back to the start. If windowSize is out of range, nothing changes.
func (n *Navigator) Recompute(windowSize int) error {
	if err := n.limits.CheckWindow(windowSize); err != nil {
		return err
	}
	n.windowSize = windowSize
	n.steps = GreedyParser{}.Parse(n.steps[:0:0], n.searcher, n.input, windowSize)
	n.position = 0
	n.publish()
	return nil
}

// Input returns the input being stepped through.
func (n *Navigator) Input() []byte { return n.input }

// WindowSize returns the current window size.
func (n *Navigator) WindowSize() int { return n.windowSize }

// Steps returns the current step sequence. The caller must not modify it.
func (n *Navigator) Steps() Steps { return n.steps }

// Position returns the cursor position.
func (n *Navigator) Position() int { return n.position }

// Index returns the index of the step at the cursor, or -1 if the cursor
// is not at the start of a step.
func (n *Navigator) Index() int {
	return n.steps.Index(n.position)
}

// CanStepForward reports whether StepForward would move the cursor.
func (n *Navigator) CanStepForward() bool {
	i := n.Index()
	return i >= 0 && i < len(n.steps)-1
}

// CanStepBackward reports whether StepBackward would move the cursor.
func (n *Navigator) CanStepBackward() bool {
	return n.Index() > 0
}

// StepForward moves the cursor to the next step. At the last step, or if
// the cursor is unresolved, it does nothing and returns false.
func (n *Navigator) StepForward() bool {
	if !n.CanStepForward() {
		return false
	}
	n.position = n.steps[n.Index()+1].Position
	n.publish()
	return true
}

// StepBackward moves the cursor to the previous step. At the first step,
// or if the cursor is unresolved, it does nothing and returns false.
func (n *Navigator) StepBackward() bool {
	if !n.CanStepBackward() {
		return false
	}
	n.position = n.steps[n.Index()-1].Position
	n.publish()
	return true
}

// SetPosition moves the cursor to an arbitrary input position. If pos is not
// the start of a step, the cursor is unresolved and both directions are
// disabled until the next Recompute.
func (n *Navigator) SetPosition(pos int) {
	n.position = pos
	n.publish()
}

// Frame returns the renderer's view of the current cursor.
func (n *Navigator) Frame() Frame {
	return newFrame(n.steps, n.input, n.searcher, n.position, n.windowSize)
}

// Subscribe registers fn to be called with the new Frame whenever the cursor
// moves or the steps are rebuilt.
func (n *Navigator) Subscribe(fn func(Frame)) {
	n.subscribers = append(n.subscribers, fn)
}

func (n *Navigator) publish() {
	if len(n.subscribers) == 0 {
		return
	}
	f := n.Frame()
	for _, fn := range n.subscribers {
		fn(f)
	}
}
