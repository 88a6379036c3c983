package lzstep

import (
	"errors"
	"fmt"
)

var (
	// ErrWindowSize is returned for a window size outside the allowed range.
	ErrWindowSize = errors.New("lzstep: window size out of range")

	// ErrInputTooLong is returned for an input longer than Limits.MaxInput.
	ErrInputTooLong = errors.New("lzstep: input too long")
)

// Limits bounds the parameters a Navigator accepts. The search is quadratic
// in the worst case, so callers that take input from elsewhere should set
// MaxInput.
type Limits struct {
	// Min and Max bound the window size. A Min below 1 is treated as 1,
	// and a Max of 0 means there is no upper bound.
	Min, Max int

	// MaxInput is the longest input allowed; 0 means no limit.
	MaxInput int
}

// DefaultLimits are the window sizes offered by the sliding-window widget.
var DefaultLimits = Limits{Min: 3, Max: 9}

// CheckWindow returns an error wrapping ErrWindowSize if windowSize is out
// of range.
func (l Limits) CheckWindow(windowSize int) error {
	min := l.Min
	if min < 1 {
		min = 1
	}
	if windowSize < min || (l.Max > 0 && windowSize > l.Max) {
		if l.Max > 0 {
			return fmt.Errorf("%w: %d not in [%d, %d]", ErrWindowSize, windowSize, min, l.Max)
		}
		return fmt.Errorf("%w: %d is less than %d", ErrWindowSize, windowSize, min)
	}
	return nil
}

// CheckInput returns an error wrapping ErrInputTooLong if an input of n
// bytes is too long.
func (l Limits) CheckInput(n int) error {
	if l.MaxInput > 0 && n > l.MaxInput {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrInputTooLong, n, l.MaxInput)
	}
	return nil
}
