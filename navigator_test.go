package lzstep

import (
	"errors"
	"testing"
)

func TestNavigatorWalk(t *testing.T) {
	for _, input := range testInputs() {
		n, err := NewNavigator(input, 6, WithLimits(Limits{Min: 1}))
		if err != nil {
			t.Fatal(err)
		}
		steps := n.Steps()
		if len(steps) == 0 {
			if n.StepForward() || n.StepBackward() {
				t.Fatal("moved through an empty sequence")
			}
			continue
		}

		for i := 0; i < len(steps); i++ {
			if got := n.Index(); got != i {
				t.Fatalf("forward: index %d, want %d", got, i)
			}
			if n.Position() != steps[i].Position {
				t.Fatalf("forward: position %d, want %d", n.Position(), steps[i].Position)
			}
			moved := n.StepForward()
			if moved != (i < len(steps)-1) {
				t.Fatalf("StepForward at %d of %d returned %v", i, len(steps), moved)
			}
		}
		if n.StepForward() {
			t.Fatal("StepForward moved past the last step")
		}

		for i := len(steps) - 1; i >= 0; i-- {
			if got := n.Index(); got != i {
				t.Fatalf("backward: index %d, want %d", got, i)
			}
			moved := n.StepBackward()
			if moved != (i > 0) {
				t.Fatalf("StepBackward at %d returned %v", i, moved)
			}
		}
		if n.StepBackward() || n.Index() != 0 {
			t.Fatal("StepBackward moved before the first step")
		}
	}
}

func TestNavigatorRecompute(t *testing.T) {
	n, err := NewNavigator([]byte(sample), 6)
	if err != nil {
		t.Fatal(err)
	}
	for n.StepForward() {
	}
	if n.Position() != 12 {
		t.Fatalf("last step at %d, want 12", n.Position())
	}
	old := n.Steps()

	if err := n.Recompute(9); err != nil {
		t.Fatal(err)
	}
	if n.Position() != 0 || n.Index() != 0 {
		t.Fatalf("Recompute left the cursor at %d", n.Position())
	}
	if n.Steps().Equal(old) {
		t.Fatal("steps did not change with the window size")
	}
	if !old.Equal(BuildSteps([]byte(sample), 6)) {
		t.Fatal("Recompute modified the previous step sequence")
	}

	for _, w := range []int{0, 2, 10, -1} {
		err := n.Recompute(w)
		if !errors.Is(err, ErrWindowSize) {
			t.Fatalf("Recompute(%d) = %v, want ErrWindowSize", w, err)
		}
	}
	if n.WindowSize() != 9 {
		t.Fatalf("rejected window size changed the navigator: %d", n.WindowSize())
	}

	if _, err := NewNavigator([]byte(sample), 12); !errors.Is(err, ErrWindowSize) {
		t.Fatalf("NewNavigator accepted window 12: %v", err)
	}
	if _, err := NewNavigator([]byte(sample), 6, WithLimits(Limits{Min: 3, Max: 9, MaxInput: 10})); !errors.Is(err, ErrInputTooLong) {
		t.Fatalf("NewNavigator accepted a long input: %v", err)
	}
}

func TestNavigatorUnresolved(t *testing.T) {
	n, err := NewNavigator([]byte(sample), 6)
	if err != nil {
		t.Fatal(err)
	}
	n.SetPosition(7) // inside the match at 6
	if n.Index() != -1 {
		t.Fatalf("Index() = %d, want -1", n.Index())
	}
	if n.CanStepForward() || n.CanStepBackward() {
		t.Fatal("navigation enabled with an unresolved cursor")
	}
	if n.StepForward() || n.StepBackward() {
		t.Fatal("moved from an unresolved cursor")
	}
	f := n.Frame()
	if f.DisplayIndex() != 0 || f.CanForward || f.CanBackward {
		t.Fatalf("unresolved frame: %+v", f)
	}

	if err := n.Recompute(6); err != nil {
		t.Fatal(err)
	}
	if !n.CanStepForward() {
		t.Fatal("Recompute did not resolve the cursor")
	}
}

func TestNavigatorSubscribe(t *testing.T) {
	n, err := NewNavigator([]byte(sample), 6)
	if err != nil {
		t.Fatal(err)
	}
	var frames []Frame
	n.Subscribe(func(f Frame) { frames = append(frames, f) })

	n.StepBackward() // no-op, no frame
	n.StepForward()
	n.StepForward()
	if err := n.Recompute(7); err != nil {
		t.Fatal(err)
	}

	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	if frames[0].Position != 1 || frames[1].Position != 2 || frames[2].Position != 0 {
		t.Fatalf("frame positions: %d %d %d", frames[0].Position, frames[1].Position, frames[2].Position)
	}
}

func TestNavigatorHashChain(t *testing.T) {
	input := []byte("The quick brown fox jumps over the lazy dog. The quick brown fox jumps over the lazy dog.")
	n, err := NewNavigator(input, 64, WithSearcher(new(HashChain)), WithLimits(Limits{Min: 1, Max: 1 << 15}))
	if err != nil {
		t.Fatal(err)
	}
	if !n.Steps().Equal(BuildSteps(input, 64)) {
		t.Fatal("hash chain navigator built different steps")
	}
}
