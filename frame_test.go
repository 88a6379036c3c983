package lzstep

import "testing"

func TestFrame(t *testing.T) {
	n, err := NewNavigator([]byte(sample), 6)
	if err != nil {
		t.Fatal(err)
	}

	f := n.Frame()
	if f.Window.Len() != 0 || f.Next != (Span{0, 1}) || f.Reference.Len() != 0 {
		t.Fatalf("first frame: %+v", f)
	}
	if f.CanBackward || !f.CanForward || f.Total != 11 {
		t.Fatalf("first frame controls: %+v", f)
	}

	for n.Position() < 6 {
		n.StepForward()
	}
	f = n.Frame()
	if f.Index != 6 || !f.Step.IsMatch() {
		t.Fatalf("frame at 6: %+v", f)
	}
	if f.Window != (Span{0, 6}) || f.Next != (Span{6, 9}) || f.Reference != (Span{3, 6}) {
		t.Fatalf("frame at 6: window %v next %v reference %v", f.Window, f.Next, f.Reference)
	}

	tests := []struct {
		i    int
		want Highlight
	}{
		{0, InWindow | WindowFirst},
		{2, InWindow},
		{3, InWindow | Reference},
		{5, InWindow | WindowLast | Reference},
		{6, NextMulti},
		{8, NextMulti},
		{9, 0},
	}
	for _, tt := range tests {
		if got := f.Classify(tt.i); got != tt.want {
			t.Errorf("Classify(%d) = %b, want %b", tt.i, got, tt.want)
		}
	}

	n.StepForward()
	f = n.Frame()
	if f.Position != 9 || f.Window != (Span{3, 9}) || f.Classify(9) != NextSingle {
		t.Fatalf("frame at 9: %+v", f)
	}
}

func TestFrameUnresolved(t *testing.T) {
	n, err := NewNavigator([]byte(sample), 6)
	if err != nil {
		t.Fatal(err)
	}

	// The search result at the cursor is still shown.
	n.SetPosition(7)
	f := n.Frame()
	if !f.HasStep || f.Step.IsMatch() || f.Next != (Span{7, 8}) {
		t.Fatalf("frame at 7: %+v", f)
	}

	n.SetPosition(len(sample))
	if f := n.Frame(); f.HasStep || f.Next.Len() != 0 || f.Window != (Span{9, 15}) {
		t.Fatalf("frame at end: %+v", f)
	}
}

func TestTokens(t *testing.T) {
	steps := BuildSteps([]byte(sample), 6)
	tokens := steps.Tokens()
	if len(tokens) != len(steps) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(steps))
	}
	if tokens[6].Text != "(l=3,d=3)" || tokens[10].Text != "(l=3,d=6)" || tokens[0].Text != "a" {
		t.Fatalf("tokens: %v", tokens)
	}
}

func TestTokenAt(t *testing.T) {
	steps := BuildSteps([]byte(sample), 6)
	for pos, want := range map[int]int{0: 0, 6: 6, 7: 6, 8: 6, 9: 7, 14: 10} {
		tok, i := steps.TokenAt(pos)
		if i != want || tok.Step != steps[want] || tok.Text != steps[want].String() {
			t.Errorf("TokenAt(%d) = %v, %d, want index %d", pos, tok, i, want)
		}
	}
	if _, i := steps.TokenAt(len(sample)); i != -1 {
		t.Errorf("TokenAt(end) = %d, want -1", i)
	}
	if _, i := Steps(nil).TokenAt(0); i != -1 {
		t.Errorf("TokenAt on no steps = %d, want -1", i)
	}
}
