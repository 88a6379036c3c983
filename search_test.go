package lzstep

import (
	"bytes"
	"math/rand"
	"testing"
)

const sample = "abc123123abc123"

func TestFindMatch(t *testing.T) {
	tests := []struct {
		input      string
		pos        int
		windowSize int
		want       Match
		ok         bool
	}{
		{sample, 0, 6, Match{}, false},
		{sample, 5, 6, Match{}, false},
		{sample, 6, 6, Match{3, 3}, true},
		{sample, 9, 6, Match{}, false},
		{sample, 9, 9, Match{6, 9}, true},
		{sample, 12, 6, Match{3, 6}, true},
		{sample, 15, 6, Match{}, false},
		{sample, 20, 6, Match{}, false},

		// Repeats of two bytes are too short.
		{"abxab", 3, 5, Match{}, false},

		// The reference may overlap the bytes being matched.
		{"aaaaaa", 1, 1, Match{5, 1}, true},
		{"aaaaaa", 1, 6, Match{5, 1}, true},
		{"abababab", 2, 4, Match{6, 2}, true},

		// Equal lengths: the smaller distance wins.
		{"abcXabcYabc", 8, 8, Match{3, 4}, true},
		// Unless the farther one is longer.
		{"abcdXabcYabcd", 9, 9, Match{4, 9}, true},
		// Which is out of reach with a smaller window.
		{"abcdXabcYabcd", 9, 8, Match{3, 4}, true},
	}

	for _, tt := range tests {
		got, ok := FindMatch([]byte(tt.input), tt.pos, tt.windowSize)
		if ok != tt.ok || got != tt.want {
			t.Errorf("FindMatch(%q, %d, %d) = %v, %v; want %v, %v", tt.input, tt.pos, tt.windowSize, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBuildStepsSample(t *testing.T) {
	steps := BuildSteps([]byte(sample), 6)

	want := Steps{
		{Position: 0, Symbol: 'a'},
		{Position: 1, Symbol: 'b'},
		{Position: 2, Symbol: 'c'},
		{Position: 3, Symbol: '1'},
		{Position: 4, Symbol: '2'},
		{Position: 5, Symbol: '3'},
		{Position: 6, Length: 3, Distance: 3},
		{Position: 9, Symbol: 'a'},
		{Position: 10, Symbol: 'b'},
		{Position: 11, Symbol: 'c'},
		{Position: 12, Length: 3, Distance: 6},
	}
	if !steps.Equal(want) {
		t.Fatalf("got %v, want %v", steps, want)
	}
	if got := steps.String(); got != "abc123(l=3,d=3)abc(l=3,d=6)" {
		t.Fatalf("String() = %q", got)
	}
}

func testInputs() [][]byte {
	rng := rand.New(rand.NewSource(1))
	inputs := [][]byte{
		[]byte(sample),
		[]byte("aaaaaa"),
		[]byte("The quick brown fox jumps over the lazy dog. The quick brown fox jumps over the lazy dog."),
		[]byte("1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16,17,18,19,20,21,22,23,24,25"),
		{},
		{'x'},
	}
	for _, alphabet := range []int{2, 3, 4, 16, 256} {
		for i := 0; i < 5; i++ {
			b := make([]byte, 50+rng.Intn(400))
			for j := range b {
				b[j] = byte(rng.Intn(alphabet))
			}
			inputs = append(inputs, b)
		}
	}
	return inputs
}

func TestTiling(t *testing.T) {
	for _, input := range testInputs() {
		for _, w := range []int{1, 2, 3, 6, 9, 32, 1000} {
			steps := BuildSteps(input, w)
			if err := steps.Validate(input, w); err != nil {
				t.Fatalf("window %d, input %q: %v", w, input, err)
			}
			total := 0
			for _, st := range steps {
				total += st.Len()
			}
			if total != len(input) {
				t.Fatalf("window %d: steps cover %d bytes, want %d", w, total, len(input))
			}
		}
	}
}

func TestMatchValidity(t *testing.T) {
	for _, input := range testInputs() {
		for _, w := range []int{1, 3, 6, 9, 64} {
			for _, st := range BuildSteps(input, w) {
				if !st.IsMatch() {
					continue
				}
				if st.Length <= 2 || st.Distance < 1 || st.Distance > w || st.Distance > st.Position {
					t.Fatalf("window %d: invalid match %+v", w, st)
				}
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	for _, input := range testInputs() {
		a := BuildSteps(input, 9)
		b := BuildSteps(bytes.Clone(input), 9)
		if !a.Equal(b) {
			t.Fatalf("two builds of %q differ", input)
		}
	}
}

func TestWindowSizeSensitivity(t *testing.T) {
	input := []byte(sample)
	small := BuildSteps(input, 6)
	large := BuildSteps(input, 9)

	if i := small.Index(9); i < 0 || small[i].IsMatch() {
		t.Fatalf("window 6: want a literal at 9, got %v", small)
	}
	i := large.Index(9)
	if i < 0 || !large[i].IsMatch() || large[i].Distance != 9 {
		t.Fatalf("window 9: want a match at 9 with distance 9, got %v", large)
	}

	// Growing the window never turns a match into a literal.
	for _, input := range testInputs() {
		for w := 1; w < 20; w++ {
			for pos := range input {
				_, before := FindMatch(input, pos, w)
				_, after := FindMatch(input, pos, w+1)
				if before && !after {
					t.Fatalf("match at %d lost when growing window from %d", pos, w)
				}
			}
		}
	}
}

func TestHashChainMatchesBruteForce(t *testing.T) {
	var hc HashChain
	var p GreedyParser
	for _, input := range testInputs() {
		for _, w := range []int{1, 3, 6, 9, 17, 255, 1 << 16} {
			want := BuildSteps(input, w)
			got := p.Parse(nil, &hc, input, w)
			if !got.Equal(want) {
				t.Fatalf("window %d, input %q:\nhash chain  %v\nbrute force %v", w, input, got, want)
			}
		}
	}
}

func TestRuns(t *testing.T) {
	steps := BuildSteps([]byte(sample), 6)
	want := []Run{
		{Unmatched: 6, Length: 3, Distance: 3},
		{Unmatched: 3, Length: 3, Distance: 6},
	}
	runs := steps.Runs()
	if len(runs) != len(want) {
		t.Fatalf("got %v, want %v", runs, want)
	}
	for i := range runs {
		if runs[i] != want[i] {
			t.Fatalf("got %v, want %v", runs, want)
		}
	}

	var te TextEncoder
	if got := string(te.Encode(nil, []byte(sample), runs)); got != "abc123<3,3>abc<3,6>" {
		t.Fatalf("TextEncoder: got %q", got)
	}

	tail := BuildSteps([]byte("abcabcxy"), 6).Runs()
	if last := tail[len(tail)-1]; last.Length != 0 || last.Unmatched != 2 {
		t.Fatalf("trailing literals: got %v", tail)
	}
}

func TestValidateRejects(t *testing.T) {
	input := []byte(sample)
	good := BuildSteps(input, 6)

	tests := map[string]Steps{
		"gap":        append(good[:3:3], good[4:]...),
		"short":      append(good.Clone()[:10], Step{Position: 12, Length: 2, Distance: 6}, Step{Position: 14, Symbol: '3'}),
		"far":        append(good.Clone()[:10], Step{Position: 12, Length: 3, Distance: 9}),
		"wrong copy": append(good.Clone()[:10], Step{Position: 12, Length: 3, Distance: 5}),
		"incomplete": good[:len(good)-1],
	}
	for name, steps := range tests {
		if err := steps.Validate(input, 6); err == nil {
			t.Errorf("%s: Validate accepted %v", name, steps)
		}
	}
}

func TestCovering(t *testing.T) {
	steps := BuildSteps([]byte(sample), 6)
	for pos, want := range map[int]int{0: 0, 5: 5, 6: 6, 7: 6, 8: 6, 9: 7, 14: 10, 15: -1, -1: -1} {
		if got := steps.Covering(pos); got != want {
			t.Errorf("Covering(%d) = %d, want %d", pos, got, want)
		}
	}
}

func benchmark(b *testing.B, s Searcher) {
	b.StopTimer()
	b.ReportAllocs()
	input := bytes.Repeat([]byte("The quick brown fox jumps over the lazy dog. "), 100)
	b.SetBytes(int64(len(input)))
	var p GreedyParser
	steps := p.Parse(nil, s, input, 4096)
	b.ReportMetric(float64(len(input))/float64(len(steps)), "bytes/step")
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		steps = p.Parse(steps[:0], s, input, 4096)
	}
}

func BenchmarkBruteForce(b *testing.B) {
	benchmark(b, new(BruteForce))
}

func BenchmarkHashChain(b *testing.B) {
	benchmark(b, new(HashChain))
}
