package lzstep

// A Searcher looks for the match to use at one position of its input.
type Searcher interface {
	// Reset prepares the Searcher to look for matches in src, going back at
	// most windowSize bytes.
	Reset(src []byte, windowSize int)

	// Search returns the longest match at pos. Among matches of the same
	// length, the one with the smallest distance is returned. The boolean
	// result is false if there is no match of at least MinMatchLength bytes.
	Search(pos int) (Match, bool)
}

// FindMatch looks for the longest match for the bytes at pos in input,
// going back at most windowSize bytes.
//
// Every distance from 1 to the window size is tried in order, and the first
// longest match wins. The referenced bytes may run into the bytes being
// matched, so a run of one repeated byte matches itself at distance 1.
func FindMatch(input []byte, pos, windowSize int) (Match, bool) {
	if pos >= len(input) {
		return Match{}, false
	}

	maxDist := windowSize
	if pos < maxDist {
		maxDist = pos
	}

	var best Match
	for d := 1; d <= maxDist; d++ {
		ref := pos - d
		n := 0
		for pos+n < len(input) && input[pos+n] == input[ref+n] {
			n++
		}
		if n > best.Length {
			best = Match{Length: n, Distance: d}
		}
	}

	if best.Length < MinMatchLength {
		return Match{}, false
	}
	return best, true
}

// BruteForce is a Searcher that compares the current position against every
// position in the window. It takes time proportional to the window size
// times the match length, which is fine for short inputs.
type BruteForce struct {
	src        []byte
	windowSize int
}

func (b *BruteForce) Reset(src []byte, windowSize int) {
	b.src = src
	b.windowSize = windowSize
}

func (b *BruteForce) Search(pos int) (Match, bool) {
	return FindMatch(b.src, pos, b.windowSize)
}
