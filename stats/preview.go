package stats

import (
	"encoding/hex"
	"strings"
)

// A Breakpoint is a display width class; it decides how many bytes of a
// message are shown.
type Breakpoint int

const (
	Desktop Breakpoint = iota
	Tablet
	Mobile
)

// BreakpointFor returns the breakpoint for a screen width in pixels.
func BreakpointFor(width int) Breakpoint {
	switch {
	case width <= 480:
		return Mobile
	case width <= 768:
		return Tablet
	}
	return Desktop
}

// MaxBytes is the number of bytes shown before a preview is shortened.
func (b Breakpoint) MaxBytes() int {
	switch b {
	case Mobile:
		return 6
	case Tablet:
		return 12
	}
	return 20
}

func (b Breakpoint) String() string {
	switch b {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	}
	return "desktop"
}

// HexPreview formats msg as space-separated hex bytes. If msg is longer than
// maxBytes, only the first and last maxBytes/2 bytes are shown, separated by
// "...".
func HexPreview(msg []byte, maxBytes int) string {
	if len(msg) <= maxBytes {
		return hexBytes(msg)
	}
	half := maxBytes / 2
	return hexBytes(msg[:half]) + " ... " + hexBytes(msg[len(msg)-half:])
}

func hexBytes(b []byte) string {
	parts := make([]string, len(b))
	for i := range b {
		parts[i] = hex.EncodeToString(b[i : i+1])
	}
	return strings.Join(parts, " ")
}
