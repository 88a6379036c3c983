package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andybalholm/lzstep"
	"github.com/andybalholm/lzstep/encode"
	"github.com/andybalholm/lzstep/internal/config"
)

func stepsCommand(cfg config.Steps, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := newFlagSet("steps")
	input := fs.String("input", cfg.Input, "text to parse")
	window := fs.Int("window", cfg.WindowSize, "look-back window size")
	hashChain := fs.Bool("hashchain", cfg.HashChain, "use the hash chain searcher")
	interactive := fs.Bool("i", false, "read f/b/w N/p N/q commands from stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Input, cfg.WindowSize, cfg.HashChain = *input, *window, *hashChain

	opts := []lzstep.Option{lzstep.WithLimits(cfg.Limits())}
	if cfg.HashChain {
		opts = append(opts, lzstep.WithSearcher(new(lzstep.HashChain)))
	}
	n, err := lzstep.NewNavigator([]byte(cfg.Input), cfg.WindowSize, opts...)
	if err != nil {
		return err
	}
	logf("%d steps for %d bytes, window %d", len(n.Steps()), len(cfg.Input), cfg.WindowSize)

	if *interactive {
		return walk(n, stdin, stdout)
	}

	for {
		if err := writeLines(stdout, renderFrame(n.Steps(), n.Input(), n.Frame())); err != nil {
			return err
		}
		if !n.StepForward() {
			break
		}
	}
	return writeLines(stdout, renderEncoded(n))
}

// walk runs an interactive session: every cursor move prints the new frame.
func walk(n *lzstep.Navigator, stdin io.Reader, stdout io.Writer) error {
	var werr error
	n.Subscribe(func(f lzstep.Frame) {
		if werr == nil {
			werr = writeLines(stdout, renderFrame(n.Steps(), n.Input(), f))
		}
	})
	if err := writeLines(stdout, renderFrame(n.Steps(), n.Input(), n.Frame())); err != nil {
		return err
	}

	sc := bufio.NewScanner(stdin)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		var err error
		switch fields[0] {
		case "f":
			if !n.StepForward() {
				err = fmt.Errorf("cannot step forward")
			}
		case "b":
			if !n.StepBackward() {
				err = fmt.Errorf("cannot step backward")
			}
		case "w", "p":
			var v int
			if len(fields) != 2 {
				err = fmt.Errorf("%s needs a number", fields[0])
				break
			}
			v, err = strconv.Atoi(fields[1])
			if err != nil {
				break
			}
			if fields[0] == "w" {
				err = n.Recompute(v)
			} else {
				n.SetPosition(v)
			}
		case "e":
			err = writeLines(stdout, renderEncoded(n))
		case "q":
			return werr
		default:
			err = fmt.Errorf("unknown command %q", fields[0])
		}
		if werr != nil {
			return werr
		}
		if err != nil {
			fmt.Fprintln(stdout, "!", err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read from stdin: %w", err)
	}
	return werr
}

// renderFrame draws the input with a marker line under it:
// w for the window, r for the referenced bytes, and N (or n for a single
// literal) for the bytes emitted by the current step. The last line is the
// encoded output with the token for the cursor in brackets.
func renderFrame(steps lzstep.Steps, input []byte, f lzstep.Frame) []string {
	var text, marks strings.Builder
	for i, c := range input {
		if c < ' ' || c > '~' {
			c = '.'
		}
		text.WriteByte(c)

		h := f.Classify(i)
		switch {
		case h.Has(lzstep.NextMulti):
			marks.WriteByte('N')
		case h.Has(lzstep.NextSingle):
			marks.WriteByte('n')
		case h.Has(lzstep.Reference):
			marks.WriteByte('r')
		case h.Has(lzstep.InWindow):
			marks.WriteByte('w')
		default:
			marks.WriteByte(' ')
		}
	}

	var step string
	switch {
	case !f.HasStep:
		step = "end of input"
	case f.Step.IsMatch():
		step = fmt.Sprintf("match %v from %d", f.Step, f.Reference.Start)
	default:
		step = fmt.Sprintf("literal %q", f.Step.Symbol)
	}
	if f.Index < 0 {
		step += " (unresolved)"
	}

	nav := ""
	if f.CanBackward {
		nav += "<"
	}
	if f.CanForward {
		nav += ">"
	}
	return []string{
		fmt.Sprintf("Step %d (of %d) at %d: %s %s", f.DisplayIndex(), f.Total, f.Position, step, nav),
		"  " + text.String(),
		"  " + marks.String(),
		"  output: " + markToken(steps, f.Position),
	}
}

// markToken renders steps with the token covering pos in brackets.
func markToken(steps lzstep.Steps, pos int) string {
	_, cur := steps.TokenAt(pos)
	var b strings.Builder
	for i, t := range steps.Tokens() {
		if i == cur {
			b.WriteString("[" + t.Text + "]")
			continue
		}
		b.WriteString(t.Text)
	}
	return b.String()
}

// renderEncoded shows the step sequence and the sizes it encodes to.
func renderEncoded(n *lzstep.Navigator) []string {
	steps := n.Steps()
	lines := []string{
		"steps:   " + steps.String(),
		"encoded: " + string(lzstep.TextEncoder{}.Encode(nil, n.Input(), steps.Runs())),
	}
	for _, e := range []struct {
		name string
		enc  encode.Encoder
	}{
		{"snappy", encode.SnappyBlock{}},
		{"lz4", encode.LZ4Block{}},
	} {
		out, err := encode.Compress(nil, e.enc, n.Input(), n.WindowSize(), encode.WholeBlock(n.Input()))
		if err != nil {
			lines = append(lines, fmt.Sprintf("%-8s %v", e.name+":", err))
			continue
		}
		lines = append(lines, fmt.Sprintf("%-8s %d -> %d bytes", e.name+":", len(n.Input()), len(out)))
	}
	return lines
}
