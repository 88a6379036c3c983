package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/lzstep/internal/config"
	"github.com/andybalholm/lzstep/stats"
)

func statsCommand(cfg config.Stats, args []string, stdout io.Writer) error {
	fs := newFlagSet("stats")
	pattern := fs.String("pattern", cfg.Pattern, "data pattern: "+patternNames())
	messageBits := fs.Int("size", cfg.MessageBits, "message size as a power of two")
	windowBits := fs.Int("window", cfg.WindowBits, "DEFLATE window bits (9-15)")
	count := fs.Int("n", cfg.Count, "number of messages")
	seed := fs.Int64("seed", cfg.Seed, "random seed")
	codecs := fs.String("codecs", strings.Join(cfg.Codecs, ","), "comma-separated codecs to compare: "+strings.Join(stats.CodecNames(), ", "))
	chartFile := fs.String("chart", cfg.Chart, "write an SVG chart of reduction by window size")
	width := fs.Int("width", 1200, "display width used to size the hex previews")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Pattern, cfg.MessageBits, cfg.WindowBits, cfg.Count, cfg.Seed = *pattern, *messageBits, *windowBits, *count, *seed
	cfg.Codecs = nil
	if *codecs != "" {
		cfg.Codecs = strings.Split(*codecs, ",")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	p, err := stats.ParsePattern(cfg.Pattern)
	if err != nil {
		return err
	}
	messages, err := stats.Generate(p, cfg.MessageBits, cfg.Count, cfg.Seed)
	if err != nil {
		return err
	}
	logf("generated %d %s messages", len(messages), p)

	results, err := stats.Run(messages, cfg.WindowBits)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: %s\n", p.Label(), p.Description())
	maxBytes := stats.BreakpointFor(*width).MaxBytes()
	for i, r := range results {
		fmt.Fprintf(stdout, "#%d %v  [%s]\n", i+1, r, stats.HexPreview(messages[i], maxBytes))
	}
	fmt.Fprintln(stdout, stats.Summarize(results))
	if obs := p.Observation(); obs != "" {
		fmt.Fprintln(stdout, obs)
	}

	selected, err := stats.SelectCodecs(stats.Codecs(cfg.WindowBits), cfg.Codecs)
	if err != nil {
		return err
	}
	comparison, err := stats.Compare(messages, selected)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout)
	for _, c := range comparison {
		fmt.Fprintf(stdout, "%-10s %7d -> %7d bytes (%6.2f%%) %v\n", c.Codec, c.Original, c.Compressed, c.Reduction(), c.Elapsed)
	}

	if *chartFile != "" {
		if err := writeChart(*chartFile, p, cfg.MessageBits, cfg.Count, cfg.Seed); err != nil {
			return err
		}
		logf("wrote %s", *chartFile)
	}
	return nil
}

func patternNames() string {
	var names []string
	for _, p := range stats.Patterns() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

func writeChart(path string, p stats.Pattern, messageBits, count int, seed int64) error {
	s, err := stats.Sweep(p, messageBits, count, seed)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart: %w", err)
	}
	if err := stats.RenderChart(f, p.Label(), []stats.Series{s}); err != nil {
		f.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return f.Close()
}
