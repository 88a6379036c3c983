package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/lzstep/internal/config"
)

func TestStepsCommand(t *testing.T) {
	var out bytes.Buffer
	if err := stepsCommand(config.Default().Steps, nil, nil, &out); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{
		"Step 0 (of 11) at 0: literal 'a' >",
		"output: [a]bc123(l=3,d=3)abc(l=3,d=6)",
		"Step 6 (of 11) at 6: match (l=3,d=3) from 3 <>",
		"Step 10 (of 11) at 12: match (l=3,d=6) from 6 <",
		"encoded: abc123<3,3>abc<3,6>",
		"snappy:",
		"lz4:",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q:\n%s", want, got)
		}
	}
}

func TestStepsInteractive(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("b\nf\np 7\nf\nw 2\nw 9\nq\n")
	if err := stepsCommand(config.Default().Steps, []string{"-i"}, in, &out); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{
		"! cannot step backward",
		"Step 1 (of 11) at 1: literal 'b' <>",
		"Step 0 (of 11) at 7: literal '2' (unresolved)",
		"output: abc123[(l=3,d=3)]abc(l=3,d=6)",
		"! cannot step forward",
		"! lzstep: window size out of range",
		"Step 0 (of 8) at 0",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q:\n%s", want, got)
		}
	}
}

func TestStepsLongInput(t *testing.T) {
	var out bytes.Buffer
	cfg := config.Default().Steps
	cfg.MaxWindow = 0
	input := strings.Repeat("abcdefgh", 10000)
	if err := stepsCommand(cfg, []string{"-input", input, "-window", "1024", "-hashchain"}, nil, &out); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"snappy:  80000 -> ", "lz4:     80000 -> "} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q", want)
		}
	}
	if strings.Contains(got, "block too large") {
		t.Error("block format was split")
	}
}

func TestStepsBadWindow(t *testing.T) {
	var out bytes.Buffer
	if err := stepsCommand(config.Default().Steps, []string{"-window", "1"}, nil, &out); err == nil {
		t.Fatal("window 1 accepted")
	}
}

func TestStatsCommand(t *testing.T) {
	var out bytes.Buffer
	chart := filepath.Join(t.TempDir(), "chart.svg")
	args := []string{"-pattern", "text", "-n", "3", "-codecs", "deflate,steps+snappy", "-chart", chart}
	if err := statsCommand(config.Default().Stats, args, &out); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"#1  512 ->", "#3  512 ->", "deflate", "steps+snappy"} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "brotli") {
		t.Errorf("unselected codec in output:\n%s", got)
	}

	for _, args := range [][]string{
		{"-pattern", "zigzag"},
		{"-size", "30", "-n", "10"},
		{"-size", "8"},
		{"-window", "16"},
		{"-n", "11"},
		{"-codecs", "rar"},
	} {
		if err := statsCommand(config.Default().Stats, args, &out); !errors.Is(err, config.ErrInvalid) {
			t.Errorf("%v: got %v, want config.ErrInvalid", args, err)
		}
	}
}

func TestWhiteboardCommand(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("left 0 0\nright 1 1 #ea580c\n")
	if err := whiteboardCommand(config.Default().Whiteboard, nil, in, &out); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{
		`⬆ {"row":0,"col":0,"color":"#0891b2"}`,
		`⬇ {"row":1,"col":1,"color":"#ea580c"}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q:\n%s", want, got)
		}
	}

	in = strings.NewReader("left 0 0\nup 1 1\n")
	if err := whiteboardCommand(config.Default().Whiteboard, nil, in, &out); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("bad side: %v", err)
	}
}
