package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andybalholm/lzstep/internal/config"
	"github.com/andybalholm/lzstep/whiteboard"
)

// whiteboardCommand replays clicks read from stdin, one per line:
//
//	side row col [color]
//
// A line containing only "reset" clears the board.
func whiteboardCommand(cfg config.Whiteboard, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := newFlagSet("whiteboard")
	color := fs.String("color", cfg.Color, "initial color")
	if err := fs.Parse(args); err != nil {
		return err
	}

	b := whiteboard.New()
	if err := b.SelectColor(*color); err != nil {
		return err
	}

	sc := bufio.NewScanner(stdin)
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if err := replay(b, fields); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read from stdin: %w", err)
	}

	for _, side := range []whiteboard.Side{whiteboard.Left, whiteboard.Right} {
		p := &b.Peers[side]
		fmt.Fprintf(stdout, "%s:\n", side)
		for _, row := range p.Grid {
			cells := make([]string, len(row))
			for i, c := range row {
				if c == "" {
					c = "   .   "
				}
				cells[i] = c
			}
			fmt.Fprintf(stdout, "  %s\n", strings.Join(cells, " "))
		}
		for _, l := range p.LogText() {
			fmt.Fprintf(stdout, "  %s\n", l)
		}
	}
	if !b.InSync() {
		return fmt.Errorf("grids are out of sync")
	}
	return nil
}

func replay(b *whiteboard.Board, fields []string) error {
	if len(fields) == 1 && fields[0] == "reset" {
		b.Reset()
		return nil
	}
	if len(fields) < 3 || len(fields) > 4 {
		return fmt.Errorf("want: side row col [color]")
	}
	side, err := whiteboard.ParseSide(fields[0])
	if err != nil {
		return err
	}
	row, err := strconv.Atoi(fields[1])
	if err != nil {
		return err
	}
	col, err := strconv.Atoi(fields[2])
	if err != nil {
		return err
	}
	if len(fields) == 4 {
		if err := b.SelectColor(fields[3]); err != nil {
			return err
		}
	}
	_, err = b.Click(side, row, col)
	return err
}
