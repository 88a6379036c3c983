// Package whiteboard simulates two peers sharing a drawing grid. A click on
// either grid is sent as a message to the other peer, and both grids end up
// with the same cell filled.
package whiteboard

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// GridSize is the number of rows and columns in each grid.
const GridSize = 3

// Palette is the set of colors that can be drawn with.
var Palette = []string{"#0891b2", "#ea580c", "#d6ad09", "#c756c3"}

// EmptyLog is what an empty message log shows.
const EmptyLog = "Messages appear here"

var (
	ErrColor = errors.New("whiteboard: color not in palette")
	ErrCell  = errors.New("whiteboard: cell out of range")
	ErrSide  = errors.New("whiteboard: unknown side")
)

// A Side identifies one of the two peers.
type Side int

const (
	Left Side = iota
	Right
)

// Other returns the peer on the other side.
func (s Side) Other() Side {
	return 1 - s
}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// ParseSide parses "left" or "right".
func ParseSide(s string) (Side, error) {
	switch s {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, fmt.Errorf("%w %q", ErrSide, s)
}

// A Message is what one peer sends the other when a cell is clicked.
type Message struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Color string `json:"color"`
}

// Direction says whether a log entry was sent or received.
type Direction int

const (
	Sent Direction = iota
	Received
)

// Arrow returns the symbol shown for d.
func (d Direction) Arrow() string {
	if d == Sent {
		return "⬆"
	}
	return "⬇"
}

// An Entry is one line of a peer's message log.
type Entry struct {
	Direction Direction
	Message   Message
}

// String renders e the way it is logged: the arrow, then the message as
// JSON with its fields in row, col, color order.
func (e Entry) String() string {
	m := e.Message
	return fmt.Sprintf(`%s {"row":%d,"col":%d,"color":%q}`, e.Direction.Arrow(), m.Row, m.Col, m.Color)
}

// A Grid is one peer's view of the board. An empty string means the cell is
// not filled.
type Grid [GridSize][GridSize]string

// Filled reports whether the cell at row, col has been drawn on.
func (g *Grid) Filled(row, col int) bool {
	return g[row][col] != ""
}

// A Peer is one side of the board.
type Peer struct {
	Grid Grid
	Log  []Entry
}

// LogText returns the peer's log as it is displayed.
func (p *Peer) LogText() []string {
	if len(p.Log) == 0 {
		return []string{EmptyLog}
	}
	lines := make([]string, len(p.Log))
	for i, e := range p.Log {
		lines[i] = e.String()
	}
	return lines
}

// A Transport carries a message from one peer to the other.
type Transport interface {
	Deliver(to Side, m Message) error
}

// Loopback is a Transport that hands messages straight to the board, in the
// same call.
type Loopback struct {
	Board *Board
}

func (l Loopback) Deliver(to Side, m Message) error {
	return l.Board.Receive(to, m)
}

// A Board holds the two peers, the current color, and every message drawn
// so far.
type Board struct {
	Peers     [2]Peer
	Color     string
	History   []Message
	Transport Transport
}

// New returns an empty board that delivers messages through a Loopback.
func New() *Board {
	b := &Board{Color: Palette[0]}
	b.Transport = Loopback{Board: b}
	return b
}

// SelectColor sets the color used for the next clicks.
func (b *Board) SelectColor(color string) error {
	if !slices.Contains(Palette, color) {
		return fmt.Errorf("%w: %q", ErrColor, color)
	}
	b.Color = color
	return nil
}

func checkCell(row, col int) error {
	if row < 0 || row >= GridSize || col < 0 || col >= GridSize {
		return fmt.Errorf("%w: (%d, %d)", ErrCell, row, col)
	}
	return nil
}

func checkSide(s Side) error {
	if s != Left && s != Right {
		return fmt.Errorf("%w %d", ErrSide, int(s))
	}
	return nil
}

// Click handles a click on a cell of one peer's grid. The peer logs the
// message as sent, fills its own cell, and sends it to the other peer.
func (b *Board) Click(origin Side, row, col int) (Message, error) {
	if err := checkSide(origin); err != nil {
		return Message{}, err
	}
	if err := checkCell(row, col); err != nil {
		return Message{}, err
	}
	m := Message{Row: row, Col: col, Color: b.Color}

	p := &b.Peers[origin]
	p.Log = append(p.Log, Entry{Direction: Sent, Message: m})
	p.Grid[row][col] = m.Color
	b.History = append(b.History, m)

	if err := b.Transport.Deliver(origin.Other(), m); err != nil {
		return m, fmt.Errorf("whiteboard: delivering to %v: %w", origin.Other(), err)
	}
	return m, nil
}

// Receive applies a message that arrived at a peer.
func (b *Board) Receive(to Side, m Message) error {
	if err := checkSide(to); err != nil {
		return err
	}
	if err := checkCell(m.Row, m.Col); err != nil {
		return err
	}
	if !slices.Contains(Palette, m.Color) {
		return fmt.Errorf("%w: %q", ErrColor, m.Color)
	}
	p := &b.Peers[to]
	p.Log = append(p.Log, Entry{Direction: Received, Message: m})
	p.Grid[m.Row][m.Col] = m.Color
	return nil
}

// Reset clears both grids, both logs, and the history. The selected color is
// kept.
func (b *Board) Reset() {
	b.Peers = [2]Peer{}
	b.History = nil
}

// InSync reports whether both peers show the same grid.
func (b *Board) InSync() bool {
	return b.Peers[Left].Grid == b.Peers[Right].Grid
}
