package whiteboard

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestClick(t *testing.T) {
	b := New()
	if got := b.Peers[Left].LogText(); len(got) != 1 || got[0] != EmptyLog {
		t.Fatalf("empty log: %q", got)
	}

	m, err := b.Click(Left, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if m != (Message{Row: 0, Col: 1, Color: "#0891b2"}) {
		t.Fatalf("message: %+v", m)
	}
	if !b.Peers[Left].Grid.Filled(0, 1) || !b.Peers[Right].Grid.Filled(0, 1) || !b.InSync() {
		t.Fatal("cell not filled on both sides")
	}

	if got := b.Peers[Left].LogText(); got[0] != `⬆ {"row":0,"col":1,"color":"#0891b2"}` {
		t.Fatalf("left log: %q", got)
	}
	if got := b.Peers[Right].LogText(); got[0] != `⬇ {"row":0,"col":1,"color":"#0891b2"}` {
		t.Fatalf("right log: %q", got)
	}

	if err := b.SelectColor("#c756c3"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Click(Right, 2, 2); err != nil {
		t.Fatal(err)
	}
	if b.Peers[Left].Grid[2][2] != "#c756c3" || len(b.History) != 2 {
		t.Fatalf("second click: %+v", b)
	}
	if len(b.Peers[Left].Log) != 2 || b.Peers[Left].Log[1].Direction != Received {
		t.Fatalf("left log after right click: %+v", b.Peers[Left].Log)
	}
}

func TestErrors(t *testing.T) {
	b := New()
	if err := b.SelectColor("#000000"); !errors.Is(err, ErrColor) {
		t.Fatalf("SelectColor: %v", err)
	}
	for _, c := range [][2]int{{-1, 0}, {0, 3}, {3, 3}} {
		if _, err := b.Click(Left, c[0], c[1]); !errors.Is(err, ErrCell) {
			t.Errorf("Click(%v): %v", c, err)
		}
	}
	if _, err := b.Click(Side(5), 0, 0); !errors.Is(err, ErrSide) {
		t.Errorf("Click on side 5: %v", err)
	}
	if err := b.Receive(Right, Message{Row: 1, Col: 1, Color: "red"}); !errors.Is(err, ErrColor) {
		t.Errorf("Receive with bad color: %v", err)
	}
	if len(b.History) != 0 {
		t.Fatal("failed clicks were recorded")
	}
}

type dropTransport struct{}

func (dropTransport) Deliver(Side, Message) error { return errors.New("connection lost") }

func TestTransportFailure(t *testing.T) {
	b := New()
	b.Transport = dropTransport{}
	if _, err := b.Click(Left, 1, 1); err == nil {
		t.Fatal("delivery failure not reported")
	}
	if b.InSync() {
		t.Fatal("grids in sync without delivery")
	}
}

func TestReset(t *testing.T) {
	b := New()
	b.SelectColor(Palette[1])
	b.Click(Left, 0, 0)
	b.Click(Right, 1, 2)
	b.Reset()

	if len(b.History) != 0 || b.Peers[Left].Grid.Filled(0, 0) || b.Peers[Right].Grid.Filled(1, 2) {
		t.Fatalf("board not cleared: %+v", b)
	}
	if got := b.Peers[Right].LogText(); got[0] != EmptyLog {
		t.Fatalf("log not cleared: %q", got)
	}
	if b.Color != Palette[1] {
		t.Fatal("Reset changed the color")
	}
}

func TestParseSide(t *testing.T) {
	for s, want := range map[string]Side{"left": Left, "r": Right} {
		if got, err := ParseSide(s); err != nil || got != want {
			t.Errorf("ParseSide(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseSide("up"); !errors.Is(err, ErrSide) {
		t.Errorf("ParseSide(up): %v", err)
	}
}

func TestEntryString(t *testing.T) {
	for _, e := range []Entry{
		{Direction: Sent, Message: Message{Row: 2, Col: 0, Color: "#d6ad09"}},
		{Direction: Received, Message: Message{Row: 0, Col: 2, Color: `say "hi"`}},
	} {
		got := e.String()
		arrow, body, ok := strings.Cut(got, " ")
		if !ok || arrow != e.Direction.Arrow() {
			t.Fatalf("%q: bad prefix", got)
		}
		var m Message
		if err := json.Unmarshal([]byte(body), &m); err != nil {
			t.Fatalf("%q: %v", got, err)
		}
		if m != e.Message {
			t.Fatalf("%q decodes to %+v", got, m)
		}
	}
}
