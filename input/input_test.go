package input

import (
	"testing"

	"fbcon/console"
	"fbcon/font"
	"fbcon/framebuffer"
)

func newConsole(t *testing.T) *console.Console {
	t.Helper()
	fb, err := framebuffer.Alloc(framebuffer.Info{Width: 80, Height: 70, Format: framebuffer.XRGB8888})
	if err != nil {
		t.Fatal(err)
	}
	c, err := console.New(fb, font.Basic())
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestDispatchFilters(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want bool
	}{
		{"ascii", Insert('a'), true},
		{"latin-1", Insert('é'), true},
		{"newline", Insert('\n'), true},
		{"tab", Insert('\t'), true},
		{"wide rune", Insert('世'), false},
		{"control", Insert('\x07'), false},
		{"combining mark", Insert('\u0301'), false},
		{"backspace at origin", Backspace(), false},
		{"move", Move(console.Down), true},
		{"bad direction", Move(console.Direction(42)), false},
		{"bad kind", Event{Kind: Kind(9)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(newConsole(t), nil)
			if got := d.Dispatch(tt.ev); got != tt.want {
				t.Errorf("Dispatch(%v) = %v, want %v", tt.ev, got, tt.want)
			}
			wantDropped := uint64(0)
			if !tt.want {
				wantDropped = 1
			}
			if d.Dropped() != wantDropped {
				t.Errorf("Dropped() = %d, want %d", d.Dropped(), wantDropped)
			}
		})
	}
}

func TestDispatchEditSequence(t *testing.T) {
	c := newConsole(t)
	d := New(c, nil)

	for _, ev := range []Event{
		Insert('A'), Insert('B'), Insert('C'),
		Move(console.Left), Move(console.Left),
		Insert('X'),
		Backspace(),
		Insert('世'),
	} {
		d.Dispatch(ev)
	}

	if got := c.Line(0); got != "ABC" {
		t.Errorf("row 0 = %q, want ABC", got)
	}
	if row, col, _ := c.Cursor(); row != 0 || col != 1 {
		t.Errorf("cursor = (%d,%d), want (0,1)", row, col)
	}
	if d.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", d.Dropped())
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Insert('q'), `insert('q')`},
		{Backspace(), "backspace"},
		{Move(console.End), "move(end)"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
