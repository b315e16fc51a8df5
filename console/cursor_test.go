package console

import (
	"fmt"
	"slices"
	"testing"
)

type recordingPainter struct {
	calls []string
}

func (p *recordingPainter) EraseCell(row, col int) {
	p.calls = append(p.calls, fmt.Sprintf("erase(%d,%d)", row, col))
}

func (p *recordingPainter) DrawCaret(row, col int) {
	p.calls = append(p.calls, fmt.Sprintf("caret(%d,%d)", row, col))
}

func TestCursorTick(t *testing.T) {
	p := &recordingPainter{}
	c := newCursor(4, 10, 3, p)

	var toggled []bool
	for i := 0; i < 7; i++ {
		toggled = append(toggled, c.Tick())
	}

	want := []bool{false, false, true, false, false, true, false}
	if !slices.Equal(toggled, want) {
		t.Errorf("Tick() results = %v, want %v", toggled, want)
	}
	if got := []string{"caret(0,0)", "erase(0,0)"}; !slices.Equal(p.calls, got) {
		t.Errorf("painter calls = %v, want %v", p.calls, got)
	}
	if c.Visible() {
		t.Error("caret visible after two toggles")
	}
}

func TestCursorMoveTo(t *testing.T) {
	p := &recordingPainter{}
	c := newCursor(4, 10, 3, p)
	c.Tick()
	c.Tick()

	c.MoveTo(2, 12)

	row, col := c.Position()
	if row != 2 || col != 9 {
		t.Errorf("Position() = (%d,%d), want (2,9)", row, col)
	}
	if !c.Visible() {
		t.Error("caret hidden after MoveTo")
	}
	if want := []string{"erase(0,0)", "caret(2,9)"}; !slices.Equal(p.calls, want) {
		t.Errorf("painter calls = %v, want %v", p.calls, want)
	}
	if c.Tick() || c.Tick() {
		t.Error("blink phase not reset by MoveTo")
	}
}

func TestCursorZeroDivisor(t *testing.T) {
	c := newCursor(1, 1, 0, &recordingPainter{})
	if !c.Tick() {
		t.Error("zero divisor should toggle on every tick")
	}
}

func TestCursorRefresh(t *testing.T) {
	p := &recordingPainter{}
	c := newCursor(2, 2, 1, p)
	c.Refresh()
	c.MoveTo(1, 1)
	c.Refresh()

	want := []string{"erase(0,0)", "erase(0,0)", "caret(1,1)", "caret(1,1)"}
	if !slices.Equal(p.calls, want) {
		t.Errorf("painter calls = %v, want %v", p.calls, want)
	}
}
