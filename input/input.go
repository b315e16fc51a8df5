// Package input is the console's input dispatcher: it takes logical key events,
// already decoded by the platform, checks the console's preconditions and
// applies them.
package input

import (
	"fmt"
	"unicode"

	"github.com/mattn/go-runewidth"

	"fbcon/console"
	"fbcon/klog"
)

// Kind is the type of a logical input event.
type Kind uint8

const (
	KindInsert Kind = iota
	KindBackspace
	KindMove
)

// Event is one logical key press.
type Event struct {
	Kind Kind
	Rune rune              // for KindInsert
	Dir  console.Direction // for KindMove
}

func (e Event) String() string {
	switch e.Kind {
	case KindInsert:
		return fmt.Sprintf("insert(%q)", e.Rune)
	case KindBackspace:
		return "backspace"
	case KindMove:
		return "move(" + e.Dir.String() + ")"
	default:
		return fmt.Sprintf("Event(%d)", uint8(e.Kind))
	}
}

// Insert returns an event typing r.
func Insert(r rune) Event { return Event{Kind: KindInsert, Rune: r} }

// Backspace returns a backspace event.
func Backspace() Event { return Event{Kind: KindBackspace} }

// Move returns a caret movement event.
func Move(d console.Direction) Event { return Event{Kind: KindMove, Dir: d} }

// Target is what events are applied to; *console.Console implements it.
type Target interface {
	Insert(ch rune)
	Backspace()
	Move(dir console.Direction)
	Cursor() (row, col int, visible bool)
}

// Dispatcher validates events and forwards the acceptable ones.
type Dispatcher struct {
	target  Target
	log     *klog.Logger
	dropped uint64
}

// New returns a dispatcher feeding t.
func New(t Target, log *klog.Logger) *Dispatcher {
	return &Dispatcher{target: t, log: log.With("input")}
}

// Dispatch applies ev and reports whether it reached the console. Runes that
// do not occupy exactly one cell, non-printing runes and a backspace at the
// top-left corner are dropped.
func (d *Dispatcher) Dispatch(ev Event) bool {
	if !d.accept(ev) {
		d.dropped++
		d.log.Debug("dropped", "event", ev)
		return false
	}
	switch ev.Kind {
	case KindInsert:
		d.target.Insert(ev.Rune)
	case KindBackspace:
		d.target.Backspace()
	case KindMove:
		d.target.Move(ev.Dir)
	}
	return true
}

// Dropped returns the number of events rejected so far.
func (d *Dispatcher) Dropped() uint64 {
	return d.dropped
}

func (d *Dispatcher) accept(ev Event) bool {
	switch ev.Kind {
	case KindInsert:
		switch ev.Rune {
		case '\n', '\r', '\t':
			return true
		}
		return unicode.IsPrint(ev.Rune) && runewidth.RuneWidth(ev.Rune) == 1
	case KindBackspace:
		row, col, _ := d.target.Cursor()
		return row > 0 || col > 0
	case KindMove:
		return ev.Dir <= console.End
	}
	return false
}
