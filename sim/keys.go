package sim

import (
	"github.com/gdamore/tcell/v2"

	"fbcon/console"
	"fbcon/input"
)

// FromKey decodes a terminal key press into a logical console event.
// Keys with no console meaning report false.
func FromKey(ev *tcell.EventKey) (input.Event, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return input.Event{}, false
		}
		return input.Insert(ev.Rune()), true
	case tcell.KeyEnter:
		return input.Insert('\n'), true
	case tcell.KeyTab:
		return input.Insert('\t'), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.Backspace(), true
	case tcell.KeyLeft:
		return input.Move(console.Left), true
	case tcell.KeyRight:
		return input.Move(console.Right), true
	case tcell.KeyUp:
		return input.Move(console.Up), true
	case tcell.KeyDown:
		return input.Move(console.Down), true
	case tcell.KeyHome:
		return input.Move(console.Home), true
	case tcell.KeyEnd:
		return input.Move(console.End), true
	}
	return input.Event{}, false
}
