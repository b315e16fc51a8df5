// Package console is a text console on a linear pixel framebuffer.
//
// A Console keeps a shadow grid of the text on screen, edits it in insert mode
// (typing shifts the rest of the line right, backspace shifts it left), redraws
// the affected rows from the grid and blinks a caret from the timer interrupt.
//
// The Console is not safe for concurrent use. The platform delivers edits and
// timer ticks from one execution context, or masks the timer interrupt while an
// edit runs (see IRQMask). Tick never blocks or allocates.
package console

import (
	"fmt"
	"unicode/utf8"

	"fbcon/font"
	"fbcon/framebuffer"
	"fbcon/klog"
)

// Direction is a caret movement.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
	Home
	End
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case Home:
		return "home"
	case End:
		return "end"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Console is the one console context of a boot. It owns the shadow buffer
// and cursor; the framebuffer belongs to the boot environment.
type Console struct {
	fb     *framebuffer.Framebuffer
	buf    *Buffer
	render *Renderer
	cursor *Cursor
	irq    IRQMask
	layout Layout
	log    *klog.Logger

	rows, cols int
	ticks      uint64
}

// New sets up a console on fb with glyphs from face. It allocates the shadow
// buffer, the only allocation the console ever makes, so it must run after the
// heap is ready. The screen is cleared and the caret starts hidden at (0,0).
func New(fb *framebuffer.Framebuffer, face *font.Raster, opts ...Option) (*Console, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.With("console")

	gw, gh := face.Size()
	rows, cols := o.layout.grid(fb.Info(), gw, gh)
	log.Debug("geometry", "width", fb.Info().Width, "height", fb.Info().Height, "glyph", fmt.Sprintf("%dx%d", gw, gh))

	cells := o.alloc(rows * cols)
	if len(cells) < rows*cols {
		log.Error("shadow buffer allocation failed", "cells", rows*cols)
		return nil, fmt.Errorf("%w: %d cells (%dx%d)", ErrBufferAlloc, rows*cols, cols, rows)
	}

	c := &Console{
		fb:     fb,
		irq:    o.irq,
		layout: o.layout,
		log:    log,
		rows:   rows,
		cols:   cols,
	}
	c.buf = newBuffer(rows, cols, cells)
	c.render = newRenderer(fb, face, c.buf, o.colors, o.layout)
	c.cursor = newCursor(rows, cols, o.blinkDivisor, c.render)
	c.render.Clear()

	log.Info("initialized", "cols", cols, "rows", rows, "blink", o.blinkDivisor)
	return c, nil
}

// Size returns the grid dimensions in cells.
func (c *Console) Size() (rows, cols int) {
	return c.rows, c.cols
}

// Cursor returns the caret position and whether it is currently shown.
func (c *Console) Cursor() (row, col int, visible bool) {
	row, col = c.cursor.Position()
	return row, col, c.cursor.Visible()
}

// Ticks returns the number of timer ticks delivered since init.
func (c *Console) Ticks() uint64 {
	return c.ticks
}

// Buffer returns the shadow buffer for inspection.
func (c *Console) Buffer() *Buffer {
	return c.buf
}

// Line returns the text of row.
func (c *Console) Line(row int) string {
	return c.buf.String(row)
}

// Tick is the timer interrupt handler. It runs to completion, touches only
// the cursor cell and never mutates line content.
func (c *Console) Tick() {
	c.ticks++
	c.cursor.Tick()
}

// Insert types ch at the caret. Printable runes are inserted, shifting the
// rest of the line right, and the caret advances, wrapping to the next row
// after the last column. '\n', '\r', '\t' and '\b' act as newline, carriage
// return, tab and backspace.
func (c *Console) Insert(ch rune) {
	c.irq.Mask()
	defer c.irq.Unmask()
	c.insert(ch)
}

func (c *Console) insert(ch rune) {
	row, col := c.cursor.Position()
	switch ch {
	case '\n':
		c.newline()
	case '\r':
		c.cursor.MoveTo(row, 0)
	case '\t':
		tab := max(c.layout.TabWidth, 1)
		c.cursor.MoveTo(row, (col/tab+1)*tab)
	case '\b':
		c.backspace()
	default:
		c.buf.Insert(row, col, ch)
		c.render.RedrawLine(row)
		if col+1 >= c.cols {
			c.newline()
			return
		}
		c.cursor.MoveTo(row, col+1)
	}
}

// Backspace deletes the character before the caret and moves the caret back.
// At column 0 it clears the last cell of the previous row instead; at (0,0)
// it does nothing.
func (c *Console) Backspace() {
	c.irq.Mask()
	defer c.irq.Unmask()
	c.backspace()
}

func (c *Console) backspace() {
	row, col := c.cursor.Position()
	switch {
	case col > 0:
		c.buf.Backspace(row, col)
		c.render.RedrawLine(row)
		c.cursor.MoveTo(row, col-1)
	case row > 0:
		c.buf.Clear(row-1, c.cols-1)
		c.render.RedrawLine(row - 1)
		c.cursor.MoveTo(row-1, c.cols-1)
	}
}

// Move moves the caret. Left and Right wrap across row ends, Up and Down stop
// at the screen edge, End goes to the end of the line's text. The caret is
// shown immediately even when it cannot move.
func (c *Console) Move(dir Direction) {
	c.irq.Mask()
	defer c.irq.Unmask()

	row, col := c.cursor.Position()
	switch dir {
	case Left:
		switch {
		case col > 0:
			col--
		case row > 0:
			row, col = row-1, c.cols-1
		}
	case Right:
		switch {
		case col+1 < c.cols:
			col++
		case row+1 < c.rows:
			row, col = row+1, 0
		}
	case Up:
		if row > 0 {
			row--
		}
	case Down:
		if row+1 < c.rows {
			row++
		}
	case Home:
		col = 0
	case End:
		col = min(c.buf.LineLen(row), c.cols-1)
	}
	c.cursor.MoveTo(row, col)
}

// MoveTo places the caret at (row, col), clamped to the grid.
func (c *Console) MoveTo(row, col int) {
	c.irq.Mask()
	defer c.irq.Unmask()
	c.cursor.MoveTo(row, col)
}

// newline moves the caret to column 0 of the next row, clearing the screen
// when that row is past the bottom.
func (c *Console) newline() {
	row, _ := c.cursor.Position()
	c.cursor.MoveTo(c.scrollIfNeeded(row+1), 0)
}

// scrollIfNeeded stands in for scrolling: a row past the bottom clears the
// framebuffer and the shadow buffer and resumes at row 0.
func (c *Console) scrollIfNeeded(row int) int {
	if row < c.rows {
		return row
	}
	c.clear()
	return 0
}

// Clear empties the screen and puts the caret at (0,0).
func (c *Console) Clear() {
	c.irq.Mask()
	defer c.irq.Unmask()
	c.clear()
	c.cursor.MoveTo(0, 0)
}

func (c *Console) clear() {
	c.buf.Reset()
	c.render.Clear()
}

// Redraw repaints every row and the caret from the shadow buffer.
func (c *Console) Redraw() {
	c.irq.Mask()
	defer c.irq.Unmask()
	for row := 0; row < c.rows; row++ {
		c.render.RedrawLine(row)
	}
	c.cursor.Refresh()
}

// Write types p as UTF-8 text. It never fails.
func (c *Console) Write(p []byte) (int, error) {
	c.irq.Mask()
	defer c.irq.Unmask()
	for i := 0; i < len(p); {
		r, size := utf8.DecodeRune(p[i:])
		c.insert(r)
		i += size
	}
	return len(p), nil
}

// WriteString types s. It never fails.
func (c *Console) WriteString(s string) (int, error) {
	c.irq.Mask()
	defer c.irq.Unmask()
	for _, r := range s {
		c.insert(r)
	}
	return len(s), nil
}
