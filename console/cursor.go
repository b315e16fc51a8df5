package console

// DefaultBlinkDivisor is the number of timer ticks per caret toggle. With the
// 100ms platform timer the caret changes state twice a second.
const DefaultBlinkDivisor = 5

// cellPainter is the part of the Renderer the cursor drives.
type cellPainter interface {
	EraseCell(row, col int)
	DrawCaret(row, col int)
}

// Cursor is the caret state machine. Its two states, hidden and visible, only
// affect what the cursor cell shows; input is accepted in both.
type Cursor struct {
	row, col   int
	rows, cols int

	visible bool
	ticks   uint32
	divisor uint32

	painter cellPainter
}

func newCursor(rows, cols int, divisor uint32, p cellPainter) *Cursor {
	if divisor == 0 {
		divisor = 1
	}
	return &Cursor{rows: rows, cols: cols, divisor: divisor, painter: p}
}

// Position returns the caret cell.
func (c *Cursor) Position() (row, col int) {
	return c.row, c.col
}

// Visible reports whether the caret is currently drawn.
func (c *Cursor) Visible() bool {
	return c.visible
}

// Tick advances the blink counter and toggles the caret when it reaches the
// divisor, repainting only the cursor cell. It reports whether it toggled.
//
//go:nosplit
func (c *Cursor) Tick() bool {
	c.ticks++
	if c.ticks < c.divisor {
		return false
	}
	c.ticks = 0
	c.visible = !c.visible
	c.paint()
	return true
}

// MoveTo repaints the old cell from the shadow buffer, moves to the clamped
// position and shows the caret there with a fresh blink phase.
func (c *Cursor) MoveTo(row, col int) {
	c.painter.EraseCell(c.row, c.col)
	c.row = clampInt(row, 0, c.rows-1)
	c.col = clampInt(col, 0, c.cols-1)
	c.visible = true
	c.ticks = 0
	c.painter.DrawCaret(c.row, c.col)
}

// Refresh repaints the cursor cell in its current state, for use after the
// cell was overdrawn.
func (c *Cursor) Refresh() {
	c.paint()
}

func (c *Cursor) paint() {
	if c.visible {
		c.painter.DrawCaret(c.row, c.col)
	} else {
		c.painter.EraseCell(c.row, c.col)
	}
}
