package console

import "strings"

// Buffer is the shadow text grid: what the screen shows, one optional rune per
// cell. It is the source of truth for every redraw; pixels are never read back.
//
// All rows*cols cells live in a single slice allocated at init. Coordinates
// outside the grid are clamped to the nearest edge rather than rejected: the
// editor owns coordinate validity, and a bad index must never fault inside an
// interrupt-reachable path.
type Buffer struct {
	rows  int
	cols  int
	cells []rune // 0 marks an empty cell
}

func newBuffer(rows, cols int, cells []rune) *Buffer {
	b := &Buffer{rows: rows, cols: cols, cells: cells[:rows*cols]}
	b.Reset()
	return b
}

// Size returns the grid dimensions.
func (b *Buffer) Size() (rows, cols int) {
	return b.rows, b.cols
}

func (b *Buffer) clamp(row, col int) (int, int) {
	return clampInt(row, 0, b.rows-1), clampInt(col, 0, b.cols-1)
}

// Get returns the rune at (row, col) and whether the cell is occupied.
func (b *Buffer) Get(row, col int) (rune, bool) {
	row, col = b.clamp(row, col)
	ch := b.cells[row*b.cols+col]
	return ch, ch != 0
}

// Set stores ch at (row, col). Setting the zero rune empties the cell.
func (b *Buffer) Set(row, col int, ch rune) {
	row, col = b.clamp(row, col)
	b.cells[row*b.cols+col] = ch
}

// Clear empties the cell at (row, col).
func (b *Buffer) Clear(row, col int) {
	b.Set(row, col, 0)
}

// Row returns the cells of row n. The slice aliases the buffer.
func (b *Buffer) Row(n int) []rune {
	n = clampInt(n, 0, b.rows-1)
	return b.cells[n*b.cols : (n+1)*b.cols]
}

// LineLen returns one past the last occupied column of row, or 0 for an empty row.
func (b *Buffer) LineLen(row int) int {
	line := b.Row(row)
	for i := len(line) - 1; i >= 0; i-- {
		if line[i] != 0 {
			return i + 1
		}
	}
	return 0
}

// String returns the contents of row up to its last occupied cell, with
// interior empty cells shown as spaces.
func (b *Buffer) String(row int) string {
	line := b.Row(row)[:b.LineLen(row)]
	var sb strings.Builder
	for _, ch := range line {
		if ch == 0 {
			ch = ' '
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

// Reset empties every cell.
func (b *Buffer) Reset() {
	clear(b.cells)
}

// Insert shifts cells [col, cols-1) of row one place right and stores ch at
// col. Whatever occupied the last column is discarded: a full line loses its
// final character rather than wrapping.
func (b *Buffer) Insert(row, col int, ch rune) {
	row, col = b.clamp(row, col)
	line := b.Row(row)
	copy(line[col+1:], line[col:b.cols-1])
	line[col] = ch
}

// Backspace removes the cell before col, shifting cells [col, cols) of row
// one place left and emptying the last column. It reports false, changing
// nothing, when col is 0.
func (b *Buffer) Backspace(row, col int) bool {
	if col <= 0 {
		return false
	}
	row = clampInt(row, 0, b.rows-1)
	col = clampInt(col, 1, b.cols)
	line := b.Row(row)
	copy(line[col-1:], line[col:])
	line[b.cols-1] = 0
	return true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
