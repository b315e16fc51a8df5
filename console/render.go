package console

import (
	"fbcon/font"
	"fbcon/framebuffer"
)

// Layout is the pixel spacing around and between cells.
type Layout struct {
	Border        int // Padding from the screen edge
	LineSpacing   int // Extra pixels between rows
	LetterSpacing int // Extra pixels between columns
	TabWidth      int // Columns per tab stop
}

// DefaultLayout keeps text off the screen edge and leaves a small gap between lines.
var DefaultLayout = Layout{
	Border:        5,
	LineSpacing:   2,
	LetterSpacing: 0,
	TabWidth:      4,
}

// grid derives the cell grid from framebuffer and glyph geometry. A screen too
// small for a single cell still gets a 1x1 grid.
func (l Layout) grid(info framebuffer.Info, glyphW, glyphH int) (rows, cols int) {
	cellW := glyphW + l.LetterSpacing
	cellH := glyphH + l.LineSpacing
	if cellW > 0 && cellH > 0 {
		cols = (int(info.Width) - 2*l.Border) / cellW
		rows = (int(info.Height) - 2*l.Border) / cellH
	}
	if cols <= 0 || rows <= 0 {
		return 1, 1
	}
	return rows, cols
}

// Renderer paints cells from the shadow buffer onto the framebuffer.
type Renderer struct {
	fb     *framebuffer.Framebuffer
	font   *font.Raster
	buf    *Buffer
	colors ColorScheme

	border uint32
	glyphW uint32
	glyphH uint32
	cellW  uint32
	cellH  uint32
}

func newRenderer(fb *framebuffer.Framebuffer, face *font.Raster, buf *Buffer, colors ColorScheme, l Layout) *Renderer {
	gw, gh := face.Size()
	return &Renderer{
		fb:     fb,
		font:   face,
		buf:    buf,
		colors: colors,
		border: uint32(max(l.Border, 0)),
		glyphW: uint32(gw),
		glyphH: uint32(gh),
		cellW:  uint32(max(gw+l.LetterSpacing, 1)),
		cellH:  uint32(max(gh+l.LineSpacing, 1)),
	}
}

// origin returns the top-left pixel of a cell.
func (r *Renderer) origin(row, col int) (x, y uint32) {
	row, col = r.buf.clamp(row, col)
	return r.border + uint32(col)*r.cellW, r.border + uint32(row)*r.cellH
}

// blit paints the glyph rectangle of a cell, every pixel, so nothing of the
// previous contents survives. The zero rune paints plain background.
func (r *Renderer) blit(row, col int, ch rune, fg, bg uint32) {
	x, y := r.origin(row, col)
	if ch == 0 {
		r.fb.FillRect(x, y, r.glyphW, r.glyphH, bg)
		return
	}
	cov := r.font.Glyph(ch)
	for dy := uint32(0); dy < r.glyphH; dy++ {
		line := cov[dy*r.glyphW : (dy+1)*r.glyphW]
		for dx, a := range line {
			r.fb.WritePixel(x+uint32(dx), y+dy, framebuffer.Blend(fg, bg, a))
		}
	}
}

// DrawChar renders ch into the cell at (row, col).
func (r *Renderer) DrawChar(row, col int, ch rune) {
	r.blit(row, col, ch, r.colors.Text, r.colors.Background)
}

// EraseCell paints the cell background and then whatever the shadow buffer
// holds there, so erasing never blanks real content.
func (r *Renderer) EraseCell(row, col int) {
	x, y := r.origin(row, col)
	r.fb.FillRect(x, y, r.glyphW, r.glyphH, r.colors.Background)
	if ch, ok := r.buf.Get(row, col); ok {
		r.DrawChar(row, col, ch)
	}
}

// DrawCaret paints the caret over the cell in inverse video: the caret color
// fills the cell and any character there shows through in the background color.
func (r *Renderer) DrawCaret(row, col int) {
	ch, _ := r.buf.Get(row, col)
	r.blit(row, col, ch, r.colors.Background, r.colors.Caret)
}

// RedrawLine repaints the whole row from the shadow buffer: the full band,
// spacing included, then every occupied cell.
func (r *Renderer) RedrawLine(row int) {
	_, cols := r.buf.Size()
	x, y := r.origin(row, 0)
	r.fb.FillRect(x, y, uint32(cols)*r.cellW, r.cellH, r.colors.Background)
	for col, ch := range r.buf.Row(row) {
		if ch != 0 {
			r.DrawChar(row, col, ch)
		}
	}
}

// Clear paints the whole framebuffer with the background color.
func (r *Renderer) Clear() {
	r.fb.Fill(r.colors.Background)
}
