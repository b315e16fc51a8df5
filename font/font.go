// Package font holds the glyph table the console blits from.
//
// A Raster is built once at init, from any golang.org/x/image font.Face, a
// TrueType file or a binary blob produced by tools/fontconv, and is read-only
// afterwards. Looking a glyph up never allocates, so the renderer can use it
// from the timer interrupt path.
package font

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// NumGlyphs is the size of the table: the 7-bit ASCII range.
	NumGlyphs = 128

	// Backup is drawn for runes outside the table or without a glyph.
	Backup = '?'

	firstPrintable = 0x20
	lastPrintable  = 0x7E

	maxGlyphSide = 255
)

// Raster is a fixed table of 8-bit coverage bitmaps, one per ASCII code point.
// Each bitmap is Width*Height bytes, row-major.
type Raster struct {
	width   int
	height  int
	glyphs  []uint8
	present [NumGlyphs]bool
}

// New returns an empty table for glyphs of the given cell size.
func New(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 || width > maxGlyphSide || height > maxGlyphSide {
		return nil, fmt.Errorf("%w: glyph size %dx%d", ErrBadSize, width, height)
	}
	return &Raster{
		width:  width,
		height: height,
		glyphs: make([]uint8, NumGlyphs*width*height),
	}, nil
}

// Size returns the glyph cell size in pixels.
func (r *Raster) Size() (width, height int) {
	return r.width, r.height
}

// Has reports whether ch has its own glyph.
func (r *Raster) Has(ch rune) bool {
	return ch >= 0 && ch < NumGlyphs && r.present[ch]
}

// Glyph returns the coverage bitmap for ch, falling back to Backup.
// The returned slice aliases the table and must not be modified.
//
//go:nosplit
func (r *Raster) Glyph(ch rune) []uint8 {
	if !r.Has(ch) {
		ch = Backup
	}
	n := r.width * r.height
	off := int(ch) * n
	return r.glyphs[off : off+n]
}

// SetGlyph copies a coverage bitmap into the table.
func (r *Raster) SetGlyph(ch rune, coverage []uint8) error {
	if ch < 0 || ch >= NumGlyphs {
		return fmt.Errorf("%w: rune %U outside table", ErrBadGlyph, ch)
	}
	n := r.width * r.height
	if len(coverage) != n {
		return fmt.Errorf("%w: %d bytes for %U, want %d", ErrBadGlyph, len(coverage), ch, n)
	}
	copy(r.glyphs[int(ch)*n:], coverage)
	r.present[ch] = true
	return nil
}

// FromFace rasterizes the printable ASCII range of face into a table.
// A zero width or height is taken from the face metrics.
func FromFace(face xfont.Face, width, height int) (*Raster, error) {
	m := face.Metrics()
	if height == 0 {
		height = m.Height.Ceil()
	}
	if width == 0 {
		adv, ok := face.GlyphAdvance('M')
		if !ok {
			return nil, fmt.Errorf("%w: face has no advance for 'M'", ErrBadSize)
		}
		width = adv.Ceil()
	}

	r, err := New(width, height)
	if err != nil {
		return nil, err
	}

	ascent := m.Ascent.Ceil()
	n := width * height
	for ch := rune(firstPrintable); ch <= lastPrintable; ch++ {
		dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, ascent), ch)
		if !ok || mask == nil {
			continue
		}
		dst := r.glyphs[int(ch)*n : int(ch+1)*n]
		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			if y < 0 || y >= height {
				continue
			}
			for x := dr.Min.X; x < dr.Max.X; x++ {
				if x < 0 || x >= width {
					continue
				}
				_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
				dst[y*width+x] = uint8(a >> 8)
			}
		}
		r.present[ch] = true
	}

	if !r.present[Backup] {
		return nil, fmt.Errorf("%w: face has no glyph for %q", ErrBadGlyph, Backup)
	}
	return r, nil
}

// Basic returns the 7x13 fixed font from golang.org/x/image.
func Basic() *Raster {
	r, err := FromFace(basicfont.Face7x13, 0, 0)
	if err != nil {
		// basicfont covers all of printable ASCII
		panic(err)
	}
	return r
}

// LoadTTF parses a TrueType font and rasterizes it at size points (72 DPI).
func LoadTTF(data []byte, size float64) (*Raster, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse truetype: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	defer face.Close()
	return FromFace(face, 0, 0)
}
