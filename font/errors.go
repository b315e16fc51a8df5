package font

import "errors"

var (
	// ErrBadSize is returned for glyph cells that are empty or too large.
	ErrBadSize = errors.New("font: bad glyph size")
	// ErrBadGlyph is returned when a glyph cannot be stored or is missing.
	ErrBadGlyph = errors.New("font: bad glyph")
	// ErrBadBlob is returned when a glyph blob is malformed.
	ErrBadBlob = errors.New("font: bad blob")
)
