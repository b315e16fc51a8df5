package framebuffer

import "errors"

var (
	// ErrInvalidInfo is returned when the negotiated geometry cannot be drawn to.
	ErrInvalidInfo = errors.New("framebuffer: invalid info")
	// ErrShortBuffer is returned when the backing memory is smaller than Pitch*Height.
	ErrShortBuffer = errors.New("framebuffer: buffer too small")
)
