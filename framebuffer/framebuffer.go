// Package framebuffer draws pixels into a linear framebuffer handed over by the
// boot environment.
//
// The surface is write-mostly: callers paint rectangles and single pixels and never
// look at what is already there. It reads back only for snapshots and tests.
package framebuffer

import (
	"fmt"
	"unsafe"
)

// PixelFormat is the in-memory layout of one pixel.
type PixelFormat uint8

const (
	// XRGB8888 is 4 bytes per pixel, little-endian 0x00RRGGBB (B, G, R, X in memory).
	XRGB8888 PixelFormat = iota
	// RGB888 is 3 bytes per pixel, R first.
	RGB888
	// BGR888 is 3 bytes per pixel, B first.
	BGR888
	// Gray8 is 1 byte of luminance per pixel.
	Gray8
)

// BytesPerPixel returns the pixel size for the format, or 0 if unknown.
func (f PixelFormat) BytesPerPixel() uint32 {
	switch f {
	case XRGB8888:
		return 4
	case RGB888, BGR888:
		return 3
	case Gray8:
		return 1
	default:
		return 0
	}
}

func (f PixelFormat) String() string {
	switch f {
	case XRGB8888:
		return "xrgb8888"
	case RGB888:
		return "rgb888"
	case BGR888:
		return "bgr888"
	case Gray8:
		return "gray8"
	default:
		return fmt.Sprintf("PixelFormat(%d)", uint8(f))
	}
}

// ParsePixelFormat maps a format name back to its PixelFormat.
func ParsePixelFormat(s string) (PixelFormat, error) {
	switch s {
	case "xrgb8888", "":
		return XRGB8888, nil
	case "rgb888":
		return RGB888, nil
	case "bgr888":
		return BGR888, nil
	case "gray8":
		return Gray8, nil
	}
	return 0, fmt.Errorf("%w: unknown pixel format %q", ErrInvalidInfo, s)
}

// Info describes the framebuffer as negotiated by the boot environment.
type Info struct {
	Width  uint32 // Width in pixels
	Height uint32 // Height in pixels
	Pitch  uint32 // Bytes per row
	Format PixelFormat
}

// Validate reports whether the geometry is usable.
func (i Info) Validate() error {
	bpp := i.Format.BytesPerPixel()
	switch {
	case bpp == 0:
		return fmt.Errorf("%w: unsupported pixel format %v", ErrInvalidInfo, i.Format)
	case i.Width == 0 || i.Height == 0:
		return fmt.Errorf("%w: empty geometry %dx%d", ErrInvalidInfo, i.Width, i.Height)
	case i.Pitch < i.Width*bpp:
		return fmt.Errorf("%w: pitch %d shorter than a row of %d pixels", ErrInvalidInfo, i.Pitch, i.Width)
	}
	return nil
}

// Size returns the number of bytes the surface spans.
func (i Info) Size() int {
	return int(i.Pitch) * int(i.Height)
}

// Framebuffer is a pixel surface over a byte slice.
type Framebuffer struct {
	info Info
	bpp  uint32
	buf  []byte
}

// New wraps buf, which must hold at least info.Size() bytes.
func New(info Info, buf []byte) (*Framebuffer, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if len(buf) < info.Size() {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrShortBuffer, len(buf), info.Size())
	}
	return &Framebuffer{info: info, bpp: info.Format.BytesPerPixel(), buf: buf[:info.Size()]}, nil
}

// Alloc creates a framebuffer backed by ordinary memory. A zero Pitch is
// filled in from Width and Format.
func Alloc(info Info) (*Framebuffer, error) {
	if info.Pitch == 0 {
		info.Pitch = info.Width * info.Format.BytesPerPixel()
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return New(info, make([]byte, info.Size()))
}

// Map wraps the framebuffer memory at a physical address.
func Map(addr uintptr, info Info) (*Framebuffer, error) {
	if addr == 0 {
		return nil, fmt.Errorf("%w: nil framebuffer address", ErrInvalidInfo)
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(addr)), info.Size())
	return New(info, buf)
}

// Info returns the surface geometry.
func (fb *Framebuffer) Info() Info {
	return fb.info
}

// WritePixel sets pixel (x, y) to an opaque 0x00RRGGBB color.
// Out-of-range coordinates are ignored.
//
//go:nosplit
func (fb *Framebuffer) WritePixel(x, y uint32, color uint32) {
	if x >= fb.info.Width || y >= fb.info.Height {
		return
	}
	off := y*fb.info.Pitch + x*fb.bpp
	p := fb.buf[off : off+fb.bpp]

	r := byte(color >> 16)
	g := byte(color >> 8)
	b := byte(color)
	switch fb.info.Format {
	case XRGB8888:
		p[0], p[1], p[2], p[3] = b, g, r, 0
	case RGB888:
		p[0], p[1], p[2] = r, g, b
	case BGR888:
		p[0], p[1], p[2] = b, g, r
	case Gray8:
		// ITU-R BT.601 luma, integer weights summing to 256
		p[0] = byte((uint32(r)*77 + uint32(g)*150 + uint32(b)*29) >> 8)
	}
}

// FillRect paints a rectangle, clipped to the surface.
func (fb *Framebuffer) FillRect(x, y, width, height uint32, color uint32) {
	if x >= fb.info.Width || y >= fb.info.Height {
		return
	}
	if width > fb.info.Width-x {
		width = fb.info.Width - x
	}
	if height > fb.info.Height-y {
		height = fb.info.Height - y
	}
	for py := y; py < y+height; py++ {
		for px := x; px < x+width; px++ {
			fb.WritePixel(px, py, color)
		}
	}
}

// Fill paints the whole surface.
func (fb *Framebuffer) Fill(color uint32) {
	fb.FillRect(0, 0, fb.info.Width, fb.info.Height, color)
}

// At returns the color stored at (x, y) as 0x00RRGGBB. Gray8 pixels come
// back with the luminance in all three channels.
func (fb *Framebuffer) At(x, y uint32) uint32 {
	if x >= fb.info.Width || y >= fb.info.Height {
		return 0
	}
	off := y*fb.info.Pitch + x*fb.bpp
	p := fb.buf[off : off+fb.bpp]
	switch fb.info.Format {
	case XRGB8888:
		return uint32(p[2])<<16 | uint32(p[1])<<8 | uint32(p[0])
	case RGB888:
		return uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
	case BGR888:
		return uint32(p[2])<<16 | uint32(p[1])<<8 | uint32(p[0])
	case Gray8:
		return uint32(p[0])<<16 | uint32(p[0])<<8 | uint32(p[0])
	}
	return 0
}

// Bytes exposes the raw surface memory.
func (fb *Framebuffer) Bytes() []byte {
	return fb.buf
}

// Blend mixes fg over bg with an 8-bit coverage value.
// Divides by 256 instead of 255 for speed, so full coverage is special-cased.
func Blend(fg, bg uint32, alpha uint8) uint32 {
	switch alpha {
	case 0:
		return bg
	case 255:
		return fg
	}
	a := uint32(alpha)
	inv := 256 - a

	r := (((fg>>16)&0xFF)*a + ((bg>>16)&0xFF)*inv) / 256
	g := (((fg>>8)&0xFF)*a + ((bg>>8)&0xFF)*inv) / 256
	b := ((fg&0xFF)*a + (bg&0xFF)*inv) / 256
	return r<<16 | g<<8 | b
}
