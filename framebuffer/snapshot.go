package framebuffer

import (
	"image"
	"io"

	gg "github.com/fogleman/gg"
)

// Snapshot copies the surface into a gg drawing context backed by an RGBA
// image. The framebuffer itself is left untouched.
func (fb *Framebuffer) Snapshot() *gg.Context {
	width := int(fb.info.Width)
	height := int(fb.info.Height)
	im := image.NewRGBA(image.Rect(0, 0, width, height))

	dstPix := im.Pix
	dstStride := im.Stride
	for y := 0; y < height; y++ {
		dstRow := dstPix[y*dstStride:]
		for x := 0; x < width; x++ {
			c := fb.At(uint32(x), uint32(y))
			di := x * 4

			// gg uses RGBA layout.
			dstRow[di+0] = byte(c >> 16)
			dstRow[di+1] = byte(c >> 8)
			dstRow[di+2] = byte(c)
			dstRow[di+3] = 0xFF
		}
	}
	return gg.NewContextForRGBA(im)
}

// SavePNG writes a snapshot of the surface to path.
func (fb *Framebuffer) SavePNG(path string) error {
	return fb.Snapshot().SavePNG(path)
}

// EncodePNG writes a snapshot of the surface to w.
func (fb *Framebuffer) EncodePNG(w io.Writer) error {
	return fb.Snapshot().EncodePNG(w)
}
