package font

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Blob layout, little-endian:
//
//	4 bytes:  magic "FBCF"
//	2 bytes:  glyph width (uint16)
//	2 bytes:  glyph height (uint16)
//	16 bytes: presence bitmap, bit i set when code point i has a glyph
//	NumGlyphs*width*height bytes: coverage data
var blobMagic = [4]byte{'F', 'B', 'C', 'F'}

const blobHeaderSize = 4 + 2 + 2 + NumGlyphs/8

// Encode writes the table in blob form.
func (r *Raster) Encode(w io.Writer) error {
	var hdr [blobHeaderSize]byte
	copy(hdr[:4], blobMagic[:])
	binary.LittleEndian.PutUint16(hdr[4:], uint16(r.width))
	binary.LittleEndian.PutUint16(hdr[6:], uint16(r.height))
	for ch, ok := range r.present {
		if ok {
			hdr[8+ch/8] |= 1 << (ch % 8)
		}
	}
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(r.glyphs)
	return err
}

// Decode parses a blob written by Encode.
func Decode(data []byte) (*Raster, error) {
	if len(data) < blobHeaderSize || !bytes.Equal(data[:4], blobMagic[:]) {
		return nil, fmt.Errorf("%w: missing header", ErrBadBlob)
	}
	width := int(binary.LittleEndian.Uint16(data[4:]))
	height := int(binary.LittleEndian.Uint16(data[6:]))
	r, err := New(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadBlob, err)
	}

	body := data[blobHeaderSize:]
	if len(body) != len(r.glyphs) {
		return nil, fmt.Errorf("%w: %d bytes of glyph data, want %d", ErrBadBlob, len(body), len(r.glyphs))
	}
	copy(r.glyphs, body)
	for ch := range r.present {
		r.present[ch] = data[8+ch/8]&(1<<(ch%8)) != 0
	}
	if !r.present[Backup] {
		return nil, fmt.Errorf("%w: no glyph for %q", ErrBadBlob, Backup)
	}
	return r, nil
}
