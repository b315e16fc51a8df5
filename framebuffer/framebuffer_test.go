package framebuffer

import (
	"bytes"
	"errors"
	"image/png"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		info    Info
		wantErr bool
	}{
		{"xrgb ok", Info{Width: 4, Height: 2, Pitch: 16, Format: XRGB8888}, false},
		{"padded pitch", Info{Width: 4, Height: 2, Pitch: 32, Format: RGB888}, false},
		{"short pitch", Info{Width: 4, Height: 2, Pitch: 8, Format: XRGB8888}, true},
		{"zero width", Info{Width: 0, Height: 2, Pitch: 8, Format: Gray8}, true},
		{"bad format", Info{Width: 4, Height: 2, Pitch: 16, Format: PixelFormat(9)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInfo) {
				t.Errorf("Validate() error = %v, want ErrInvalidInfo", err)
			}
		})
	}
}

func TestNewShortBuffer(t *testing.T) {
	info := Info{Width: 4, Height: 4, Pitch: 16, Format: XRGB8888}
	_, err := New(info, make([]byte, 10))
	if !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("New() error = %v, want ErrShortBuffer", err)
	}
}

func TestWritePixelFormats(t *testing.T) {
	const color = 0x00112233

	tests := []struct {
		format PixelFormat
		want   []byte
		back   uint32
	}{
		{XRGB8888, []byte{0x33, 0x22, 0x11, 0x00}, color},
		{RGB888, []byte{0x11, 0x22, 0x33}, color},
		{BGR888, []byte{0x33, 0x22, 0x11}, color},
		{Gray8, []byte{0x1e}, 0x001e1e1e},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			fb, err := Alloc(Info{Width: 3, Height: 2, Format: tt.format})
			if err != nil {
				t.Fatalf("Alloc() error = %v", err)
			}
			fb.WritePixel(1, 1, color)

			bpp := int(tt.format.BytesPerPixel())
			off := int(fb.Info().Pitch) + bpp
			if got := fb.Bytes()[off : off+bpp]; !bytes.Equal(got, tt.want) {
				t.Errorf("pixel bytes = % x, want % x", got, tt.want)
			}
			if got := fb.At(1, 1); got != tt.back {
				t.Errorf("At() = %#08x, want %#08x", got, tt.back)
			}
			if got := fb.At(0, 0); got != 0 {
				t.Errorf("neighbour At(0,0) = %#08x, want 0", got)
			}
		})
	}
}

func TestWritePixelOutOfRange(t *testing.T) {
	fb, err := Alloc(Info{Width: 2, Height: 2, Format: XRGB8888})
	if err != nil {
		t.Fatal(err)
	}
	fb.WritePixel(2, 0, 0xFFFFFF)
	fb.WritePixel(0, 2, 0xFFFFFF)
	for _, b := range fb.Bytes() {
		if b != 0 {
			t.Fatalf("out-of-range write touched memory: % x", fb.Bytes())
		}
	}
}

func TestFillRectClips(t *testing.T) {
	fb, err := Alloc(Info{Width: 4, Height: 4, Format: XRGB8888})
	if err != nil {
		t.Fatal(err)
	}
	fb.FillRect(2, 2, 10, 10, 0x00ABCDEF)

	for y := uint32(0); y < 4; y++ {
		for x := uint32(0); x < 4; x++ {
			want := uint32(0)
			if x >= 2 && y >= 2 {
				want = 0x00ABCDEF
			}
			if got := fb.At(x, y); got != want {
				t.Errorf("At(%d,%d) = %#08x, want %#08x", x, y, got, want)
			}
		}
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		name  string
		alpha uint8
		want  uint32
	}{
		{"transparent", 0, 0x00000000},
		{"opaque", 255, 0x00FF8000},
		{"half", 128, 0x007F4000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blend(0x00FF8000, 0, tt.alpha); got != tt.want {
				t.Errorf("Blend() = %#08x, want %#08x", got, tt.want)
			}
		})
	}
}

func TestSavePNG(t *testing.T) {
	fb, err := Alloc(Info{Width: 8, Height: 4, Format: BGR888})
	if err != nil {
		t.Fatal(err)
	}
	fb.FillRect(0, 0, 4, 4, 0x00FF0000)

	path := filepath.Join(t.TempDir(), "fb.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	var buf bytes.Buffer
	if err := fb.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if got := img.Bounds().Dx(); got != 8 {
		t.Errorf("width = %d, want 8", got)
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 0xFF || g != 0 || b != 0 {
		t.Errorf("pixel (1,1) = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
	r, _, _, _ = img.At(6, 1).RGBA()
	if r != 0 {
		t.Errorf("pixel (6,1) red = %d, want 0", r>>8)
	}
}
