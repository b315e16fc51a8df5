package main

import (
	"flag"
	"fmt"
	"os"

	"fbcon/console"
	"fbcon/font"
	"fbcon/framebuffer"
)

func main() {
	ttfPath := flag.String("ttf", "", "TrueType font to rasterize (default: built-in 7x13)")
	size := flag.Float64("size", 12, "Point size for -ttf")
	preview := flag.String("preview", "", "Also render every glyph through the console into this PNG")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fontconv [-ttf font.ttf -size pt] [-preview out.png] <output-blob>\n")
		fmt.Fprintf(os.Stderr, "Converts a font to the glyph blob format for kernel embedding\n")
		fmt.Fprintf(os.Stderr, "Output format:\n")
		fmt.Fprintf(os.Stderr, "  4 bytes: magic \"FBCF\"\n")
		fmt.Fprintf(os.Stderr, "  2 bytes: glyph width (uint16 little-endian)\n")
		fmt.Fprintf(os.Stderr, "  2 bytes: glyph height (uint16 little-endian)\n")
		fmt.Fprintf(os.Stderr, "  16 bytes: presence bitmap for codes 0-127\n")
		fmt.Fprintf(os.Stderr, "  128*width*height bytes: 8-bit coverage per pixel\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	outputPath := flag.Arg(0)

	raster := font.Basic()
	if *ttfPath != "" {
		data, err := os.ReadFile(*ttfPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading font: %v\n", err)
			os.Exit(1)
		}
		raster, err = font.LoadTTF(data, *size)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rasterizing font: %v\n", err)
			os.Exit(1)
		}
	}
	w, h := raster.Size()
	fmt.Printf("Glyph size: %d x %d\n", w, h)

	outFile, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer outFile.Close()

	if err := raster.Encode(outFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing glyph data: %v\n", err)
		os.Exit(1)
	}
	fileInfo, _ := os.Stat(outputPath)
	fmt.Printf("Wrote %s (%d bytes)\n", outputPath, fileInfo.Size())

	if *preview != "" {
		if err := renderPreview(raster, *preview); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing preview: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote preview %s\n", *preview)
	}
}

// renderPreview types the printable ASCII range, 16 glyphs per line, into a
// console sized to fit and saves the framebuffer.
func renderPreview(raster *font.Raster, path string) error {
	w, h := raster.Size()
	l := console.DefaultLayout
	info := framebuffer.Info{
		Width:  uint32(2*l.Border + 16*(w+l.LetterSpacing)),
		Height: uint32(2*l.Border + 7*(h+l.LineSpacing)),
	}
	fb, err := framebuffer.Alloc(info)
	if err != nil {
		return err
	}
	con, err := console.New(fb, raster)
	if err != nil {
		return err
	}
	for ch := rune(0x20); ch < 0x7F; ch++ {
		con.Insert(ch)
	}
	return fb.SavePNG(path)
}
