package sim

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"fbcon/console"
	"fbcon/font"
	"fbcon/framebuffer"
)

// Config is the simulator configuration, read from a TOML file.
type Config struct {
	// Width and Height of the simulated framebuffer in pixels. Zero fits the terminal.
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
	Format string `toml:"format"`

	// TickMillis is the period of the simulated timer interrupt.
	TickMillis   int    `toml:"tick_ms"`
	BlinkDivisor uint32 `toml:"blink_divisor"`

	Banner      string `toml:"banner"`
	SnapshotDir string `toml:"snapshot_dir"`

	Font   FontConfig  `toml:"font"`
	Colors ColorConfig `toml:"colors"`
	Log    LogConfig   `toml:"log"`
}

// FontConfig selects the glyph source. An empty Path uses the built-in 7x13 font;
// ".ttf" files are rasterized at Size points, anything else is read as a glyph blob.
type FontConfig struct {
	Path string  `toml:"path"`
	Size float64 `toml:"size"`
}

// ColorConfig holds hex colors such as "#191b70".
type ColorConfig struct {
	Background string `toml:"background"`
	Text       string `toml:"text"`
	Caret      string `toml:"caret"`
}

// LogConfig configures the kernel log sink.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Format:       "xrgb8888",
		TickMillis:   100,
		BlinkDivisor: console.DefaultBlinkDivisor,
		Banner:       "fbcon simulator - Esc quits, F2 saves a snapshot\n",
		SnapshotDir:  ".",
		Font:         FontConfig{Size: 12},
		Colors: ColorConfig{
			Background: hexColor(console.DefaultColorScheme.Background),
			Text:       hexColor(console.DefaultColorScheme.Text),
			Caret:      hexColor(console.DefaultColorScheme.Caret),
		},
		Log: LogConfig{Level: "info", File: "fbcon.log"},
	}
}

// LoadConfig reads path over the defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values the console cannot work with.
func (c Config) Validate() error {
	if _, err := framebuffer.ParsePixelFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.TickMillis <= 0 {
		return fmt.Errorf("%w: tick_ms must be positive, got %d", ErrInvalidConfig, c.TickMillis)
	}
	if _, err := c.Colors.Scheme(); err != nil {
		return err
	}
	return nil
}

// TickInterval returns the timer period.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// Scheme parses the three colors.
func (c ColorConfig) Scheme() (console.ColorScheme, error) {
	var cs console.ColorScheme
	for _, f := range []struct {
		name string
		in   string
		out  *uint32
	}{
		{"background", c.Background, &cs.Background},
		{"text", c.Text, &cs.Text},
		{"caret", c.Caret, &cs.Caret},
	} {
		col, err := colorful.Hex(f.in)
		if err != nil {
			return cs, fmt.Errorf("%w: colors.%s %q: %v", ErrInvalidConfig, f.name, f.in, err)
		}
		r, g, b := col.RGB255()
		*f.out = uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	}
	return cs, nil
}

// Load reads the configured font, or returns nil for the built-in one.
func (f FontConfig) Load() (*font.Raster, error) {
	if f.Path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	if strings.EqualFold(filepath.Ext(f.Path), ".ttf") {
		size := f.Size
		if size <= 0 {
			size = 12
		}
		return font.LoadTTF(data, size)
	}
	return font.Decode(data)
}

func hexColor(c uint32) string {
	return colorful.Color{
		R: float64((c>>16)&0xFF) / 255,
		G: float64((c>>8)&0xFF) / 255,
		B: float64(c&0xFF) / 255,
	}.Hex()
}
