package sim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fbcon/console"
	"fbcon/font"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cs, err := cfg.Colors.Scheme()
	if err != nil {
		t.Fatal(err)
	}
	if cs != console.DefaultColorScheme {
		t.Errorf("Scheme() = %+v, want %+v", cs, console.DefaultColorScheme)
	}
	if cfg.BlinkDivisor != console.DefaultBlinkDivisor {
		t.Errorf("BlinkDivisor = %d", cfg.BlinkDivisor)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "fbcon.toml", `
width = 320
height = 200
tick_ms = 50
blink_divisor = 10

[colors]
background = "#000000"
text = "#00ff00"
caret = "#00ff00"

[log]
level = "debug"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 200 || cfg.BlinkDivisor != 10 {
		t.Errorf("cfg = %+v", cfg)
	}
	if got := cfg.TickInterval().Milliseconds(); got != 50 {
		t.Errorf("TickInterval() = %dms, want 50ms", got)
	}
	if cfg.Format != "xrgb8888" {
		t.Errorf("Format = %q, want default kept", cfg.Format)
	}
	cs, _ := cfg.Colors.Scheme()
	if cs.Text != 0x00FF00 || cs.Background != 0 {
		t.Errorf("Scheme() = %+v", cs)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "colour = 1\n"},
		{"bad format", "format = \"rgb565\"\n"},
		{"bad color", "[colors]\ntext = \"green\"\n"},
		{"zero tick", "tick_ms = 0\n"},
		{"syntax", "width = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "bad.toml", tt.content))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("LoadConfig() error = %v, want ErrInvalidConfig", err)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestFontConfigLoad(t *testing.T) {
	if r, err := (FontConfig{}).Load(); r != nil || err != nil {
		t.Errorf("empty path = %v,%v, want nil,nil", r, err)
	}

	path := filepath.Join(t.TempDir(), "basic.fbcf")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := font.Basic().Encode(f); err != nil {
		t.Fatal(err)
	}
	f.Close()

	r, err := FontConfig{Path: path}.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if w, h := r.Size(); w != 7 || h != 13 {
		t.Errorf("Size() = %dx%d, want 7x13", w, h)
	}

	if _, err := (FontConfig{Path: writeFile(t, "junk.fbcf", "nope")}).Load(); !errors.Is(err, font.ErrBadBlob) {
		t.Errorf("junk blob error = %v, want ErrBadBlob", err)
	}
}
