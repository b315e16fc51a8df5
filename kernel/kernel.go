// Package kernel is the boot glue around the console: it brings the console up
// once the heap is ready and hooks its tick handler to the timer interrupt.
package kernel

import (
	"errors"
	"fmt"

	"fbcon/console"
	"fbcon/font"
	"fbcon/framebuffer"
	"fbcon/klog"
)

// ErrHeapNotReady is returned when Start runs before the heap allocator.
var ErrHeapNotReady = errors.New("kernel: heap not initialized")

// Platform is what the boot environment provides to the console.
type Platform interface {
	// Mask and Unmask disable and re-enable the timer interrupt.
	console.IRQMask

	// HeapReady reports whether Alloc may be called.
	HeapReady() bool

	// Alloc returns n cells of zeroed memory, or nil when out of memory.
	Alloc(n int) []rune

	// RegisterTimerHandler installs h to run once per timer interrupt.
	// h runs to completion and must not be re-entered.
	RegisterTimerHandler(h func())
}

// Config selects the console's compile-time parameters.
type Config struct {
	Font         *font.Raster // nil selects font.Basic
	Colors       *console.ColorScheme
	BlinkDivisor uint32 // 0 selects console.DefaultBlinkDivisor
	Banner       string // printed once the console is up
	Log          *klog.Logger
}

// Start initializes the console on fb and registers its timer handler. It must
// be called exactly once, after the heap is ready and before any input or tick
// is delivered. On failure nothing is registered.
func Start(p Platform, fb *framebuffer.Framebuffer, cfg Config) (*console.Console, error) {
	log := cfg.Log.With("kernel")
	if !p.HeapReady() {
		log.Error("console init before heap init")
		return nil, ErrHeapNotReady
	}

	face := cfg.Font
	if face == nil {
		face = font.Basic()
	}
	opts := []console.Option{
		console.WithAlloc(p.Alloc),
		console.WithIRQMask(p),
		console.WithLogger(cfg.Log),
	}
	if cfg.BlinkDivisor != 0 {
		opts = append(opts, console.WithBlinkDivisor(cfg.BlinkDivisor))
	}
	if cfg.Colors != nil {
		opts = append(opts, console.WithColors(*cfg.Colors))
	}

	info := fb.Info()
	log.Info("framebuffer", "width", info.Width, "height", info.Height, "pitch", info.Pitch, "format", info.Format)
	con, err := console.New(fb, face, opts...)
	if err != nil {
		log.Error("console setup aborted", "err", err)
		return nil, fmt.Errorf("kernel: console init: %w", err)
	}

	p.RegisterTimerHandler(con.Tick)
	log.Info("timer handler registered")

	if cfg.Banner != "" {
		_, _ = con.WriteString(cfg.Banner)
	}
	return con, nil
}
