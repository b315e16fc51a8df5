// Package sim runs the console hosted, on a terminal. It plays the part of the
// boot environment: the Go heap stands in for the kernel allocator, a ticker
// for the timer interrupt and the terminal keyboard for the input driver. The
// framebuffer is presented with half-block characters, two pixels per cell.
package sim

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"fbcon/console"
	"fbcon/framebuffer"
	"fbcon/input"
	"fbcon/kernel"
	"fbcon/klog"
)

const upperHalf = '▀'

// Sim is a simulated machine with a console on its framebuffer.
type Sim struct {
	cfg    Config
	screen tcell.Screen
	fb     *framebuffer.Framebuffer
	con    *console.Console
	disp   *input.Dispatcher
	log    *klog.Logger

	timer   func()
	masked  int
	pending bool

	snapshots int
}

// New boots a console for cfg and presents it on screen, which must already
// be initialized. A zero width or height is taken from the terminal size.
func New(cfg Config, screen tcell.Screen, log *klog.Logger) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	format, _ := framebuffer.ParsePixelFormat(cfg.Format)
	colors, _ := cfg.Colors.Scheme()

	w, h := cfg.Width, cfg.Height
	if w == 0 || h == 0 {
		sw, sh := screen.Size()
		w, h = uint32(max(sw, 1)), uint32(max(sh, 1))*2
	}
	fb, err := framebuffer.Alloc(framebuffer.Info{Width: w, Height: h, Format: format})
	if err != nil {
		return nil, fmt.Errorf("sim: framebuffer: %w", err)
	}
	face, err := cfg.Font.Load()
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	s := &Sim{cfg: cfg, screen: screen, fb: fb, log: log.With("sim")}
	s.con, err = kernel.Start(s, fb, kernel.Config{
		Font:         face,
		Colors:       &colors,
		BlinkDivisor: cfg.BlinkDivisor,
		Banner:       cfg.Banner,
		Log:          log,
	})
	if err != nil {
		return nil, err
	}
	s.disp = input.New(s.con, log)
	s.log.Info("ready", "tick", cfg.TickInterval())
	return s, nil
}

// Console returns the simulated console.
func (s *Sim) Console() *console.Console { return s.con }

// Framebuffer returns the simulated framebuffer.
func (s *Sim) Framebuffer() *framebuffer.Framebuffer { return s.fb }

// HeapReady is always true: the Go heap is up before New runs.
func (s *Sim) HeapReady() bool { return true }

// Alloc allocates cells on the Go heap.
func (s *Sim) Alloc(n int) []rune { return make([]rune, n) }

// RegisterTimerHandler installs the handler Tick delivers to.
func (s *Sim) RegisterTimerHandler(h func()) { s.timer = h }

// Mask defers timer delivery until the matching Unmask.
func (s *Sim) Mask() { s.masked++ }

// Unmask re-enables timer delivery. A tick that arrived while masked is
// delivered once, as a pending interrupt line would be.
func (s *Sim) Unmask() {
	if s.masked == 0 {
		return
	}
	s.masked--
	if s.masked == 0 && s.pending {
		s.pending = false
		s.timer()
	}
}

// Tick raises the simulated timer interrupt.
func (s *Sim) Tick() {
	if s.timer == nil {
		return
	}
	if s.masked > 0 {
		s.pending = true
		return
	}
	s.timer()
}

// Run delivers terminal events and timer ticks until ctx is done or the user
// quits. Events and ticks are handled on the calling goroutine, so the console
// never sees a tick in the middle of an edit.
func (s *Sim) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(s.cfg.TickInterval())
	defer ticker.Stop()

	s.Present()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("stopped", "reason", ctx.Err())
			return nil
		case ev := <-events:
			if s.Handle(ev) {
				s.log.Info("quit", "ticks", s.con.Ticks(), "dropped", s.disp.Dropped())
				return nil
			}
		case <-ticker.C:
			s.Tick()
		}
		s.Present()
	}
}

// Handle processes one terminal event and reports whether the user asked to
// quit. Esc and Ctrl-C quit, F2 saves a PNG snapshot, Ctrl-L clears the screen;
// every other key goes through the input dispatcher.
func (s *Sim) Handle(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch controlKey(ev) {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyF2:
			s.snapshot()
			return false
		case tcell.KeyCtrlL:
			s.con.Clear()
			return false
		}
		if e, ok := FromKey(ev); ok {
			s.disp.Dispatch(e)
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return false
}

// controlKey folds Ctrl+letter reported as a modified rune into the
// matching control key.
func controlKey(ev *tcell.EventKey) tcell.Key {
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 {
		if r := unicode.ToLower(ev.Rune()); r >= 'a' && r <= 'z' {
			return tcell.KeyCtrlA + tcell.Key(r-'a')
		}
	}
	return ev.Key()
}

func (s *Sim) snapshot() {
	path := filepath.Join(s.cfg.SnapshotDir, fmt.Sprintf("fbcon-%03d.png", s.snapshots))
	s.snapshots++
	if err := s.fb.SavePNG(path); err != nil {
		s.log.Warn("snapshot failed", "path", path, "err", err)
		return
	}
	s.log.Info("snapshot saved", "path", path)
}

// Present copies the framebuffer to the terminal. Each cell shows two pixels
// stacked vertically; a framebuffer larger than the terminal is downsampled by
// a whole factor so the aspect ratio is kept.
func (s *Sim) Present() {
	info := s.fb.Info()
	sw, sh := s.screen.Size()
	if sw <= 0 || sh <= 0 {
		return
	}
	step := max(1, ceilDiv(int(info.Width), sw), ceilDiv(int(info.Height), 2*sh))

	for y := 0; y < sh; y++ {
		top := uint32(2 * y * step)
		bot := uint32((2*y + 1) * step)
		for x := 0; x < sw; x++ {
			px := uint32(x * step)
			if px >= info.Width || top >= info.Height {
				s.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
				continue
			}
			style := tcell.StyleDefault.Foreground(rgb(s.fb.At(px, top)))
			if bot < info.Height {
				style = style.Background(rgb(s.fb.At(px, bot)))
			}
			s.screen.SetContent(x, y, upperHalf, nil, style)
		}
	}
	s.screen.Show()
}

func rgb(c uint32) tcell.Color {
	return tcell.NewRGBColor(int32(c>>16&0xFF), int32(c>>8&0xFF), int32(c&0xFF))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
