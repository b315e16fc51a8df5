package kernel

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"fbcon/console"
	"fbcon/framebuffer"
	"fbcon/klog"
)

type fakePlatform struct {
	heapReady bool
	allocFail bool
	masked    int
	handlers  []func()
}

func (p *fakePlatform) Mask()           { p.masked++ }
func (p *fakePlatform) Unmask()         { p.masked-- }
func (p *fakePlatform) HeapReady() bool { return p.heapReady }

func (p *fakePlatform) Alloc(n int) []rune {
	if p.allocFail {
		return nil
	}
	return make([]rune, n)
}

func (p *fakePlatform) RegisterTimerHandler(h func()) {
	p.handlers = append(p.handlers, h)
}

func newFramebuffer(t *testing.T) *framebuffer.Framebuffer {
	t.Helper()
	fb, err := framebuffer.Alloc(framebuffer.Info{Width: 160, Height: 100, Format: framebuffer.XRGB8888})
	if err != nil {
		t.Fatal(err)
	}
	return fb
}

func TestStart(t *testing.T) {
	p := &fakePlatform{heapReady: true}
	var logBuf bytes.Buffer
	colors := console.ClassicColorScheme

	con, err := Start(p, newFramebuffer(t), Config{
		Colors:       &colors,
		BlinkDivisor: 2,
		Banner:       "boot ok",
		Log:          klog.New(&logBuf, klog.LevelInfo),
	})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if len(p.handlers) != 1 {
		t.Fatalf("registered %d timer handlers, want 1", len(p.handlers))
	}
	if got := con.Line(0); got != "boot ok" {
		t.Errorf("row 0 = %q, want banner", got)
	}
	if p.masked != 0 {
		t.Errorf("interrupts left masked (%d)", p.masked)
	}

	_, _, before := con.Cursor()
	p.handlers[0]()
	p.handlers[0]()
	if _, _, after := con.Cursor(); after == before {
		t.Error("timer handler did not blink the caret with divisor 2")
	}
	if con.Ticks() != 2 {
		t.Errorf("Ticks() = %d, want 2", con.Ticks())
	}

	log := logBuf.String()
	for _, want := range []string{"INFO kernel: framebuffer width=160", "INFO console: initialized", "timer handler registered"} {
		if !strings.Contains(log, want) {
			t.Errorf("log missing %q:\n%s", want, log)
		}
	}
}

func TestStartBeforeHeap(t *testing.T) {
	p := &fakePlatform{}
	_, err := Start(p, newFramebuffer(t), Config{})
	if !errors.Is(err, ErrHeapNotReady) {
		t.Fatalf("Start() error = %v, want ErrHeapNotReady", err)
	}
	if len(p.handlers) != 0 {
		t.Error("timer handler registered without a console")
	}
}

func TestStartAllocFailure(t *testing.T) {
	p := &fakePlatform{heapReady: true, allocFail: true}
	_, err := Start(p, newFramebuffer(t), Config{})
	if !errors.Is(err, console.ErrBufferAlloc) {
		t.Fatalf("Start() error = %v, want ErrBufferAlloc", err)
	}
	if len(p.handlers) != 0 {
		t.Error("timer handler registered after a failed init")
	}
}
