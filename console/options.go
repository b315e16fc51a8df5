package console

import "fbcon/klog"

// IRQMask masks the timer interrupt around multi-step edits so a tick never
// sees a half-shifted line. Mask and Unmask calls are strictly paired and
// never nested.
type IRQMask interface {
	Mask()
	Unmask()
}

type noMask struct{}

func (noMask) Mask()   {}
func (noMask) Unmask() {}

// Allocator returns a slice of n cells, or nil when memory is exhausted.
type Allocator func(n int) []rune

func heapAlloc(n int) []rune {
	return make([]rune, n)
}

type options struct {
	blinkDivisor uint32
	colors       ColorScheme
	layout       Layout
	alloc        Allocator
	irq          IRQMask
	log          *klog.Logger
}

func defaultOptions() options {
	return options{
		blinkDivisor: DefaultBlinkDivisor,
		colors:       DefaultColorScheme,
		layout:       DefaultLayout,
		alloc:        heapAlloc,
		irq:          noMask{},
	}
}

// Option configures a Console at construction. Nothing can be changed later.
type Option func(*options)

// WithBlinkDivisor sets the number of ticks per caret toggle.
func WithBlinkDivisor(n uint32) Option {
	return func(o *options) {
		if n > 0 {
			o.blinkDivisor = n
		}
	}
}

// WithColors sets the color scheme.
func WithColors(cs ColorScheme) Option {
	return func(o *options) { o.colors = cs }
}

// WithLayout sets cell spacing and tab width.
func WithLayout(l Layout) Option {
	return func(o *options) { o.layout = l }
}

// WithAlloc sets the allocator used for the shadow buffer.
func WithAlloc(a Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.alloc = a
		}
	}
}

// WithIRQMask sets the interrupt mask used around edits.
func WithIRQMask(m IRQMask) Option {
	return func(o *options) {
		if m != nil {
			o.irq = m
		}
	}
}

// WithLogger sets the init log.
func WithLogger(l *klog.Logger) Option {
	return func(o *options) { o.log = l }
}
