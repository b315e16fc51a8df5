//go:build qemuvirt && arm64

package kernel

import (
	_ "unsafe" // Required for //go:linkname directives

	"fbcon/framebuffer"
	"fbcon/klog"
)

// Provided by the boot assembly and the interrupt controller driver.
//
//go:linkname disable_irqs disable_irqs
//go:nosplit
func disable_irqs()

//go:linkname enable_irqs enable_irqs
//go:nosplit
func enable_irqs()

//go:linkname registerInterruptHandler registerInterruptHandler
func registerInterruptHandler(id uint32, handler func())

//go:linkname gicEnableInterrupt gicEnableInterrupt
func gicEnableInterrupt(id uint32)

//go:linkname uart_putc uart_putc
//go:nosplit
func uart_putc(c byte)

// Virtual timer PPI on the QEMU virt machine.
const irqIDTimerPPI = 27

// QEMU is the Platform of the QEMU virt machine. The timer is already
// programmed for a 100ms period by the time Start runs.
type QEMU struct {
	heapReady bool
}

// MarkHeapReady records that the Go heap can serve allocations.
func (q *QEMU) MarkHeapReady() { q.heapReady = true }

func (q *QEMU) HeapReady() bool { return q.heapReady }

func (q *QEMU) Alloc(n int) []rune { return make([]rune, n) }

//go:nosplit
func (q *QEMU) Mask() { disable_irqs() }

//go:nosplit
func (q *QEMU) Unmask() { enable_irqs() }

func (q *QEMU) RegisterTimerHandler(h func()) {
	registerInterruptHandler(irqIDTimerPPI, h)
	gicEnableInterrupt(irqIDTimerPPI)
}

// UART writes kernel log lines to the PL011.
type UART struct{}

func (UART) Write(p []byte) (int, error) {
	for _, c := range p {
		uart_putc(c)
	}
	return len(p), nil
}

// Boot maps the framebuffer the firmware set up and starts the console on it.
func Boot(q *QEMU, fbAddr uintptr, info framebuffer.Info) error {
	log := klog.New(UART{}, klog.LevelInfo)
	fb, err := framebuffer.Map(fbAddr, info)
	if err != nil {
		log.Error("framebuffer map failed", "err", err)
		return err
	}
	_, err = Start(q, fb, Config{Log: log, Banner: "fbcon ready\n"})
	return err
}
