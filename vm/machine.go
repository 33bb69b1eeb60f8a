package vm

import (
	"fmt"
	"sync"

	"github.com/pocketsilicon/armv4t-core/bus"
)

// Default memory map (spec.md §6).
const (
	biosBase     = 0x00000000
	iwramBase    = 0x03000000
	iwramSize    = 0x8000
	ewramBase    = 0x08000000
	ewramSize    = 0x08000000
	ioFlagsBase  = 0x04000200
	ioFlagsEnd   = 0x04700000
	lcdBase      = 0x04000000
	lcdSize      = 0x56
	resetVector  = 0x00000000
)

// Machine is the top-level emulator: the register file, a default device
// graph wired onto a Bus, and the pipeline driving them. A single mutex
// guards every Tick/Run/Registers call, matching spec.md §5's "single
// mutex around the whole machine" design.
type Machine struct {
	mu       sync.Mutex
	core     *Core
	pipeline *Pipeline
	bios     *bus.BIOS
	bus      *bus.Bus
	cycles   uint64
}

// New constructs a Machine with the default memory map: BIOS ROM, on-chip
// and external WRAM, an I/O flags block, and an LCD register placeholder
// (spec.md §6).
func New() *Machine {
	b := bus.New()

	biosDev := bus.NewBIOS(biosBase)
	b.Register("bios", biosBase, bus.BIOSSize, biosDev)
	b.Register("iwram", iwramBase, iwramSize, bus.NewWRAM(iwramBase, iwramSize))
	b.Register("ewram", ewramBase, ewramSize, bus.NewWRAM(ewramBase, ewramSize))

	io := bus.NewIOFlags(ioFlagsBase, ioFlagsEnd-ioFlagsBase, logWarning)
	io.Define(0x04000208, 0x00) // IME: interrupt master enable
	io.Define(0x04000300, 0x01) // POSTFLG: post-boot flag
	b.Register("io", ioFlagsBase, ioFlagsEnd-ioFlagsBase, io)

	lcd := bus.NewIOFlags(lcdBase, lcdSize, logWarning)
	lcd.Define(0x04000000, 0x00) // DISPCNT
	b.Register("lcd", lcdBase, lcdSize, lcd)

	core := NewCore(b)
	m := &Machine{
		core: core,
		bus:  b,
		bios: biosDev,
	}
	m.pipeline = NewPipeline(core, resetVector)
	return m
}

// SetBios loads a 16 KiB BIOS image (spec.md §6).
func (m *Machine) SetBios(image []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(image) != bus.BIOSSize {
		return &BiosSizeMismatchError{Got: len(image), Want: bus.BIOSSize}
	}
	return m.bios.Load(image)
}

// Tick runs exactly one pipeline step and returns the number of cycles
// consumed (always 1 at this core's granularity) or any fault.
func (m *Machine) Tick() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.pipeline.Step()
	if err != nil {
		return 0, err
	}
	m.cycles++
	return 1, nil
}

// Run iterates Tick until budget ticks have elapsed (DefaultMaxCycles if
// budget is nil) or a fault occurs.
func (m *Machine) Run(budget *uint64) (uint64, error) {
	limit := uint64(DefaultMaxCycles)
	if budget != nil {
		limit = *budget
	}
	var ran uint64
	for ran < limit {
		m.mu.Lock()
		_, err := m.pipeline.Step()
		m.cycles++
		ran++
		m.mu.Unlock()
		if err != nil {
			return ran, err
		}
	}
	return ran, nil
}

// Reset zeroes registers, sets CPSR to System/ARM mode, PC = 0, and
// flushes the pipeline (spec.md §6).
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.core.Regs.Reset()
	m.pipeline.Flush(resetVector)
	m.cycles = 0
}

// Registers returns an immutable snapshot of the register file
// (spec.md §6, §4.2).
func (m *Machine) Registers() RegisterSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.core.Regs.Snapshot()
}

// Bus exposes the underlying bus for a host shell that needs direct
// device access (e.g. rendering a frame buffer through the same handle
// the core uses) — spec.md §9 "handle + single owner".
func (m *Machine) Bus() *bus.Bus { return m.bus }

// Cycles reports the total number of ticks executed since construction
// or the last Reset.
func (m *Machine) Cycles() uint64 { return m.cycles }

// Error is a convenience wrapper used by the CLI to report a halting
// fault with the cycle count reached.
type Error struct {
	Cycles uint64
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("halted after %d cycles: %v", e.Cycles, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
