package bus

import "fmt"

// BIOSSize is the fixed size of the boot ROM (spec.md §4.5, §6).
const BIOSSize = 16 * 1024

// BIOS is a read-only 16 KiB ROM device. Writes fault.
type BIOS struct {
	base uint32
	data [BIOSSize]byte
}

// NewBIOS returns a zeroed BIOS device mapped starting at base.
func NewBIOS(base uint32) *BIOS {
	return &BIOS{base: base}
}

// Load copies a 16 KiB image into the ROM, failing if the size differs.
func (b *BIOS) Load(image []byte) error {
	if len(image) != BIOSSize {
		return fmt.Errorf("bios image is %d bytes, want %d", len(image), BIOSSize)
	}
	copy(b.data[:], image)
	return nil
}

// ReadByte returns the byte at addr-base.
func (b *BIOS) ReadByte(addr uint32) (byte, error) {
	off := addr - b.base
	if off >= BIOSSize {
		return 0, InvalidRegion(addr, "bios out of range")
	}
	return b.data[off], nil
}

// WriteByte always faults: the ROM is read-only.
func (b *BIOS) WriteByte(addr uint32, _ byte) error {
	return InvalidRegion(addr, "bios is read-only")
}

// WRAM is a power-of-two backing buffer that wraps by modulo its length,
// offset from a configured base (spec.md §4.5).
type WRAM struct {
	base uint32
	data []byte
}

// NewWRAM allocates a WRAM device of the given size (must be a power of
// two) mapped starting at base.
func NewWRAM(base, size uint32) *WRAM {
	return &WRAM{base: base, data: make([]byte, size)}
}

func (w *WRAM) offset(addr uint32) uint32 {
	return (addr - w.base) % uint32(len(w.data))
}

// ReadByte reads with modulo wraparound.
func (w *WRAM) ReadByte(addr uint32) (byte, error) {
	return w.data[w.offset(addr)], nil
}

// WriteByte writes with modulo wraparound.
func (w *WRAM) WriteByte(addr uint32, v byte) error {
	w.data[w.offset(addr)] = v
	return nil
}

// IOFlags is the byte-granular System-IO register block (spec.md §4.5):
// known sub-addresses are readable/writable flags; unknown sub-addresses
// log a warning and, on write, fault.
type IOFlags struct {
	base  uint32
	size  uint32
	known map[uint32]bool
	data  map[uint32]byte
	warn  func(format string, args ...any)
}

// NewIOFlags returns an I/O flags block spanning [base, base+size) with no
// sub-addresses registered yet; call Define for each documented register.
func NewIOFlags(base, size uint32, warn func(format string, args ...any)) *IOFlags {
	return &IOFlags{
		base:  base,
		size:  size,
		known: make(map[uint32]bool),
		data:  make(map[uint32]byte),
		warn:  warn,
	}
}

// Define registers a documented sub-address (e.g. the post-boot flag or
// interrupt-master-enable byte) with an initial value.
func (f *IOFlags) Define(addr uint32, initial byte) {
	f.known[addr] = true
	f.data[addr] = initial
}

func (f *IOFlags) inRange(addr uint32) bool {
	return addr >= f.base && addr < f.base+f.size
}

// ReadByte returns 0 and logs a warning for undocumented sub-addresses
// (reads never fault per spec.md §7; only writes to unknown sub-addresses
// do).
func (f *IOFlags) ReadByte(addr uint32) (byte, error) {
	if !f.inRange(addr) {
		return 0, InvalidRegion(addr, "outside io flags region")
	}
	if !f.known[addr] {
		if f.warn != nil {
			f.warn("read of unknown io flag at 0x%08X", addr)
		}
		return 0, nil
	}
	return f.data[addr], nil
}

// WriteByte updates a documented sub-address, or logs a warning and faults
// for an undocumented one (spec.md §7).
func (f *IOFlags) WriteByte(addr uint32, v byte) error {
	if !f.inRange(addr) {
		return InvalidRegion(addr, "outside io flags region")
	}
	if !f.known[addr] {
		if f.warn != nil {
			f.warn("write of unknown io flag at 0x%08X", addr)
		}
		return InvalidRegion(addr, "unknown io flag")
	}
	f.data[addr] = v
	return nil
}
