package vm

// Register aliases, kept for readability at call sites.
const (
	R0  = 0
	R1  = 1
	R2  = 2
	R3  = 3
	R4  = 4
	R5  = 5
	R6  = 6
	R7  = 7
	R8  = 8
	R9  = 9
	R10 = 10
	R11 = 11
	R12 = 12
	SP  = 13
	LR  = 14
	PC  = 15
)

// RegisterBank is the banked ARMv4T general-register file: a base array
// R[0..15], a FIQ shadow for R8-R14, and SVC/IRQ/ABT/UND shadows for
// R13-R14, plus five SPSRs (one per exception mode). Modeled as a flat
// table of shadow slots with pure (index, mode) accessors rather than a
// class hierarchy (spec.md §9).
type RegisterBank struct {
	base [16]uint32 // R0-R15; R15 is always read through here for PC

	fiqBank [7]uint32 // R8-R14 while in FIQ mode
	svcBank [2]uint32 // R13-R14 while in Supervisor mode
	irqBank [2]uint32 // R13-R14 while in IRQ mode
	abtBank [2]uint32 // R13-R14 while in Abort mode
	undBank [2]uint32 // R13-R14 while in Undefined mode

	cpsr StatusRegister
	spsr [5]StatusRegister // indexed by Mode.spsrSlot(): FIQ, IRQ, SVC, ABT, UND
}

// NewRegisterBank returns a bank with CPSR in System mode, ARM instruction
// mode, all registers and SPSRs zeroed.
func NewRegisterBank() *RegisterBank {
	rb := &RegisterBank{}
	rb.cpsr = StatusRegister{ProcessorMode: ModeSystem, InstructionMode: Arm}
	return rb
}

// Reset zeroes every register and shadow bank and resets CPSR to System
// mode / ARM instruction mode / PC = 0 (spec.md §6 "reset").
func (rb *RegisterBank) Reset() {
	*rb = RegisterBank{}
	rb.cpsr = StatusRegister{ProcessorMode: ModeSystem, InstructionMode: Arm}
}

// shadowSlot returns a pointer to the shadow storage for register index i
// under mode m, or nil if i is not banked under m.
func (rb *RegisterBank) shadowSlot(i int, m Mode) *uint32 {
	if m == ModeFIQ && i >= 8 && i <= 14 {
		return &rb.fiqBank[i-8]
	}
	if m.hasBankedR13R14() && (i == SP || i == LR) {
		switch m {
		case ModeSupervisor:
			return &rb.svcBank[i-SP]
		case ModeIRQ:
			return &rb.irqBank[i-SP]
		case ModeAbort:
			return &rb.abtBank[i-SP]
		case ModeUndefined:
			return &rb.undBank[i-SP]
		}
	}
	return nil
}

// ReadWithMode returns the value of register i as visible under mode m.
// R15 and R0-R7 are never banked; read(i, User) and read(i, System) alias
// identically (spec.md §3 invariant) because neither mode has a shadow
// slot, so both fall through to base.
func (rb *RegisterBank) ReadWithMode(i int, m Mode) uint32 {
	if i == PC {
		return rb.base[PC]
	}
	if slot := rb.shadowSlot(i, m); slot != nil {
		return *slot
	}
	return rb.base[i]
}

// WriteWithMode sets register i as visible under mode m.
func (rb *RegisterBank) WriteWithMode(i int, m Mode, v uint32) {
	if i == PC {
		rb.base[PC] = v
		return
	}
	if slot := rb.shadowSlot(i, m); slot != nil {
		*slot = v
		return
	}
	rb.base[i] = v
}

// Read returns register i under the current CPSR mode.
func (rb *RegisterBank) Read(i int) uint32 { return rb.ReadWithMode(i, rb.cpsr.ProcessorMode) }

// ReadOperand returns register i as a general data-processing/address
// operand. Core.Execute biases base[PC] to the chosen pipeline
// convention (spec.md §4.8, §9 Open Questions: current instruction's
// address plus 8 for ARM / 4 for Thumb) before dispatching to an
// executor, so R15 just reads back whatever was staged there.
func (rb *RegisterBank) ReadOperand(i int) uint32 {
	if i == PC {
		return rb.base[PC]
	}
	return rb.Read(i)
}

// Write sets register i under the current CPSR mode.
func (rb *RegisterBank) Write(i int, v uint32) { rb.WriteWithMode(i, rb.cpsr.ProcessorMode, v) }

// PCValue returns the raw program counter (no pipeline bias applied; see
// Core.Execute in core.go, which stages the +8/+4 bias into R15).
func (rb *RegisterBank) PCValue() uint32 { return rb.base[PC] }

// SetPC sets the raw program counter.
func (rb *RegisterBank) SetPC(v uint32) { rb.base[PC] = v }

// CPSR returns the current program status register.
func (rb *RegisterBank) CPSR() StatusRegister { return rb.cpsr }

// SetCPSR installs a new CPSR wholesale (used by reset, MSR, and exception
// entry/return).
func (rb *RegisterBank) SetCPSR(s StatusRegister) { rb.cpsr = s }

// SPSR returns the SPSR for the current mode. Per spec.md §4.2, User and
// System have no SPSR; implementations may return the FIQ slot with a
// warning to match source behavior, which is what we do here.
func (rb *RegisterBank) SPSR() StatusRegister {
	slot := rb.cpsr.ProcessorMode.spsrSlot()
	if slot < 0 {
		logWarning("SPSR read in mode %s has no backing register; returning FIQ slot", rb.cpsr.ProcessorMode)
		return rb.spsr[0]
	}
	return rb.spsr[slot]
}

// SetSPSR writes the SPSR for the current mode (no-op with a warning in
// User/System, matching SPSR()'s fallback).
func (rb *RegisterBank) SetSPSR(s StatusRegister) {
	slot := rb.cpsr.ProcessorMode.spsrSlot()
	if slot < 0 {
		logWarning("SPSR write in mode %s discarded (no backing register)", rb.cpsr.ProcessorMode)
		return
	}
	rb.spsr[slot] = s
}

// SPSRForMode returns the SPSR belonging to an arbitrary exception mode,
// used by SWI entry to snapshot the pre-exception CPSR into SPSR_svc.
func (rb *RegisterBank) SPSRForMode(m Mode) StatusRegister {
	slot := m.spsrSlot()
	if slot < 0 {
		return StatusRegister{}
	}
	return rb.spsr[slot]
}

// SetSPSRForMode writes the SPSR belonging to an arbitrary exception mode.
func (rb *RegisterBank) SetSPSRForMode(m Mode, s StatusRegister) {
	slot := m.spsrSlot()
	if slot < 0 {
		return
	}
	rb.spsr[slot] = s
}

// RegisterSnapshot is an immutable clone of the bank for debugger
// inspection (spec.md §4.2 "Snapshot for the debugger is a whole-state
// clone").
type RegisterSnapshot struct {
	R    [16]uint32
	CPSR StatusRegister
}

// Snapshot captures the registers as currently visible (using the current
// mode's banked view for R0-R14, and the CPSR's PC bias-free raw PC).
func (rb *RegisterBank) Snapshot() RegisterSnapshot {
	var snap RegisterSnapshot
	for i := 0; i < 15; i++ {
		snap.R[i] = rb.Read(i)
	}
	snap.R[PC] = rb.PCValue()
	snap.CPSR = rb.cpsr
	return snap
}
