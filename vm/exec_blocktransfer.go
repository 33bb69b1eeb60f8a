package vm

import "math/bits"

// execBlockDataTransfer implements LDM/STM in all four addressing modes
// (spec.md §4.7). Registers always transfer in ascending register-number
// order at ascending memory addresses; the addressing mode only picks
// where that ascending run starts.
//
// Base-in-register-list with writeback is an architecturally UNPREDICTABLE
// combination (spec.md §9 Open Questions). This core's chosen rule: STM
// stores the base's original (pre-transfer) value no matter where it
// falls in the list, and LDM lets the loaded value win over the
// writeback computed from the old base — i.e. writeback never clobbers a
// value the instruction itself just loaded into the base register.
func (c *Core) execBlockDataTransfer(inst *Instruction) (ExecResult, error) {
	rb := c.Regs
	count := bits.OnesCount16(inst.RegList)
	base := rb.ReadOperand(inst.Rn)

	var start uint32
	switch inst.Block {
	case BlockIA:
		start = base
	case BlockIB:
		start = base + 4
	case BlockDA:
		start = base - uint32(count)*4 + 4
	case BlockDB:
		start = base - uint32(count)*4
	}

	var writeback uint32
	switch inst.Block {
	case BlockIA, BlockIB:
		writeback = base + uint32(count)*4
	default:
		writeback = base - uint32(count)*4
	}

	userBank := inst.ForcePSR && !(inst.Load && inst.RegList&(1<<PC) != 0)
	branched := false

	addr := start
	originalBase := base
	for r := 0; r < 16; r++ {
		if inst.RegList&(1<<uint(r)) == 0 {
			continue
		}
		if inst.Load {
			value, err := c.Mem.ReadWord(addr)
			if err != nil {
				return ExecResult{}, err
			}
			if userBank {
				rb.WriteWithMode(r, ModeUser, value)
			} else {
				rb.Write(r, value)
			}
			if r == PC {
				rb.SetPC(value &^ 0x3)
				branched = true
			}
		} else {
			var value uint32
			if r == int(inst.Rn) {
				value = originalBase
			} else if userBank {
				value = rb.ReadWithMode(r, ModeUser)
			} else {
				value = rb.ReadOperand(r)
			}
			if err := c.Mem.WriteWord(addr, value); err != nil {
				return ExecResult{}, err
			}
		}
		addr += 4
	}

	if inst.ForcePSR && inst.Load && inst.RegList&(1<<PC) != 0 {
		rb.SetCPSR(rb.SPSR())
	}

	if inst.WriteBack {
		baseLoaded := inst.Load && inst.RegList&(1<<uint(inst.Rn)) != 0
		if !baseLoaded {
			rb.Write(inst.Rn, writeback)
		}
	}

	return ExecResult{Branched: branched}, nil
}
