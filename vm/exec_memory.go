package vm

// execSingleDataTransfer implements LDR/STR/LDRB/STRB/LDRH/STRH/LDRSB/
// LDRSH (spec.md §4.7), pre- or post-indexed, with optional writeback and
// forced user-bank access for post-indexed+W (the "T" variants).
func (c *Core) execSingleDataTransfer(inst *Instruction) (ExecResult, error) {
	rb := c.Regs
	base := rb.ReadOperand(inst.Rn)
	offset, _ := inst.OffsetOperand.Evaluate(rb, false)

	var effective uint32
	if inst.Up {
		effective = base + offset
	} else {
		effective = base - offset
	}

	addr := base
	if inst.Pre {
		addr = effective
	}

	branched := false
	if inst.Load {
		value, err := c.loadTransferValue(addr, inst)
		if err != nil {
			return ExecResult{}, err
		}
		if inst.ForceUserBank {
			rb.WriteWithMode(inst.Rd, ModeUser, value)
		} else {
			rb.Write(inst.Rd, value)
		}
		if inst.Rd == PC {
			rb.SetPC(value &^ 0x3)
			branched = true
		}
	} else {
		var value uint32
		if inst.ForceUserBank {
			value = rb.ReadWithMode(inst.Rd, ModeUser)
		} else {
			value = rb.ReadOperand(inst.Rd)
		}
		if inst.Rd == PC {
			value += 4
		}
		if err := c.storeTransferValue(addr, inst, value); err != nil {
			return ExecResult{}, err
		}
	}

	baseLoaded := inst.Load && inst.Rd == inst.Rn
	if (!inst.Pre || inst.WriteBack) && !baseLoaded {
		if inst.ForceUserBank {
			rb.WriteWithMode(inst.Rn, ModeUser, effective)
		} else {
			rb.Write(inst.Rn, effective)
		}
	}

	return ExecResult{Branched: branched}, nil
}

func (c *Core) loadTransferValue(addr uint32, inst *Instruction) (uint32, error) {
	switch {
	case inst.Halfword && inst.Byte && inst.SignExtend: // LDRSB
		v, err := c.Mem.ReadByte(addr)
		if err != nil {
			return 0, err
		}
		return uint32(int32(int8(v))), nil
	case inst.Halfword && inst.SignExtend: // LDRSH
		v, err := c.Mem.ReadHalf(addr)
		if err != nil {
			return 0, err
		}
		return uint32(int32(int16(v))), nil
	case inst.Halfword: // LDRH
		v, err := c.Mem.ReadHalf(addr)
		if err != nil {
			return 0, err
		}
		return uint32(v), nil
	case inst.Byte: // LDRB
		v, err := c.Mem.ReadByte(addr)
		if err != nil {
			return 0, err
		}
		return uint32(v), nil
	default: // LDR
		return c.Mem.ReadWordRotated(addr)
	}
}

func (c *Core) storeTransferValue(addr uint32, inst *Instruction, value uint32) error {
	switch {
	case inst.Halfword:
		return c.Mem.WriteHalf(addr, uint16(value))
	case inst.Byte:
		return c.Mem.WriteByte(addr, byte(value))
	default:
		return c.Mem.WriteWord(addr, value)
	}
}

// execSwap implements SWP/SWPB: load the old memory value, then store
// Rm, as two sequential bus cycles (spec.md §4.7). The single-threaded
// core makes true atomicity moot, but the read-before-write order is
// preserved so Rd never observes its own store.
func (c *Core) execSwap(inst *Instruction) (ExecResult, error) {
	rb := c.Regs
	addr := rb.ReadOperand(inst.Rn)
	source := rb.ReadOperand(inst.Rm)

	if inst.SwapByte {
		old, err := c.Mem.ReadByte(addr)
		if err != nil {
			return ExecResult{}, err
		}
		if err := c.Mem.WriteByte(addr, byte(source)); err != nil {
			return ExecResult{}, err
		}
		rb.Write(inst.Rd, uint32(old))
		return ExecResult{}, nil
	}

	old, err := c.Mem.ReadWordRotated(addr)
	if err != nil {
		return ExecResult{}, err
	}
	if err := c.Mem.WriteWord(addr, source); err != nil {
		return ExecResult{}, err
	}
	rb.Write(inst.Rd, old)
	return ExecResult{}, nil
}
