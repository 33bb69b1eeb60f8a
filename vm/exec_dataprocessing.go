package vm

// execDataProcessing implements the 16 ALU opcodes (spec.md §4.7). Every
// arithmetic opcode reduces to addWithCarry; every logical opcode takes
// its carry-out from the barrel shifter, not the ALU.
func (c *Core) execDataProcessing(inst *Instruction) (ExecResult, error) {
	rb := c.Regs
	cpsr := rb.CPSR()
	carryIn := cpsr.Carry

	op2, shifterCarry := inst.Operand2.Evaluate(rb, carryIn)
	rn := rb.ReadOperand(inst.Rn)

	var result uint32
	carry, overflow := carryIn, cpsr.Overflow
	logical := false
	compareOnly := false

	switch inst.DPOpcode {
	case OpAND:
		result = rn & op2
		logical = true
	case OpEOR:
		result = rn ^ op2
		logical = true
	case OpORR:
		result = rn | op2
		logical = true
	case OpBIC:
		result = rn &^ op2
		logical = true
	case OpMOV:
		result = op2
		logical = true
	case OpMVN:
		result = ^op2
		logical = true
	case OpADD:
		result, carry, overflow = addWithCarry(rn, op2, false)
	case OpADC:
		result, carry, overflow = addWithCarry(rn, op2, carryIn)
	case OpSUB:
		result, carry, overflow = addWithCarry(rn, ^op2, true)
	case OpSBC:
		result, carry, overflow = addWithCarry(rn, ^op2, carryIn)
	case OpRSB:
		result, carry, overflow = addWithCarry(op2, ^rn, true)
	case OpRSC:
		result, carry, overflow = addWithCarry(op2, ^rn, carryIn)
	case OpTST:
		result = rn & op2
		logical = true
		compareOnly = true
	case OpTEQ:
		result = rn ^ op2
		logical = true
		compareOnly = true
	case OpCMP:
		result, carry, overflow = addWithCarry(rn, ^op2, true)
		compareOnly = true
	case OpCMN:
		result, carry, overflow = addWithCarry(rn, op2, false)
		compareOnly = true
	}

	if logical {
		carry = shifterCarry
	}

	if inst.SetFlags {
		if compareOnly {
			if logical {
				cpsr.UpdateNZC(result, carry)
			} else {
				cpsr.UpdateNZCV(result, carry, overflow)
			}
		} else if inst.Rd == PC {
			// S bit set while writing R15: restore CPSR from SPSR instead of
			// touching flags directly (privileged-mode return idiom).
			cpsr = rb.SPSR()
		} else if logical {
			cpsr.UpdateNZC(result, carry)
		} else {
			cpsr.UpdateNZCV(result, carry, overflow)
		}
		rb.SetCPSR(cpsr)
	}

	if compareOnly {
		return ExecResult{}, nil
	}

	rb.Write(inst.Rd, result)
	if inst.Rd == PC {
		if rb.CPSR().InstructionMode == Thumb {
			rb.SetPC(result &^ 0x1)
		} else {
			rb.SetPC(result &^ 0x3)
		}
		return ExecResult{Branched: true}, nil
	}
	return ExecResult{}, nil
}
