package vm

// execBranch implements B and BL (spec.md §4.7). The target is computed
// from the PC's biased read value, matching the chosen +8/+4 pipeline
// convention (registers.go ReadOperand).
func (c *Core) execBranch(inst *Instruction) (ExecResult, error) {
	rb := c.Regs
	base := rb.ReadOperand(PC)
	target := uint32(int64(base) + int64(inst.BranchOffset))
	if inst.Link {
		rb.Write(LR, inst.Address+4)
	}
	rb.SetPC(target &^ 0x3)
	return ExecResult{Branched: true}, nil
}

// execBranchExchange implements BX: jump to Rm, switching to Thumb mode
// when its low bit is set (spec.md §4.7).
func (c *Core) execBranchExchange(inst *Instruction) (ExecResult, error) {
	rb := c.Regs
	target := rb.ReadOperand(inst.Rm)
	cpsr := rb.CPSR()
	if target&0x1 != 0 {
		cpsr.InstructionMode = Thumb
		rb.SetPC(target &^ 0x1)
	} else {
		cpsr.InstructionMode = Arm
		rb.SetPC(target &^ 0x3)
	}
	rb.SetCPSR(cpsr)
	return ExecResult{Branched: true}, nil
}

// execLongBranchLinkLow implements the first half (H=0) of Thumb's
// two-instruction BL: it only stages an intermediate value into LR and
// never redirects control flow by itself (spec.md §4.6, §9).
func (c *Core) execLongBranchLinkLow(inst *Instruction) (ExecResult, error) {
	rb := c.Regs
	base := rb.ReadOperand(PC)
	rb.Write(LR, uint32(int64(base)+int64(inst.ThumbHighOffset)))
	return ExecResult{}, nil
}

// execLongBranchLinkHigh implements the second half (H=1): it combines
// the staged LR with this half's low-order offset to form the call
// target, and sets LR to the return address with the Thumb bit set
// (spec.md §4.6).
func (c *Core) execLongBranchLinkHigh(inst *Instruction) (ExecResult, error) {
	rb := c.Regs
	target := rb.Read(LR) + inst.ThumbLowOffset
	rb.Write(LR, inst.NextHalfAddr|0x1)
	rb.SetPC(target &^ 0x1)
	return ExecResult{Branched: true}, nil
}
