package vm

// execMultiply implements MUL and MLA (spec.md §4.7, §9 Supplemented
// Features: UMULL/UMLAL/SMULL/SMLAL are decoded as OpNotImplemented and
// never reach here). Carry and overflow are left unchanged: the ARMv4T
// architecture reference marks C as unpredictable for these opcodes and
// V as unaffected, so doing nothing is the conservative, spec-compliant
// choice.
func (c *Core) execMultiply(inst *Instruction) (ExecResult, error) {
	rb := c.Regs
	rm := rb.Read(inst.Rm)
	rs := rb.Read(inst.Rs)
	result := rm * rs
	if inst.MulAccumulate {
		result += rb.Read(inst.Rn)
	}
	rb.Write(inst.Rd, result)

	if inst.SetFlags {
		cpsr := rb.CPSR()
		cpsr.UpdateNZ(result)
		rb.SetCPSR(cpsr)
	}
	return ExecResult{}, nil
}
