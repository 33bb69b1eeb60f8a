package vm

// execMRS implements MRS: copy CPSR or the current SPSR into Rd
// (spec.md §4.7).
func (c *Core) execMRS(inst *Instruction) (ExecResult, error) {
	rb := c.Regs
	if inst.UseSPSR {
		rb.Write(inst.Rd, rb.SPSR().Pack())
	} else {
		rb.Write(inst.Rd, rb.CPSR().Pack())
	}
	return ExecResult{}, nil
}

// execMSR implements MSR: merge the write_flags/write_control masked
// bits of an immediate or register source into CPSR or the current SPSR
// (spec.md §4.7). Writing the T bit here does not itself flush the
// pipeline; only BX and exception entry/return change InstructionMode in
// a way that redirects fetch.
func (c *Core) execMSR(inst *Instruction) (ExecResult, error) {
	rb := c.Regs
	src, _ := inst.PSRSource.Evaluate(rb, false)
	if inst.UseSPSR {
		rb.SetSPSR(rb.SPSR().ApplyMSR(src, inst.WriteFlags, inst.WriteControl))
	} else {
		rb.SetCPSR(rb.CPSR().ApplyMSR(src, inst.WriteFlags, inst.WriteControl))
	}
	return ExecResult{}, nil
}
