package vm

// SoftwareInterruptVector is the fixed ARMv4T exception entry address for
// SWI (spec.md §4.7).
const SoftwareInterruptVector = 0x00000008

// execSWI implements SWI/SWI-as-SVC: snapshot CPSR into SPSR_svc, switch
// to Supervisor mode and ARM state with IRQ disabled, set LR_svc to the
// return address, and redirect fetch to the SWI vector (spec.md §4.7).
// SWIComment is preserved on the Instruction for a host shell to inspect
// (e.g. dispatching on the BIOS call number); the core itself does not
// interpret it.
func (c *Core) execSWI(inst *Instruction) (ExecResult, error) {
	rb := c.Regs
	old := rb.CPSR()

	returnAddr := inst.Address + 4
	if inst.Mode == Thumb {
		returnAddr = inst.Address + 2
	}

	rb.SetSPSRForMode(ModeSupervisor, old)

	next := old
	next.ProcessorMode = ModeSupervisor
	next.InstructionMode = Arm
	next.IRQDisable = true
	rb.SetCPSR(next)

	rb.WriteWithMode(LR, ModeSupervisor, returnAddr)
	rb.SetPC(SoftwareInterruptVector)

	return ExecResult{Branched: true}, nil
}
