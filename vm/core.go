package vm

// Core bundles the banked register file and a memory bus behind a single
// execute entry point. Nothing here is safe for concurrent use by
// itself; Machine (machine.go) is the one place that adds the mutex
// spec.md §5 requires.
type Core struct {
	Regs *RegisterBank
	Mem  Memory
}

// NewCore returns a Core with a freshly reset register bank over mem.
func NewCore(mem Memory) *Core {
	return &Core{Regs: NewRegisterBank(), Mem: mem}
}

// ExecResult reports side effects the pipeline needs to know about:
// whether control flow changed (requiring a fetch/decode flush). A change
// of processor mode is not reported separately.
type ExecResult struct {
	Branched bool
}

// Execute runs one decoded instruction to completion. Condition failure
// is a true no-op: no flags, registers, or memory change (spec.md §4.8).
//
// Before dispatch, base[PC] is staged to inst.Address plus the chosen
// pipeline bias (8 for ARM, 4 for Thumb) so that any instruction reading
// R15 as an operand sees the architectural "current instruction + 8/4"
// value, without the pipeline needing to actually run two stages ahead
// (spec.md §9 Open Questions). Branch-family executors overwrite
// base[PC] with the real target via SetPC as their last step; the
// pipeline driving Execute reads it back afterward to know where to
// resume fetching.
func (c *Core) Execute(inst *Instruction) (ExecResult, error) {
	if !c.Regs.CPSR().Evaluate(inst.Cond) {
		return ExecResult{}, nil
	}

	bias := uint32(8)
	if inst.Mode == Thumb {
		bias = 4
	}
	c.Regs.SetPC(inst.Address + bias)

	switch inst.Op {
	case OpDataProcessing:
		return c.execDataProcessing(inst)
	case OpMultiply:
		return c.execMultiply(inst)
	case OpBranch:
		return c.execBranch(inst)
	case OpBranchExchange:
		return c.execBranchExchange(inst)
	case OpLongBranchLinkLow:
		return c.execLongBranchLinkLow(inst)
	case OpLongBranchLinkHigh:
		return c.execLongBranchLinkHigh(inst)
	case OpSingleDataTransfer:
		return c.execSingleDataTransfer(inst)
	case OpBlockDataTransfer:
		return c.execBlockDataTransfer(inst)
	case OpPSRTransferMRS:
		return c.execMRS(inst)
	case OpPSRTransferMSR:
		return c.execMSR(inst)
	case OpSingleDataSwap:
		return c.execSwap(inst)
	case OpSoftwareInterrupt:
		return c.execSWI(inst)
	default:
		return ExecResult{}, &OpcodeNotImplementedError{Raw: inst.Raw, Mode: inst.Mode}
	}
}
