package vm_test

import (
	"testing"

	"github.com/pocketsilicon/armv4t-core/vm"
)

func TestExecBranchOffsetFromBiasedPC(t *testing.T) {
	c := newTestCore()
	// B with PC-visible-as-current+8 landing 8 bytes back, starting at 0x108.
	inst := &vm.Instruction{
		Op: vm.OpBranch, Cond: vm.CondAL, Mode: vm.Arm,
		Address: 0x100, BranchOffset: -8,
	}
	result, err := c.Execute(inst)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.Branched {
		t.Error("B should report Branched")
	}
	if got := c.Regs.PCValue(); got != 0x100 {
		t.Errorf("PC = %#x, want 0x100 (0x108 - 8)", got)
	}
}

func TestExecBranchLinkSetsLR(t *testing.T) {
	c := newTestCore()
	inst := &vm.Instruction{
		Op: vm.OpBranch, Cond: vm.CondAL, Mode: vm.Arm,
		Address: 0x200, BranchOffset: 0x10, Link: true,
	}
	if _, err := c.Execute(inst); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := c.Regs.Read(vm.LR); got != 0x204 {
		t.Errorf("LR = %#x, want 0x204 (address+4)", got)
	}
}

func TestExecBranchExchangeSwitchesToThumb(t *testing.T) {
	c := newTestCore()
	c.Regs.Write(vm.R0, 0x1001)
	inst := &vm.Instruction{Op: vm.OpBranchExchange, Cond: vm.CondAL, Mode: vm.Arm, Rm: vm.R0}
	result, err := c.Execute(inst)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.Branched {
		t.Error("BX should report Branched")
	}
	if got := c.Regs.PCValue(); got != 0x1000 {
		t.Errorf("PC = %#x, want 0x1000", got)
	}
	if c.Regs.CPSR().InstructionMode != vm.Thumb {
		t.Error("BX with an odd target should switch to Thumb")
	}
}

func TestExecBranchExchangeStaysARMOnEvenTarget(t *testing.T) {
	c := newTestCore()
	c.Regs.Write(vm.R0, 0x2000)
	inst := &vm.Instruction{Op: vm.OpBranchExchange, Cond: vm.CondAL, Mode: vm.Arm, Rm: vm.R0}
	if _, err := c.Execute(inst); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if c.Regs.CPSR().InstructionMode != vm.Arm {
		t.Error("BX with an even target should stay in ARM mode")
	}
}

func TestExecLongBranchLinkRoundTrip(t *testing.T) {
	c := newTestCore()
	low := &vm.Instruction{
		Op: vm.OpLongBranchLinkLow, Cond: vm.CondAL, Mode: vm.Thumb,
		Address: 0x1000, ThumbHighOffset: 0x2000,
	}
	if _, err := c.Execute(low); err != nil {
		t.Fatalf("Execute low: %v", err)
	}
	// base (biased +4) = 0x1004; LR should now hold 0x1004+0x2000.
	if got := c.Regs.Read(vm.LR); got != 0x3004 {
		t.Errorf("LR after low half = %#x, want 0x3004", got)
	}

	high := &vm.Instruction{
		Op: vm.OpLongBranchLinkHigh, Cond: vm.CondAL, Mode: vm.Thumb,
		Address: 0x1002, ThumbLowOffset: 0x10, NextHalfAddr: 0x1004,
	}
	result, err := c.Execute(high)
	if err != nil {
		t.Fatalf("Execute high: %v", err)
	}
	if !result.Branched {
		t.Error("high half should report Branched")
	}
	if got := c.Regs.PCValue(); got != 0x3014 {
		t.Errorf("PC = %#x, want 0x3014", got)
	}
	if got := c.Regs.Read(vm.LR); got != 0x1005 {
		t.Errorf("LR after high half = %#x, want 0x1005 (return addr | thumb bit)", got)
	}
}
