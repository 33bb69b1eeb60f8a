package vm_test

import (
	"testing"

	"github.com/pocketsilicon/armv4t-core/vm"
)

func TestExecSWIEntrySequence(t *testing.T) {
	c := newTestCore()
	entryCPSR := c.Regs.CPSR()
	entryCPSR.Signed = true
	c.Regs.SetCPSR(entryCPSR)

	inst := &vm.Instruction{
		Op: vm.OpSoftwareInterrupt, Cond: vm.CondAL, Mode: vm.Arm,
		Address: 0x1000, SWIComment: 0x12,
	}
	result, err := c.Execute(inst)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.Branched {
		t.Error("SWI should report Branched")
	}
	if got := c.Regs.PCValue(); got != vm.SoftwareInterruptVector {
		t.Errorf("PC = %#x, want %#x", got, vm.SoftwareInterruptVector)
	}
	cpsr := c.Regs.CPSR()
	if cpsr.ProcessorMode != vm.ModeSupervisor {
		t.Errorf("CPSR.mode = %v, want Supervisor", cpsr.ProcessorMode)
	}
	if !cpsr.IRQDisable {
		t.Error("CPSR.I should be set on SWI entry")
	}
	if got := c.Regs.ReadWithMode(vm.LR, vm.ModeSupervisor); got != 0x1004 {
		t.Errorf("LR_svc = %#x, want 0x1004 (address+4)", got)
	}
	spsr := c.Regs.SPSRForMode(vm.ModeSupervisor)
	if !spsr.Signed {
		t.Error("SPSR_svc should be a snapshot of the entry CPSR (N was set)")
	}
}

func TestExecSWIThumbReturnAddress(t *testing.T) {
	c := newTestCore()
	inst := &vm.Instruction{
		Op: vm.OpSoftwareInterrupt, Cond: vm.CondAL, Mode: vm.Thumb,
		Address: 0x2000,
	}
	if _, err := c.Execute(inst); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := c.Regs.ReadWithMode(vm.LR, vm.ModeSupervisor); got != 0x2002 {
		t.Errorf("LR_svc = %#x, want 0x2002 (address+2 for Thumb)", got)
	}
}
