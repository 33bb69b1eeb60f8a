package vm_test

import (
	"testing"

	"github.com/pocketsilicon/armv4t-core/bus"
	"github.com/pocketsilicon/armv4t-core/vm"
)

func newTestCore() *vm.Core {
	b := bus.New()
	b.Register("wram", 0, 0x10000, bus.NewWRAM(0, 0x10000))
	return vm.NewCore(b)
}

func TestExecDataProcessingADD(t *testing.T) {
	c := newTestCore()
	c.Regs.Write(vm.R1, 10)
	inst := &vm.Instruction{
		Op: vm.OpDataProcessing, Cond: vm.CondAL, DPOpcode: vm.OpADD,
		Rd: vm.R0, Rn: vm.R1, SetFlags: true,
		Operand2: vm.Operand{Kind: vm.OperandImmediate, Imm: 5},
	}
	if _, err := c.Execute(inst); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := c.Regs.Read(vm.R0); got != 15 {
		t.Errorf("R0 = %d, want 15", got)
	}
	if c.Regs.CPSR().Zero {
		t.Error("Z should be clear for a nonzero result")
	}
}

func TestExecDataProcessingSUBSetsCarryAsNoBorrow(t *testing.T) {
	c := newTestCore()
	c.Regs.Write(vm.R1, 5)
	inst := &vm.Instruction{
		Op: vm.OpDataProcessing, Cond: vm.CondAL, DPOpcode: vm.OpSUB,
		Rd: vm.R0, Rn: vm.R1, SetFlags: true,
		Operand2: vm.Operand{Kind: vm.OperandImmediate, Imm: 3},
	}
	if _, err := c.Execute(inst); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := c.Regs.Read(vm.R0); got != 2 {
		t.Errorf("R0 = %d, want 2", got)
	}
	if !c.Regs.CPSR().Carry {
		t.Error("SUB without borrow should set carry")
	}
}

func TestExecDataProcessingSUBBorrowClearsCarry(t *testing.T) {
	c := newTestCore()
	c.Regs.Write(vm.R1, 1)
	inst := &vm.Instruction{
		Op: vm.OpDataProcessing, Cond: vm.CondAL, DPOpcode: vm.OpSUB,
		Rd: vm.R0, Rn: vm.R1, SetFlags: true,
		Operand2: vm.Operand{Kind: vm.OperandImmediate, Imm: 2},
	}
	if _, err := c.Execute(inst); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if c.Regs.CPSR().Carry {
		t.Error("SUB with borrow should clear carry")
	}
}

func TestExecDataProcessingCMPDoesNotWriteRd(t *testing.T) {
	c := newTestCore()
	c.Regs.Write(vm.R0, 99)
	c.Regs.Write(vm.R1, 5)
	inst := &vm.Instruction{
		Op: vm.OpDataProcessing, Cond: vm.CondAL, DPOpcode: vm.OpCMP,
		Rd: vm.R0, Rn: vm.R1, SetFlags: true,
		Operand2: vm.Operand{Kind: vm.OperandImmediate, Imm: 5},
	}
	if _, err := c.Execute(inst); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := c.Regs.Read(vm.R0); got != 99 {
		t.Errorf("CMP must not write Rd, R0 = %d, want 99", got)
	}
	if !c.Regs.CPSR().Zero {
		t.Error("CMP 5,5 should set Z")
	}
}

func TestExecDataProcessingConditionFailsIsNoop(t *testing.T) {
	c := newTestCore()
	c.Regs.Write(vm.R0, 1)
	inst := &vm.Instruction{
		Op: vm.OpDataProcessing, Cond: vm.CondEQ, DPOpcode: vm.OpMOV,
		Rd: vm.R0, SetFlags: true,
		Operand2: vm.Operand{Kind: vm.OperandImmediate, Imm: 0xFF},
	}
	// Z is clear, so EQ fails.
	if _, err := c.Execute(inst); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := c.Regs.Read(vm.R0); got != 1 {
		t.Errorf("condition-failed instruction must be a no-op, R0 = %d", got)
	}
}

func TestExecDataProcessingMOVWithPCOperandSeesBiasedValue(t *testing.T) {
	c := newTestCore()
	inst := &vm.Instruction{
		Op: vm.OpDataProcessing, Cond: vm.CondAL, DPOpcode: vm.OpMOV,
		Rd: vm.R0, Address: 0x100, Mode: vm.Arm,
		Operand2: vm.Operand{Kind: vm.OperandRegister, Reg: vm.PC},
	}
	if _, err := c.Execute(inst); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := c.Regs.Read(vm.R0); got != 0x108 {
		t.Errorf("R0 = %#x, want 0x108 (address+8 ARM bias)", got)
	}
}

func TestExecDataProcessingMOVPCSetsBranched(t *testing.T) {
	c := newTestCore()
	inst := &vm.Instruction{
		Op: vm.OpDataProcessing, Cond: vm.CondAL, DPOpcode: vm.OpMOV,
		Rd: vm.PC, Address: 0x100, Mode: vm.Arm,
		Operand2: vm.Operand{Kind: vm.OperandImmediate, Imm: 0x200},
	}
	result, err := c.Execute(inst)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.Branched {
		t.Error("writing Rd==PC should report Branched")
	}
	if got := c.Regs.PCValue(); got != 0x200 {
		t.Errorf("PC = %#x, want 0x200", got)
	}
}
