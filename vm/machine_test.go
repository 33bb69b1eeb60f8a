package vm_test

import (
	"testing"

	"github.com/pocketsilicon/armv4t-core/vm"
)

func biosImageWithWords(words ...uint32) []byte {
	image := make([]byte, 16*1024)
	for i, w := range words {
		off := i * 4
		image[off] = byte(w)
		image[off+1] = byte(w >> 8)
		image[off+2] = byte(w >> 16)
		image[off+3] = byte(w >> 24)
	}
	return image
}

func TestMachineRunsMovFromBIOS(t *testing.T) {
	m := vm.New()
	// mov r0, #5 at the reset vector.
	if err := m.SetBios(biosImageWithWords(0xE3A00005)); err != nil {
		t.Fatalf("SetBios: %v", err)
	}
	budget := uint64(3)
	if _, err := m.Run(&budget); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := m.Registers().R[vm.R0]; got != 5 {
		t.Errorf("R0 = %d, want 5", got)
	}
}

func TestMachineSetBiosRejectsWrongSize(t *testing.T) {
	m := vm.New()
	if err := m.SetBios(make([]byte, 10)); err == nil {
		t.Error("expected SetBios to reject a non-16KiB image")
	}
}

func TestMachineResetZeroesStateAndCycles(t *testing.T) {
	m := vm.New()
	if err := m.SetBios(biosImageWithWords(0xE3A00005)); err != nil {
		t.Fatalf("SetBios: %v", err)
	}
	budget := uint64(3)
	if _, err := m.Run(&budget); err != nil {
		t.Fatalf("Run: %v", err)
	}
	m.Reset()
	if m.Cycles() != 0 {
		t.Errorf("Cycles() after Reset = %d, want 0", m.Cycles())
	}
	if got := m.Registers().R[vm.R0]; got != 0 {
		t.Errorf("R0 after Reset = %d, want 0", got)
	}
}

func TestMachineTickCountsOneCycle(t *testing.T) {
	m := vm.New()
	if err := m.SetBios(biosImageWithWords(0xE3A00005)); err != nil {
		t.Fatalf("SetBios: %v", err)
	}
	n, err := m.Tick()
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if n != 1 {
		t.Errorf("Tick returned %d, want 1", n)
	}
}

func TestMachineBlockTransferScenario(t *testing.T) {
	m := vm.New()
	// mov sp, #0x03000000 ; mov r0,#10 ; mov r1,#20 ; mov r2,#30 ; mov r3,#40 ;
	// stmia sp!, {r0-r3}
	if err := m.SetBios(biosImageWithWords(
		0xE3A0D403, // mov sp, #0x03000000 (imm8=0x03 ror 8), on-chip WRAM
		0xE3A0000A, // mov r0, #10
		0xE3A01014, // mov r1, #20
		0xE3A0201E, // mov r2, #30
		0xE3A03028, // mov r3, #40
		0xE8AD000F, // stmia sp!, {r0-r3}
	)); err != nil {
		t.Fatalf("SetBios: %v", err)
	}
	budget := uint64(30)
	if _, err := m.Run(&budget); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []uint32{10, 20, 30, 40}
	for i, w := range want {
		v, err := m.Bus().ReadWord(0x03000000 + uint32(i)*4)
		if err != nil || v != w {
			t.Errorf("word %d at 0x03000000 = %d, want %d (err=%v)", i, v, w, err)
		}
	}
}

func TestMachineSWIScenario(t *testing.T) {
	m := vm.New()
	// swi 0x12 at the reset vector.
	if err := m.SetBios(biosImageWithWords(0xEF000012)); err != nil {
		t.Fatalf("SetBios: %v", err)
	}
	budget := uint64(3)
	if _, err := m.Run(&budget); err != nil {
		t.Fatalf("Run: %v", err)
	}
	snap := m.Registers()
	if snap.R[vm.PC] != vm.SoftwareInterruptVector {
		t.Errorf("PC = %#x, want %#x", snap.R[vm.PC], vm.SoftwareInterruptVector)
	}
	if snap.CPSR.ProcessorMode != vm.ModeSupervisor {
		t.Errorf("CPSR.mode = %v, want Supervisor", snap.CPSR.ProcessorMode)
	}
	if !snap.CPSR.IRQDisable {
		t.Error("CPSR.I should be set after SWI entry")
	}
}
