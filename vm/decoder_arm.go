package vm

// decodeARM classifies a 32-bit ARM word into a decoded Instruction. Patterns
// are tried in the fixed order spec.md §4.6 requires (later patterns are
// subsets of earlier ones, so order is significant):
//
//  1. BX                 6. SWP
//  2. LDM/STM            7. MUL/MLA/long-multiply (recognized only)
//  3. B/BL               8. halfword transfer
//  4. SWI                9. MRS, then MSR
//  5. LDR/STR           10. data processing (fallback)
func decodeARM(word, address uint32) *Instruction {
	inst := &Instruction{
		Raw:      word,
		Address:  address,
		Mode:     Arm,
		Cond:     ConditionCode((word >> ConditionShift) & Mask4Bit),
		SetFlags: (word>>SBitShift)&Mask1Bit != 0,
	}

	switch {
	case word&0x0FFFFFF0 == 0x012FFF10:
		decodeBranchExchange(inst, word)
	case word&0x0E000000 == 0x08000000:
		decodeBlockDataTransfer(inst, word)
	case word&0x0E000000 == 0x0A000000:
		decodeBranch(inst, word)
	case word&0x0F000000 == 0x0F000000:
		decodeSoftwareInterrupt(inst, word)
	case word&0x0C000000 == 0x04000000:
		decodeSingleDataTransfer(inst, word)
	case word&0x0FB00FF0 == 0x01000090:
		decodeSingleDataSwap(inst, word)
	case word&0x0FC000F0 == 0x00000090, word&0x0F8000F0 == 0x00800090:
		decodeMultiply(inst, word)
	case word&0x0E000090 == 0x00000090:
		decodeHalfwordTransfer(inst, word)
	case word&0x0FBF0FFF == 0x010F0000:
		decodeMRS(inst, word)
	case word&0x0FB000F0 == 0x01200000, word&0x0FB00000 == 0x03200000:
		decodeMSR(inst, word)
	case word&0x0C000000 == 0x00000000:
		decodeDataProcessing(inst, word)
	default:
		inst.Op = OpNotImplemented
	}
	return inst
}

func decodeBranchExchange(inst *Instruction, word uint32) {
	inst.Op = OpBranchExchange
	inst.Rm = int(word & Mask4Bit)
}

func decodeBranch(inst *Instruction, word uint32) {
	inst.Op = OpBranch
	inst.Link = (word>>24)&Mask1Bit != 0
	offset := word & 0x00FFFFFF
	if offset&0x00800000 != 0 {
		offset |= 0xFF000000
	}
	inst.BranchOffset = int32(offset) << 2
}

func decodeSoftwareInterrupt(inst *Instruction, word uint32) {
	inst.Op = OpSoftwareInterrupt
	inst.SWIComment = word & 0x00FFFFFF
}

// decodeOperand2 extracts data-processing/PSR operand-2 from bits [11:0],
// covering both the rotated-immediate and register(-shifted) forms.
func decodeOperand2(word uint32) Operand {
	if (word>>IBitShift)&Mask1Bit != 0 {
		imm8 := word & Mask8Bit
		rot4 := (word >> RotationShift) & Mask4Bit
		// Carry-out of a rotated immediate depends only on its own bits, so
		// precompute it now (it never depends on register state).
		if rot4 == 0 {
			return Operand{Kind: OperandImmediate, Imm: imm8, ImmCarryUnchanged: true}
		}
		value, carry := RotatedImmediate(imm8, rot4, false)
		return Operand{Kind: OperandImmediate, Imm: value, ImmCarry: carry}
	}

	rm := int(word & Mask4Bit)
	shiftType := ShiftType((word >> ShiftTypePos) & Mask2Bit)
	byReg := (word>>4)&Mask1Bit != 0

	if byReg {
		rs := int((word >> RsShift) & Mask4Bit)
		return Operand{Kind: OperandRegisterShifted, Reg: rm, Shift: RegisterShift(shiftType, rs)}
	}

	amount := int((word >> ShiftAmountPos) & Mask5Bit)
	if amount == 0 && shiftType == ShiftLSL {
		return Operand{Kind: OperandRegister, Reg: rm}
	}
	return Operand{Kind: OperandRegisterShifted, Reg: rm, Shift: ImmediateShift(shiftType, amount)}
}

func decodeDataProcessing(inst *Instruction, word uint32) {
	inst.Op = OpDataProcessing
	inst.DPOpcode = int((word >> OpcodeShift) & Mask4Bit)
	inst.Rn = int((word >> RnShift) & Mask4Bit)
	inst.Rd = int((word >> RdShift) & Mask4Bit)
	inst.Operand2 = decodeOperand2(word)
}

func decodeMultiply(inst *Instruction, word uint32) {
	// Long multiply (UMULL/UMLAL/SMULL/SMLAL) is recognized but not
	// implemented, matching the teacher's ARM2 scope (spec.md §4.6 item 7,
	// SPEC_FULL.md Supplemented Features).
	if word&0x0F8000F0 == 0x00800090 {
		inst.Op = OpNotImplemented
		return
	}
	inst.Op = OpMultiply
	inst.Rd = int((word >> RnShift) & Mask4Bit) // destination in bits 19-16
	inst.Rn = int((word >> RdShift) & Mask4Bit) // accumulate operand in bits 15-12
	inst.Rs = int((word >> RsShift) & Mask4Bit)
	inst.Rm = int(word & Mask4Bit)
	inst.MulAccumulate = (word>>21)&Mask1Bit != 0
}

func decodeSingleDataSwap(inst *Instruction, word uint32) {
	inst.Op = OpSingleDataSwap
	inst.Rn = int((word >> RnShift) & Mask4Bit) // base
	inst.Rd = int((word >> RdShift) & Mask4Bit) // destination
	inst.Rm = int(word & Mask4Bit)              // source
	inst.SwapByte = (word>>BBitShift)&Mask1Bit != 0
}

func decodeSingleDataTransfer(inst *Instruction, word uint32) {
	inst.Op = OpSingleDataTransfer
	inst.Load = (word>>LBitShift)&Mask1Bit != 0
	inst.Byte = (word>>BBitShift)&Mask1Bit != 0
	inst.WriteBack = (word>>WBitShift)&Mask1Bit != 0
	inst.Pre = (word>>PBitShift)&Mask1Bit != 0
	inst.Up = (word>>UBitShift)&Mask1Bit != 0
	inst.Rn = int((word >> RnShift) & Mask4Bit)
	inst.Rd = int((word >> RdShift) & Mask4Bit)
	// Post-indexed with the W bit set uses user-mode banks regardless of
	// current mode (spec.md §4.7).
	inst.ForceUserBank = !inst.Pre && inst.WriteBack

	immediate := (word>>IBitShift)&Mask1Bit == 0
	if immediate {
		inst.OffsetOperand = Operand{Kind: OperandImmediate, Imm: word & Offset12BitMask}
		return
	}
	rm := int(word & Mask4Bit)
	shiftType := ShiftType((word >> ShiftTypePos) & Mask2Bit)
	amount := int((word >> ShiftAmountPos) & Mask5Bit)
	inst.OffsetOperand = Operand{Kind: OperandRegisterShifted, Reg: rm, Shift: ImmediateShift(shiftType, amount)}
}

func decodeHalfwordTransfer(inst *Instruction, word uint32) {
	inst.Op = OpSingleDataTransfer
	inst.Halfword = true
	inst.Load = (word>>LBitShift)&Mask1Bit != 0
	inst.WriteBack = (word>>WBitShift)&Mask1Bit != 0
	inst.Pre = (word>>PBitShift)&Mask1Bit != 0
	inst.Up = (word>>UBitShift)&Mask1Bit != 0
	inst.Rn = int((word >> RnShift) & Mask4Bit)
	inst.Rd = int((word >> RdShift) & Mask4Bit)
	inst.ForceUserBank = !inst.Pre && inst.WriteBack

	sh := (word >> 5) & Mask2Bit // 01=halfword, 10=signed byte, 11=signed halfword
	inst.SignExtend = sh&0x2 != 0
	if sh == 0x2 {
		inst.Byte = true // signed byte load (LDRSB)
	}

	immediate := (word>>BBitShift)&Mask1Bit != 0
	if immediate {
		hi := (word >> HalfwordHighShift) & HalfwordOffsetHighMask
		lo := word & HalfwordOffsetLowMask
		inst.OffsetOperand = Operand{Kind: OperandImmediate, Imm: (hi << HalfwordLowShift) | lo}
	} else {
		inst.OffsetOperand = Operand{Kind: OperandRegister, Reg: int(word & Mask4Bit)}
	}
}

func decodeBlockDataTransfer(inst *Instruction, word uint32) {
	inst.Op = OpBlockDataTransfer
	inst.Load = (word>>LBitShift)&Mask1Bit != 0
	inst.WriteBack = (word>>WBitShift)&Mask1Bit != 0
	inst.ForcePSR = (word>>BBitShift)&Mask1Bit != 0 // S bit reuses the B-bit position
	up := (word>>UBitShift)&Mask1Bit != 0
	pre := (word>>PBitShift)&Mask1Bit != 0
	inst.Rn = int((word >> RnShift) & Mask4Bit)
	inst.RegList = uint16(word & 0xFFFF)

	switch {
	case up && !pre:
		inst.Block = BlockIA
	case up && pre:
		inst.Block = BlockIB
	case !up && !pre:
		inst.Block = BlockDA
	default:
		inst.Block = BlockDB
	}
}

func decodeMRS(inst *Instruction, word uint32) {
	inst.Op = OpPSRTransferMRS
	inst.Rd = int((word >> RdShift) & Mask4Bit)
	inst.UseSPSR = (word>>BBitShift)&Mask1Bit != 0
}

func decodeMSR(inst *Instruction, word uint32) {
	inst.Op = OpPSRTransferMSR
	inst.UseSPSR = (word>>BBitShift)&Mask1Bit != 0
	inst.WriteFlags = (word>>19)&Mask1Bit != 0
	inst.WriteControl = (word>>16)&Mask1Bit != 0

	if (word>>IBitShift)&Mask1Bit != 0 {
		imm8 := word & Mask8Bit
		rot4 := (word >> RotationShift) & Mask4Bit
		value, _ := RotatedImmediate(imm8, rot4, false)
		inst.PSRSource = Operand{Kind: OperandImmediate, Imm: value}
	} else {
		inst.PSRSource = Operand{Kind: OperandRegister, Reg: int(word & Mask4Bit)}
	}
}
