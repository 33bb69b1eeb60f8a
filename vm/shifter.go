package vm

// ShiftType is one of the four barrel-shifter operations (spec.md §3).
type ShiftType int

const (
	ShiftLSL ShiftType = iota
	ShiftLSR
	ShiftASR
	ShiftROR
)

// Shift describes an operand-2 shift specifier: either an immediate amount
// baked into the instruction or an amount taken from a register's low 8
// bits, qualified by a ShiftType.
type Shift struct {
	Type        ShiftType
	Amount      int  // used when !ByRegister
	RegAmount   int  // register index, used when ByRegister
	ByRegister  bool
	encodedZero bool // true when the immediate encoding used amount==0 (LSR/ASR mean 32, ROR means RRX)
}

// ImmediateShift builds a Shift for the instruction-encoded-amount form.
// encodedAmount is the raw 5-bit field; ARM gives LSR/ASR #0 the meaning
// "#32" and ROR #0 the meaning RRX (spec.md §4.3).
func ImmediateShift(t ShiftType, encodedAmount int) Shift {
	return Shift{Type: t, Amount: encodedAmount, encodedZero: encodedAmount == 0}
}

// RegisterShift builds a Shift whose amount comes from the low 8 bits of
// register rs at evaluation time.
func RegisterShift(t ShiftType, rs int) Shift {
	return Shift{Type: t, RegAmount: rs, ByRegister: true}
}

// Evaluate computes (value, shifter_carry) for operand2Value shifted by
// this specifier, reading the register file only if the amount comes from
// a register. carryIn is CPSR.C, needed by LSL/ROR #0 and RRX.
func (s Shift) Evaluate(rb *RegisterBank, operand2Value uint32, carryIn bool) (uint32, bool) {
	amount := s.Amount
	if s.ByRegister {
		amount = int(rb.ReadOperand(s.RegAmount) & Mask8Bit)
		return shiftRegisterAmount(s.Type, operand2Value, amount, carryIn)
	}
	if s.Type == ShiftROR && s.encodedZero {
		return rrx(operand2Value, carryIn)
	}
	return shiftImmediateAmount(s.Type, operand2Value, amount, carryIn)
}

// shiftImmediateAmount implements the encoded-amount rules of spec.md
// §4.3: LSR/ASR #0 behave as #32; LSL #0 is a no-op that preserves carry.
func shiftImmediateAmount(t ShiftType, value uint32, amount int, carryIn bool) (uint32, bool) {
	switch t {
	case ShiftLSL:
		if amount == 0 {
			return value, carryIn
		}
		return shiftLeft(value, amount)
	case ShiftLSR:
		if amount == 0 {
			amount = 32
		}
		return shiftRightLogical(value, amount)
	case ShiftASR:
		if amount == 0 {
			amount = 32
		}
		return shiftRightArithmetic(value, amount)
	case ShiftROR:
		return rotateRight(value, amount%32, carryIn)
	}
	return value, carryIn
}

// shiftRegisterAmount implements the register-specified-amount rules:
// amount 0 is a true no-op (not "#32"), and amounts >= 32 collapse per
// spec.md §4.3 boundary rules.
func shiftRegisterAmount(t ShiftType, value uint32, amount int, carryIn bool) (uint32, bool) {
	if amount == 0 {
		return value, carryIn
	}
	switch t {
	case ShiftLSL:
		return shiftLeft(value, amount)
	case ShiftLSR:
		return shiftRightLogical(value, amount)
	case ShiftASR:
		return shiftRightArithmetic(value, amount)
	case ShiftROR:
		return rotateRight(value, amount%32, carryIn)
	}
	return value, carryIn
}

func shiftLeft(value uint32, amount int) (uint32, bool) {
	if amount > 32 {
		return 0, false
	}
	if amount == 32 {
		return 0, value&1 != 0
	}
	carry := value&(1<<(32-amount)) != 0
	return value << uint(amount), carry
}

func shiftRightLogical(value uint32, amount int) (uint32, bool) {
	if amount > 32 {
		return 0, false
	}
	if amount == 32 {
		return 0, value&SignBitMask != 0
	}
	carry := value&(1<<(amount-1)) != 0
	return value >> uint(amount), carry
}

func shiftRightArithmetic(value uint32, amount int) (uint32, bool) {
	signed := value&SignBitMask != 0
	if amount >= 32 {
		if signed {
			return Mask32Bit, true
		}
		return 0, false
	}
	carry := value&(1<<(amount-1)) != 0
	result := value >> uint(amount)
	if signed {
		result |= uint32(Mask32Bit) << uint(32-amount)
	}
	return result, carry
}

func rotateRight(value uint32, amount int, carryIn bool) (uint32, bool) {
	if amount == 0 {
		return value, carryIn
	}
	result := (value >> uint(amount)) | (value << uint(32-amount))
	carry := result&SignBitMask != 0
	return result, carry
}

// rrx performs ROR #0's RRX special case: rotate right by one through the
// carry flag.
func rrx(value uint32, carryIn bool) (uint32, bool) {
	carryOut := value&1 != 0
	result := value >> 1
	if carryIn {
		result |= SignBitMask
	}
	return result, carryOut
}

// RotatedImmediate computes the data-processing immediate form:
// rotate_right(imm8, 2*rot4). When rot4 is 0 the shifter carry is
// unchanged (spec.md §4.3).
func RotatedImmediate(imm8, rot4 uint32, carryIn bool) (uint32, bool) {
	rotation := (rot4 & Mask4Bit) * RotationMultiplier
	if rotation == 0 {
		return imm8, carryIn
	}
	value, _ := rotateRight(imm8, int(rotation), carryIn)
	return value, value&SignBitMask != 0
}
