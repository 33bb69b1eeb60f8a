package vm

// Bit-field constants shared by the decoder and executor. Mirrors the ARM
// instruction encoding layout; kept separate from per-instruction-family
// files so the same shifts are never redefined twice.
const (
	Mask1Bit  = 0x1
	Mask2Bit  = 0x3
	Mask3Bit  = 0x7
	Mask4Bit  = 0xF
	Mask5Bit  = 0x1F
	Mask8Bit  = 0xFF
	Mask32Bit = 0xFFFFFFFF

	BitsInWord  = 32
	SignBitPos  = 31
	SignBitMask = 1 << SignBitPos

	ConditionShift = 28
	IBitShift      = 25 // data processing: 1 = immediate operand2
	OpcodeShift    = 21
	SBitShift      = 20

	RnShift = 16
	RdShift = 12
	RsShift = 8

	ShiftTypePos    = 5
	ShiftAmountPos  = 7
	RotationShift   = 8
	RotationMask    = 0xF
	RotationMultiplier = 2

	// single data transfer / block transfer field positions
	PBitShift = 24
	UBitShift = 23
	BBitShift = 22
	WBitShift = 21
	LBitShift = 20

	Bits27_25Shift = 25
	Bit7Pos        = 7
	Bit4Pos        = 4

	Offset12BitMask        = 0xFFF
	HalfwordHighShift      = 8
	HalfwordOffsetHighMask = 0xF
	HalfwordOffsetLowMask  = 0xF
	HalfwordLowShift       = 4
	HalfwordValueMask      = 0xFFFF
	ByteValueMask          = 0xFF

	ImmediateValueMask = 0xFF

	PCRegister = 15
)

// DefaultMaxCycles bounds a Run() call that supplies no explicit budget.
const DefaultMaxCycles = 1_000_000

// DefaultLogCapacity is a capacity for an instruction-address history. No
// code in this module keeps such a history or reads this constant.
const DefaultLogCapacity = 4096
