package vm

// Data-processing opcodes, numbered exactly as the ARM encoding places them
// in bits [24:21] so decodeDataProcessing's raw extraction needs no
// translation table (spec.md §4.7).
const (
	OpAND = iota
	OpEOR
	OpSUB
	OpRSB
	OpADD
	OpADC
	OpSBC
	OpRSC
	OpTST
	OpTEQ
	OpCMP
	OpCMN
	OpORR
	OpMOV
	OpBIC
	OpMVN
)
