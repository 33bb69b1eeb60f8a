package vm

// Memory is the subset of bus.Bus the executor needs. Kept as a local
// interface (rather than importing package bus directly into every
// executor file) so the core can be driven by any device that honors the
// same little-endian byte/halfword/word contract (spec.md §4.4, §4.9).
type Memory interface {
	ReadByte(addr uint32) (byte, error)
	WriteByte(addr uint32, v byte) error
	ReadHalf(addr uint32) (uint16, error)
	WriteHalf(addr uint32, v uint16) error
	ReadWord(addr uint32) (uint32, error)
	WriteWord(addr uint32, v uint32) error
	ReadWordRotated(addr uint32) (uint32, error)
}
