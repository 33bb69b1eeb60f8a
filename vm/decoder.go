package vm

// Decode classifies one fetched instruction word. For Thumb mode only the
// low 16 bits of word are significant; callers fetch a halfword and widen
// it into word themselves (pipeline.go).
func Decode(word, address uint32, mode InstructionMode) *Instruction {
	if mode == Thumb {
		return decodeThumb(uint16(word), address)
	}
	return decodeARM(word, address)
}
