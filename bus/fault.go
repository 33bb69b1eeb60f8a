package bus

import "fmt"

// FaultKind enumerates the bus-boundary error kinds named in spec.md §7.
type FaultKind int

const (
	FaultInvalidRegion FaultKind = iota
)

// Fault is the error type bus accesses return; it propagates out of
// Machine.Tick unchanged (spec.md §7 policy: decoder/bus errors bubble out
// and halt the run loop).
type Fault struct {
	Kind    FaultKind
	Address uint32
	Detail  string
}

func (f *Fault) Error() string {
	switch f.Kind {
	case FaultInvalidRegion:
		if f.Detail != "" {
			return fmt.Sprintf("invalid region at 0x%08X: %s", f.Address, f.Detail)
		}
		return fmt.Sprintf("invalid region at 0x%08X", f.Address)
	}
	return fmt.Sprintf("bus fault at 0x%08X", f.Address)
}

// InvalidRegion builds the fault the bus returns for an unmapped address,
// a write to a read-only device, or a write to an unrecognized I/O
// sub-address (spec.md §7).
func InvalidRegion(addr uint32, detail string) *Fault {
	return &Fault{Kind: FaultInvalidRegion, Address: addr, Detail: detail}
}
