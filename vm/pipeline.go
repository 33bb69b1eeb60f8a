package vm

// fetchedWord is the raw output of the fetch stage, queued for decode.
type fetchedWord struct {
	word uint32
	addr uint32
	mode InstructionMode
}

// Pipeline drives Core through an explicit three-stage fetch/decode/
// execute loop (spec.md §4.9): each Step fetches the word at the current
// program counter, decodes whatever the previous Step fetched, and
// executes whatever the previous Step decoded. A taken branch or mode
// change flushes both queued stages (spec.md §9 "three-stage pipeline
// with explicit flush"), so the two instructions after a branch are
// never executed.
type Pipeline struct {
	core    *Core
	fetchPC uint32

	fetch  *fetchedWord
	decode *Instruction
}

// NewPipeline returns an empty pipeline that will begin fetching from
// startPC on the first Step.
func NewPipeline(core *Core, startPC uint32) *Pipeline {
	return &Pipeline{core: core, fetchPC: startPC}
}

// Flush discards both queued pipeline stages and resets the fetch
// pointer, used after a taken branch, mode switch, or reset.
func (p *Pipeline) Flush(pc uint32) {
	p.fetchPC = pc
	p.fetch = nil
	p.decode = nil
}

// FetchPC reports the address the next Step will fetch from.
func (p *Pipeline) FetchPC() uint32 { return p.fetchPC }

// Step advances the pipeline by one cycle and returns the outcome of
// whatever instruction was in the execute stage (the zero ExecResult if
// the pipeline was still filling).
func (p *Pipeline) Step() (ExecResult, error) {
	var result ExecResult
	var err error

	if p.decode != nil {
		inst := p.decode
		result, err = p.core.Execute(inst)
		if err != nil {
			p.Flush(inst.Address)
			return result, err
		}
		if result.Branched {
			p.Flush(p.core.Regs.PCValue())
			return result, nil
		}
	}

	nextDecode, decodeErr := p.advanceDecode()
	if decodeErr != nil {
		return result, decodeErr
	}

	mode := p.core.Regs.CPSR().InstructionMode
	nextFetch, fetchErr := p.fetchAt(p.fetchPC, mode)
	if fetchErr != nil {
		return result, fetchErr
	}
	if mode == Thumb {
		p.fetchPC += 2
	} else {
		p.fetchPC += 4
	}

	p.decode = nextDecode
	p.fetch = nextFetch
	return result, nil
}

func (p *Pipeline) advanceDecode() (*Instruction, error) {
	if p.fetch == nil {
		return nil, nil
	}
	return Decode(p.fetch.word, p.fetch.addr, p.fetch.mode), nil
}

func (p *Pipeline) fetchAt(addr uint32, mode InstructionMode) (*fetchedWord, error) {
	if mode == Thumb {
		half, err := p.core.Mem.ReadHalf(addr)
		if err != nil {
			return nil, err
		}
		return &fetchedWord{word: uint32(half), addr: addr, mode: mode}, nil
	}
	word, err := p.core.Mem.ReadWord(addr)
	if err != nil {
		return nil, err
	}
	return &fetchedWord{word: word, addr: addr, mode: mode}, nil
}
