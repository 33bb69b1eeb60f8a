// Command armcore runs an ARMv4T core against a BIOS image and optional
// ROM image for a fixed cycle budget.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pocketsilicon/armv4t-core/config"
	"github.com/pocketsilicon/armv4t-core/vm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "armcore:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cycles   uint64
		biosPath string
		romPath  string
	)
	flag.Uint64Var(&cycles, "cycles", 0, "cap emulation to N cycles (0 uses the configured default)")
	flag.StringVar(&biosPath, "bios", "", "path to a 16 KiB BIOS image")
	flag.StringVar(&romPath, "rom", "", "path to a ROM image loaded into external WRAM")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if biosPath == "" {
		biosPath = cfg.Execution.BiosPath
	}
	if biosPath == "" {
		return fmt.Errorf("no bios image given (use --bios or set execution.bios_path)")
	}

	image, err := os.ReadFile(biosPath)
	if err != nil {
		return fmt.Errorf("read bios: %w", err)
	}

	m := vm.New()
	if err := m.SetBios(image); err != nil {
		return fmt.Errorf("set bios: %w", err)
	}

	if romPath != "" {
		rom, err := os.ReadFile(romPath)
		if err != nil {
			return fmt.Errorf("read rom: %w", err)
		}
		if err := loadROM(m, rom); err != nil {
			return fmt.Errorf("load rom: %w", err)
		}
	}

	budget := cfg.Execution.MaxCycles
	if cycles != 0 {
		budget = cycles
	}

	ran, runErr := m.Run(&budget)
	if runErr != nil {
		return &vm.Error{Cycles: ran, Err: runErr}
	}

	fmt.Printf("ran %d cycles\n", ran)
	return nil
}

// loadROM writes rom into external WRAM byte by byte via the bus, the
// same path any other device write takes (spec.md §6 memory map:
// external WRAM starts at 0x08000000).
func loadROM(m *vm.Machine, rom []byte) error {
	const ewramBase = 0x08000000
	b := m.Bus()
	for i, v := range rom {
		if err := b.WriteByte(uint32(ewramBase+i), v); err != nil {
			return err
		}
	}
	return nil
}
