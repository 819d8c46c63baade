// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"iter"

	"github.com/ezrec/synacor/cpu"
	"github.com/ezrec/synacor/internal"
	"github.com/ezrec/synacor/io"
)

const (
	DEFAULT_IMAGE = "challenge.bin" // Program image read by the runner.
)

// Emulator state. CPU + program image + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Assembled program listing, if any.

	Rom     io.Rom     // Program image loaded on reset.
	Console io.Console // Console for the in and out opcodes.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	emu.Cpu.SetTerminal(&emu.Console)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.MergeDefines(
		emu.Cpu.Defines(),
		emu.Rom.Defines(),
	)
}

// Reset the emulator state, and load the program image into memory.
// If an assembled Program is set, it replaces the image.
func (emu *Emulator) Reset() (err error) {
	if emu.Program != nil {
		emu.Rom.Data = emu.Program.Binary()
	}

	emu.Console.Rewind()

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Rom.Data)

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return int(emu.Cpu.Pc)
}

// LineNo returns the source line number for the instruction at a PC.
func (emu *Emulator) LineNo(pc int) int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(uint16(pc))
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
// done is set once the program halts.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Pc()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: emu.LineNo(pc), Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
	}

	return
}

// Run ticks the emulator until the program halts, or fails.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
