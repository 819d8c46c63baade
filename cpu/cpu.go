package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/synacor/io"
)

// Terminal is the console attached to the CPU.
type Terminal io.Terminal

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%v", MEMORY_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
	"REGISTER_BASE":  fmt.Sprintf("%v", REGISTER_BASE),
	"MODULUS":        fmt.Sprintf("%v", MODULUS),
	"MAX_VALUE":      fmt.Sprintf("%v", MAX_VALUE),
	"ENTRY_POINT":    fmt.Sprintf("%v", ENTRY_POINT),
}

// Cpu is the complete machine state. Each Cpu is independent; nothing is
// shared between instances.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc       uint16                 // Program counter.
	Halted   bool                   // Set once a terminal state is reached.
	Memory   [MEMORY_SIZE]uint16    // Main memory.
	Register [REGISTER_COUNT]uint16 // Register bank.
	Stack    Stack                  // Stack simulation.

	Ticks int // Instructions executed since reset.

	terminal Terminal
}

// NewCpu creates a new CPU in the reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// SetTerminal attaches the console used by the out and in opcodes.
func (cpu *Cpu) SetTerminal(terminal Terminal) {
	cpu.terminal = terminal
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("% 5s: %04X\n", "pc", cpu.Pc)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %04X\n", fmt.Sprintf("r%d", n), val)
	}

	strval := "----"
	val, ok := cpu.Stack.Peek()
	if ok {
		strval = fmt.Sprintf("%04X", val)
	}
	text += fmt.Sprintf("% 5s: %v (depth %d)\n", "stack", strval, cpu.Stack.Depth())

	return
}

// Reset the CPU state.
// - Clears memory, registers, and the stack.
// - Zeros the tick counter.
// - Sets the PC to the entry point.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	clear(cpu.Register[:])
	cpu.Stack.Reset()
	cpu.Pc = ENTRY_POINT
	cpu.Halted = false
	cpu.Ticks = 0
}

// Load a program image into memory, starting at address 0.
func (cpu *Cpu) Load(image []uint16) (err error) {
	if len(image) > MEMORY_SIZE {
		err = ErrMemoryFull
		return
	}

	copy(cpu.Memory[:], image)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d words", len(image))
	}

	return
}

// Fetch decodes the instruction at the PC.
func (cpu *Cpu) Fetch() Instruction {
	return cpu.Decode(cpu.Pc)
}

// Tick executes a single CPU instruction cycle.
// ErrHalted is returned once the CPU reaches a terminal state.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	err = cpu.Execute(cpu.Fetch())

	return
}

// Execute executes a single decoded instruction.
//
// Both halt and ret with an empty stack stop the CPU with ErrHalted. A pop
// with an empty stack is a program error, and returns ErrStackEmpty.
// Unknown opcodes are logged and skipped one word at a time.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	defer func() {
		if err != nil && !errors.Is(err, ErrHalted) {
			err = errors.Join(ErrOpcode(inst), err)
		}
	}()

	if cpu.Verbose {
		log.Printf("%04x: %v", inst.Pc, inst)
	}

	next_pc := inst.Next()
	arg := inst.Arg

	switch inst.Op {
	case OP_HALT:
		cpu.Halted = true
		err = ErrHalted
		return
	case OP_SET:
		cpu.Write(arg[0].Address, arg[1].Value)
	case OP_PUSH:
		cpu.Stack.Push(arg[0].Value)
	case OP_POP:
		value, ok := cpu.Stack.Pop()
		if !ok {
			err = ErrStackEmpty
			return
		}
		cpu.Write(arg[0].Address, value)
	case OP_EQ, OP_GT, OP_ADD, OP_MULT, OP_MOD, OP_AND, OP_OR:
		cpu.Write(arg[0].Address, doAlu(inst.Op, arg[1].Value, arg[2].Value))
	case OP_NOT:
		cpu.Write(arg[0].Address, doAlu(inst.Op, arg[1].Value, 0))
	case OP_JMP:
		next_pc = arg[0].Value
	case OP_JT:
		if arg[0].Value != 0 {
			next_pc = arg[1].Value
		}
	case OP_JF:
		if arg[0].Value == 0 {
			next_pc = arg[1].Value
		}
	case OP_RMEM:
		cpu.Write(arg[0].Address, cpu.Read(arg[1].Address))
	case OP_WMEM:
		cpu.Write(arg[0].Address, arg[1].Value)
	case OP_CALL:
		cpu.Stack.Push(next_pc)
		next_pc = arg[0].Value
	case OP_RET:
		value, ok := cpu.Stack.Pop()
		if !ok {
			if cpu.Verbose {
				log.Printf("cpu: ret with empty stack, halting")
			}
			cpu.Halted = true
			err = ErrHalted
			return
		}
		next_pc = value
	case OP_OUT:
		if cpu.terminal == nil {
			err = ErrTerminalMissing
			return
		}
		err = cpu.terminal.WriteChar(byte(arg[0].Value))
		if err != nil {
			return
		}
	case OP_IN:
		if cpu.terminal == nil {
			err = ErrTerminalMissing
			return
		}
		var ch byte
		ch, err = cpu.terminal.ReadChar()
		if err != nil {
			return
		}
		cpu.Write(arg[0].Address, uint16(ch))
	case OP_NOOP:
		// pass
	default:
		log.Printf("cpu: unknown opcode %d at %04x, skipping", inst.Word, inst.Pc)
	}

	cpu.Pc = next_pc % MEMORY_SIZE
	cpu.Ticks += 1

	return
}
