package cpu

import (
	"fmt"
)

// Region selects the word store an Address refers to.
type Region int

//go:generate go tool stringer -linecomment -type=Region
const (
	REGION_MEMORY   = Region(0) // mem
	REGION_REGISTER = Region(1) // reg
)

// Address is a resolved write target.
type Address struct {
	Region Region
	Index  uint16
}

// AddressOf classifies a raw operand word as a memory address or a register.
func AddressOf(raw uint16) Address {
	if raw < REGISTER_BASE {
		return Address{Region: REGION_MEMORY, Index: raw}
	}

	return RegisterAddress(raw)
}

// RegisterAddress selects the register named by a raw operand word.
func RegisterAddress(raw uint16) Address {
	return Address{Region: REGION_REGISTER, Index: raw % REGISTER_COUNT}
}

// MemoryAddress selects the memory word at a value, wrapped into memory.
func MemoryAddress(value uint16) Address {
	return Address{Region: REGION_MEMORY, Index: value % MEMORY_SIZE}
}

func (addr Address) String() string {
	if addr.Region == REGION_REGISTER {
		return fmt.Sprintf("r%d", addr.Index)
	}

	return fmt.Sprintf("[%d]", addr.Index)
}

// Read a word from memory or the register bank.
func (cpu *Cpu) Read(addr Address) uint16 {
	switch addr.Region {
	case REGION_REGISTER:
		return cpu.Register[addr.Index]
	default:
		return cpu.Memory[addr.Index]
	}
}

// Write a word to memory or the register bank.
func (cpu *Cpu) Write(addr Address, value uint16) {
	switch addr.Region {
	case REGION_REGISTER:
		cpu.Register[addr.Index] = value
	default:
		cpu.Memory[addr.Index] = value
	}
}

// Value resolves a raw operand word read as data. Register selectors yield
// the register contents, everything else is a literal.
func (cpu *Cpu) Value(raw uint16) uint16 {
	addr := AddressOf(raw)
	if addr.Region == REGION_REGISTER {
		return cpu.Register[addr.Index]
	}

	return raw
}
