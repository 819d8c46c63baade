package cpu

import (
	"iter"
)

// Link is an operand word to be patched with the address of a label.
type Link struct {
	Index int    // Index into Codes of the operand word.
	Label string // Label to resolve.
}

// Opcode represents a line of assembled code with its source location and generated words.
type Opcode struct {
	LineNo int
	Ip     int
	Words  []string
	Codes  []uint16
	Links  []Link
}

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the listing entry that contains a PC.
func (prog *Program) Debug(pc uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(pc) >= op.Ip && int(pc) < op.Ip+len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(pc) - op.Ip,
			}
			break
		}
	}

	return
}

// Binary returns the memory image of the program. Gaps are zero filled.
func (prog *Program) Binary() (image []uint16) {
	for pc, code := range prog.Codes() {
		for int(pc) >= len(image) {
			image = append(image, 0)
		}
		image[pc] = code
	}

	return
}

// Codes iterates over the address and value of every assembled word.
func (prog *Program) Codes() iter.Seq2[uint16, uint16] {
	return func(yield func(pc uint16, code uint16) bool) {
		for _, op := range prog.Opcodes {
			pc := uint16(op.Ip)
			for n, code := range op.Codes {
				if !yield(pc+uint16(n), code) {
					return
				}
			}
		}
	}
}
