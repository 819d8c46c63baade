package cpu

import (
	"fmt"
	"strings"
)

// Op is an instruction opcode.
type Op uint16

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_HALT = Op(0)  // halt
	OP_SET  = Op(1)  // set
	OP_PUSH = Op(2)  // push
	OP_POP  = Op(3)  // pop
	OP_EQ   = Op(4)  // eq
	OP_GT   = Op(5)  // gt
	OP_JMP  = Op(6)  // jmp
	OP_JT   = Op(7)  // jt
	OP_JF   = Op(8)  // jf
	OP_ADD  = Op(9)  // add
	OP_MULT = Op(10) // mult
	OP_MOD  = Op(11) // mod
	OP_AND  = Op(12) // and
	OP_OR   = Op(13) // or
	OP_NOT  = Op(14) // not
	OP_RMEM = Op(15) // rmem
	OP_WMEM = Op(16) // wmem
	OP_CALL = Op(17) // call
	OP_RET  = Op(18) // ret
	OP_OUT  = Op(19) // out
	OP_IN   = Op(20) // in
	OP_NOOP = Op(21) // noop
)

// Operand is the decode shape of a single operand word.
type Operand int

//go:generate go tool stringer -linecomment -type=Operand
const (
	OPERAND_VALUE    = Operand(0) // value
	OPERAND_ADDRESS  = Operand(1) // address
	OPERAND_REGISTER = Operand(2) // register
	OPERAND_POINTER  = Operand(3) // pointer
)

// Writable returns true if the operand is resolved as a write destination.
func (operand Operand) Writable() bool {
	return operand == OPERAND_ADDRESS || operand == OPERAND_REGISTER
}

var (
	_shape_none  = []Operand{}
	_shape_value = []Operand{OPERAND_VALUE}
	_shape_jump  = []Operand{OPERAND_VALUE, OPERAND_VALUE}
	_shape_unary = []Operand{OPERAND_ADDRESS, OPERAND_VALUE}
	_shape_alu   = []Operand{OPERAND_ADDRESS, OPERAND_VALUE, OPERAND_VALUE}
)

// _op_shape declares the operand shapes of every opcode.
var _op_shape = [...][]Operand{
	OP_HALT: _shape_none,
	OP_SET:  {OPERAND_REGISTER, OPERAND_VALUE},
	OP_PUSH: _shape_value,
	OP_POP:  {OPERAND_ADDRESS},
	OP_EQ:   _shape_alu,
	OP_GT:   _shape_alu,
	OP_JMP:  _shape_value,
	OP_JT:   _shape_jump,
	OP_JF:   _shape_jump,
	OP_ADD:  _shape_alu,
	OP_MULT: _shape_alu,
	OP_MOD:  _shape_alu,
	OP_AND:  _shape_alu,
	OP_OR:   _shape_alu,
	OP_NOT:  _shape_unary,
	OP_RMEM: {OPERAND_ADDRESS, OPERAND_POINTER},
	OP_WMEM: {OPERAND_POINTER, OPERAND_VALUE},
	OP_CALL: _shape_value,
	OP_RET:  _shape_none,
	OP_OUT:  _shape_value,
	OP_IN:   {OPERAND_ADDRESS},
	OP_NOOP: _shape_none,
}

// _op_names maps mnemonics back to opcodes.
var _op_names = func() map[string]Op {
	names := make(map[string]Op, len(_op_shape))
	for n := range _op_shape {
		names[Op(n).String()] = Op(n)
	}
	return names
}()

// OpOf returns the opcode for a mnemonic.
func OpOf(name string) (op Op, ok bool) {
	op, ok = _op_names[name]
	return
}

// Valid returns true if the opcode is part of the instruction set.
func (op Op) Valid() bool {
	return int(op) < len(_op_shape)
}

// Shape returns the operand shapes of the opcode. Unknown opcodes have none.
func (op Op) Shape() []Operand {
	if !op.Valid() {
		return nil
	}
	return _op_shape[op]
}

// Width returns the number of words occupied by the instruction.
func (op Op) Width() uint16 {
	return 1 + uint16(len(op.Shape()))
}

// Arg is a decoded operand.
type Arg struct {
	Operand Operand // Decode shape.
	Raw     uint16  // Operand word as stored in memory.
	Address Address // Destination, for address, register and pointer shapes.
	Value   uint16  // Resolved data, for value shapes.
}

// Instruction is a decoded instruction at a PC.
type Instruction struct {
	Pc    uint16
	Op    Op
	Word  uint16 // Opcode word as stored in memory.
	Arity int
	Arg   [3]Arg
}

// Args returns the decoded operands.
func (inst Instruction) Args() []Arg {
	return inst.Arg[:inst.Arity]
}

// Next returns the PC following the instruction.
func (inst Instruction) Next() uint16 {
	return (inst.Pc + inst.Op.Width()) % MEMORY_SIZE
}

// String returns the assembly language representation of the instruction.
func (inst Instruction) String() string {
	if !inst.Op.Valid() {
		return fmt.Sprintf(".word %d", inst.Word)
	}

	words := []string{inst.Op.String()}
	for _, arg := range inst.Args() {
		words = append(words, operandString(arg.Raw))
	}

	return strings.Join(words, " ")
}

// operandString formats a raw operand word as a register or literal.
func operandString(raw uint16) string {
	if raw >= REGISTER_BASE && raw <= REGISTER_LAST {
		return fmt.Sprintf("r%d", raw-REGISTER_BASE)
	}
	return fmt.Sprintf("%d", raw)
}

// Decode the instruction at a PC, resolving every operand by its shape.
func (cpu *Cpu) Decode(pc uint16) (inst Instruction) {
	pc %= MEMORY_SIZE

	word := cpu.Memory[pc]
	inst = Instruction{
		Pc:   pc,
		Op:   Op(word),
		Word: word,
	}

	for n, operand := range inst.Op.Shape() {
		raw := cpu.Memory[(pc+1+uint16(n))%MEMORY_SIZE]
		arg := Arg{Operand: operand, Raw: raw}
		switch operand {
		case OPERAND_ADDRESS:
			arg.Address = AddressOf(raw)
		case OPERAND_REGISTER:
			arg.Address = RegisterAddress(raw)
		case OPERAND_POINTER:
			arg.Address = MemoryAddress(cpu.Value(raw))
		case OPERAND_VALUE:
			arg.Value = cpu.Value(raw)
		}
		inst.Arg[n] = arg
		inst.Arity = n + 1
	}

	return
}
