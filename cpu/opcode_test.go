package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOp_Width(t *testing.T) {
	assert := assert.New(t)

	table := map[Op]uint16{
		OP_HALT: 1, OP_SET: 3, OP_PUSH: 2, OP_POP: 2,
		OP_EQ: 4, OP_GT: 4, OP_JMP: 2, OP_JT: 3, OP_JF: 3,
		OP_ADD: 4, OP_MULT: 4, OP_MOD: 4, OP_AND: 4, OP_OR: 4, OP_NOT: 3,
		OP_RMEM: 3, OP_WMEM: 3, OP_CALL: 2, OP_RET: 1,
		OP_OUT: 2, OP_IN: 2, OP_NOOP: 1,
	}

	for op, width := range table {
		assert.True(op.Valid(), op.String())
		assert.Equal(width, op.Width(), op.String())
	}

	assert.False(Op(22).Valid())
	assert.Nil(Op(22).Shape())
	assert.Equal(uint16(1), Op(22).Width())
	assert.Equal("Op(22)", Op(22).String())
}

func TestOp_Shape(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]Operand{OPERAND_REGISTER, OPERAND_VALUE}, OP_SET.Shape())
	assert.Equal([]Operand{OPERAND_ADDRESS, OPERAND_POINTER}, OP_RMEM.Shape())
	assert.Equal([]Operand{OPERAND_POINTER, OPERAND_VALUE}, OP_WMEM.Shape())
	assert.Equal([]Operand{OPERAND_ADDRESS, OPERAND_VALUE, OPERAND_VALUE}, OP_ADD.Shape())

	// Exactly the first operand of a write opcode is a destination.
	for n := range len(_op_shape) {
		op := Op(n)
		for index, operand := range op.Shape() {
			if operand.Writable() {
				assert.Equal(0, index, op.String())
			}
		}
	}
}

func TestOpOf(t *testing.T) {
	assert := assert.New(t)

	for n := range len(_op_shape) {
		op, ok := OpOf(Op(n).String())
		assert.True(ok)
		assert.Equal(Op(n), op)
	}

	_, ok := OpOf("bogus")
	assert.False(ok)
}

func TestCpu_Decode(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Register[1] = 1000
	cpu.Register[2] = 40000
	assert.NoError(cpu.Load([]uint16{
		uint16(OP_ADD), R0, R1, 5, // 0
		uint16(OP_RMEM), 77, R1, // 4
		uint16(OP_WMEM), R2, 3, // 7
		uint16(OP_SET), 3, 4, // 10
	}))

	inst := cpu.Decode(0)
	assert.Equal(OP_ADD, inst.Op)
	assert.Equal(3, inst.Arity)
	assert.Equal(Address{Region: REGION_REGISTER, Index: 0}, inst.Arg[0].Address)
	assert.Equal(uint16(1000), inst.Arg[1].Value)
	assert.Equal(uint16(5), inst.Arg[2].Value)
	assert.Equal(uint16(4), inst.Next())
	assert.Equal("add r0 r1 5", inst.String())

	inst = cpu.Decode(4)
	assert.Equal(Address{Region: REGION_MEMORY, Index: 77}, inst.Arg[0].Address)
	assert.Equal(Address{Region: REGION_MEMORY, Index: 1000}, inst.Arg[1].Address)
	assert.Equal("rmem 77 r1", inst.String())

	// Pointers are wrapped into memory.
	inst = cpu.Decode(7)
	assert.Equal(Address{Region: REGION_MEMORY, Index: 40000 % MEMORY_SIZE}, inst.Arg[0].Address)
	assert.Equal(uint16(3), inst.Arg[1].Value)

	// set always targets a register.
	inst = cpu.Decode(10)
	assert.Equal(Address{Region: REGION_REGISTER, Index: 3}, inst.Arg[0].Address)

	inst = cpu.Decode(13)
	assert.Equal(OP_HALT, inst.Op)
	assert.Equal(0, inst.Arity)
	assert.Empty(inst.Args())
	assert.Equal("halt", inst.String())

	cpu.Memory[20] = 9999
	inst = cpu.Decode(20)
	assert.False(inst.Op.Valid())
	assert.Equal(uint16(21), inst.Next())
	assert.Equal(".word 9999", inst.String())
}
