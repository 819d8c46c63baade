package cpu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlu(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		op     Op
		b, c   uint16
		output uint16
	}){
		{"add", OP_ADD, 1, 2, 3},
		{"add_wrap", OP_ADD, 32758, 15, 5},
		{"add_max", OP_ADD, MAX_VALUE, MAX_VALUE, MAX_VALUE - 1},
		{"mult", OP_MULT, 3, 4, 12},
		{"mult_wrap", OP_MULT, 16384, 2, 0},
		{"mult_max", OP_MULT, MAX_VALUE, MAX_VALUE, 1},
		{"mod", OP_MOD, 17, 5, 2},
		{"mod_zero", OP_MOD, 17, 0, 0},
		{"and", OP_AND, 0x7ff0, 0x0ff7, 0x0ff0},
		{"or", OP_OR, 0x7000, 0x000f, 0x700f},
		{"not_zero", OP_NOT, 0, 0, 32767},
		{"not_max", OP_NOT, MAX_VALUE, 0, 0},
		{"not", OP_NOT, 0x5555, 0, 0x2aaa},
		{"eq_true", OP_EQ, 5, 5, 1},
		{"eq_false", OP_EQ, 5, 6, 0},
		{"gt_true", OP_GT, 6, 5, 1},
		{"gt_false", OP_GT, 5, 5, 0},
	}

	for _, entry := range table {
		assert.Equal(entry.output, doAlu(entry.op, entry.b, entry.c), entry.name)
	}
}

func TestAlu_Mult(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	for range 10000 {
		x := uint16(rnd.Intn(MODULUS))
		y := uint16(rnd.Intn(MODULUS))
		expected := uint16((uint64(x) * uint64(y)) % MODULUS)
		if got := doAlu(OP_MULT, x, y); got != expected {
			t.Fatalf("mult %d %d: got %d, expected %d", x, y, got, expected)
		}
	}
}

func TestAlu_Range(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))

	ops := []Op{OP_EQ, OP_GT, OP_ADD, OP_MULT, OP_MOD, OP_AND, OP_OR, OP_NOT}

	for range 10000 {
		b := uint16(rnd.Intn(MODULUS))
		c := uint16(rnd.Intn(MODULUS))
		for _, op := range ops {
			output := doAlu(op, b, c)
			if output > MAX_VALUE {
				t.Fatalf("%v %d %d: %d out of range", op, b, c, output)
			}
			if (op == OP_EQ || op == OP_GT) && output > 1 {
				t.Fatalf("%v %d %d: %d not boolean", op, b, c, output)
			}
		}
	}
}
