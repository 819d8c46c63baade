package cpu

// doAlu performs the arithmetic or comparison for op over two resolved
// values, and returns a 15-bit result.
func doAlu(op Op, b uint16, c uint16) (output uint16) {
	switch op {
	case OP_EQ:
		if b == c {
			output = 1
		}
	case OP_GT:
		if b > c {
			output = 1
		}
	case OP_ADD:
		output = uint16((uint32(b) + uint32(c)) % MODULUS)
	case OP_MULT:
		output = uint16((uint32(b) * uint32(c)) % MODULUS)
	case OP_MOD:
		// Remainder by zero is defined as zero.
		if c != 0 {
			output = b % c
		}
	case OP_AND:
		output = b & c
	case OP_OR:
		output = b | c
	case OP_NOT:
		output = ^b & MAX_VALUE
	}

	return output % MODULUS
}
