package cpu

// Machine geometry.
const (
	MEMORY_SIZE    = 32768             // Words of memory.
	REGISTER_COUNT = 8                 // Number of registers.
	REGISTER_BASE  = 32768             // Operand word selecting r0.
	MODULUS        = 32768             // All arithmetic wraps at this value.
	MAX_VALUE      = MODULUS - 1       // Largest valid data value.
	ENTRY_POINT    = 0                 // PC after reset.
	REGISTER_LAST  = REGISTER_BASE + 7 // Operand word selecting r7.
)
