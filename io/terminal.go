// Package io provides the console and program image devices for the
// 15-bit word machine. It includes a line buffered console (Console) and
// a little-endian program image (Rom).
package io

// Terminal defines the character interface the CPU uses for the in and out
// opcodes.
type Terminal interface {
	// ReadChar returns the next input character, blocking only when no
	// buffered input remains.
	ReadChar() (ch byte, err error)
	// WriteChar writes a single character, unbuffered.
	WriteChar(ch byte) error
}
