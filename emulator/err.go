package emulator

import (
	"github.com/ezrec/synacor/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     int // PC of the failing instruction.
	LineNo int // Source line, if the program was assembled.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("line %d pc %04x %v", err.LineNo, err.Pc, err.Err)
	}
	return f("pc %04x %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
