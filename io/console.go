package io

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Console provides line buffered character input, and unbuffered character
// output. Input is read a whole line at a time; each line is then handed out
// one character at a time, ending with a newline.
type Console struct {
	Input  io.Reader
	Output io.Writer

	reader  *bufio.Reader
	source  io.Reader
	pending []byte
}

var _ Terminal = (*Console)(nil)

// Rewind discards any buffered input.
func (cc *Console) Rewind() {
	cc.reader = nil
	cc.source = nil
	cc.pending = cc.pending[:0]
}

// Pending returns the number of buffered input characters.
func (cc *Console) Pending() int {
	return len(cc.pending)
}

// fill performs a single blocking read of one line of input.
func (cc *Console) fill() (err error) {
	if cc.Input == nil {
		err = ErrInputClosed
		return
	}

	if cc.reader == nil || cc.source != cc.Input {
		cc.reader = bufio.NewReader(cc.Input)
		cc.source = cc.Input
	}

	line, err := cc.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return
		}
		if len(line) == 0 {
			err = ErrInputClosed
			return
		}
		// Partial last line.
		err = nil
	}

	line = strings.TrimRight(line, "\r\n") + "\n"
	cc.pending = append(cc.pending, line...)

	return
}

// ReadChar returns the next buffered input character.
func (cc *Console) ReadChar() (ch byte, err error) {
	if len(cc.pending) == 0 {
		err = cc.fill()
		if err != nil {
			return
		}
	}

	ch = cc.pending[0]
	cc.pending = cc.pending[1:]

	return
}

// WriteChar writes a character to the output stream.
func (cc *Console) WriteChar(ch byte) (err error) {
	if cc.Output == nil {
		err = ErrOutputClosed
		return
	}

	_, err = cc.Output.Write([]byte{ch})

	return
}
