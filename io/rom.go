package io

import (
	"encoding/binary"
	"fmt"
	"io"
	"iter"
	"maps"
	"os"
)

const ROM_LIMIT = 32768 // Maximum image size, in words.

var _rom_defines = map[string]string{
	"ROM_LIMIT": fmt.Sprintf("%v", ROM_LIMIT),
}

// Rom is a program image: a headerless sequence of little-endian 16-bit words.
type Rom struct {
	Data []uint16
}

var (
	_ io.ReaderFrom = (*Rom)(nil)
	_ io.WriterTo   = (*Rom)(nil)
)

// Defines returns an iter of defines for the image.
func (rc *Rom) Defines() iter.Seq2[string, string] {
	return maps.All(_rom_defines)
}

// Open reads the image from a file.
func (rc *Rom) Open(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	_, err = rc.ReadFrom(inf)

	return
}

// ReadFrom replaces the image with the words read from r, until EOF.
// A trailing odd byte is ignored.
func (rc *Rom) ReadFrom(r io.Reader) (n int64, err error) {
	data, err := io.ReadAll(r)
	n = int64(len(data))
	if err != nil {
		return
	}

	words := len(data) / 2
	if words > ROM_LIMIT {
		err = ErrRomFull
		return
	}

	rc.Data = make([]uint16, words)
	for index := range rc.Data {
		rc.Data[index] = binary.LittleEndian.Uint16(data[index*2:])
	}

	return
}

// WriteTo writes the image to w.
func (rc *Rom) WriteTo(w io.Writer) (n int64, err error) {
	if len(rc.Data) > ROM_LIMIT {
		err = ErrRomFull
		return
	}

	data := make([]byte, 0, len(rc.Data)*2)
	for _, word := range rc.Data {
		data = binary.LittleEndian.AppendUint16(data, word)
	}

	written, err := w.Write(data)
	n = int64(written)

	return
}

// Create writes the image to a new file.
func (rc *Rom) Create(path string) (err error) {
	ouf, err := os.Create(path)
	if err != nil {
		return
	}

	_, err = rc.WriteTo(ouf)
	if err != nil {
		ouf.Close()
		return
	}

	err = ouf.Close()

	return
}
