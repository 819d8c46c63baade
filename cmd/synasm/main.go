// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/ezrec/synacor/cpu"
	"github.com/ezrec/synacor/emulator"
	"github.com/ezrec/synacor/io"
)

func main() {
	var compile string
	var output string
	var verbose bool

	asm := &cpu.Assembler{}

	// Machine defines are always available.
	for name, value := range emulator.NewEmulator().Defines() {
		asm.Predefine(name, value)
	}

	flag.StringVar(&compile, "c", "", ".asm file to compile")
	flag.StringVar(&output, "o", emulator.DEFAULT_IMAGE, "Image output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine NAME=VALUE", func(define string) error {
		name, value, _ := strings.Cut(define, "=")
		if len(value) == 0 {
			value = "1"
		}
		asm.Predefine(name, value)
		return nil
	})

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 {
		log.Fatalf("%v: -c is required", os.Args[0])
	}

	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	defer inf.Close()

	asm.Verbose = verbose
	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	rom := &io.Rom{Data: prog.Binary()}
	err = rom.Create(output)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
}
