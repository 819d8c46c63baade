// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/ezrec/synacor/emulator"
)

func main() {
	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()

	err := emu.Rom.Open(emulator.DEFAULT_IMAGE)
	if err != nil {
		log.Fatalf("%v: %v", emulator.DEFAULT_IMAGE, err)
	}

	emu.Console.Input = os.Stdin
	emu.Console.Output = os.Stdout

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", emulator.DEFAULT_IMAGE, err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}
}
