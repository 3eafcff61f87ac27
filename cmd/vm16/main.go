// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/vm16/machine"
)

// parseRange parses START:END into an inclusive address range.
func parseRange(text string) (start, end uint16, err error) {
	before, after, ok := strings.Cut(text, ":")
	if !ok {
		err = fmt.Errorf("%v: expected START:END", text)
		return
	}

	value, err := strconv.ParseUint(before, 0, 16)
	if err != nil {
		return
	}
	start = uint16(value)

	value, err = strconv.ParseUint(after, 0, 16)
	if err != nil {
		return
	}
	end = uint16(value)

	if start > end {
		err = fmt.Errorf("%v: start after end", text)
	}
	return
}

func main() {
	var compile string
	var layoutPath string
	var verbose bool
	var step bool
	var memory string

	flag.StringVar(&compile, "c", "", ".asm file to assemble and run")
	flag.StringVar(&layoutPath, "l", "", ".toml machine layout to use")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&step, "s", false, "Single step console")
	flag.StringVar(&memory, "m", "", "Memory range START:END to show in the console")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	layout := machine.DefaultLayout()
	if len(layoutPath) != 0 {
		var err error
		layout, err = machine.LoadLayout(layoutPath)
		if err != nil {
			log.Fatalf("%v: %v", layoutPath, err)
		}
	}

	mach, err := machine.NewMachine(layout, os.Stdout)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	mach.Verbose = verbose

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		err = mach.Assemble(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	err = mach.Reset()
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if !step {
		err = mach.Run()
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		return
	}

	con := &console{Machine: mach, In: os.Stdin, Out: os.Stdout}
	if len(memory) != 0 {
		con.Start, con.End, err = parseRange(memory)
		if err != nil {
			log.Fatalf("-m %v", err)
		}
		con.View = true
	}

	err = con.Run()
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
}
