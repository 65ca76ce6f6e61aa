// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/tebeka/atexit"

	"github.com/ezrec/frame/emulator"
	"github.com/ezrec/frame/translate"
	"github.com/ezrec/frame/vm"
)

var f = translate.From

// fatalf logs a highlighted diagnostic and exits through the atexit handlers.
func fatalf(format string, args ...any) {
	log.Print(color.New(color.FgRed).Sprint(f(format, args...)))
	atexit.Exit(1)
}

// parseDefine splits a NAME=VALUE equate definition. The value may be empty.
func parseDefine(arg string) (name string, value string, err error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok || len(name) == 0 {
		err = vm.ErrEquateSyntax
	}
	return
}

// readImage reads a program image written by writeImage.
func readImage(in io.Reader) (prog *vm.Program, err error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return
	}
	if len(data)%2 != 0 {
		err = io.ErrUnexpectedEOF
		return
	}

	bins := make([]uint16, len(data)/2)
	for n := range bins {
		bins[n] = binary.LittleEndian.Uint16(data[n*2:])
	}

	prog, err = vm.LoadBinary(bins)
	return
}

// writeImage writes a program image, one little-endian word per instruction.
func writeImage(out io.Writer, prog *vm.Program) (err error) {
	for _, word := range prog.Binary() {
		err = binary.Write(out, binary.LittleEndian, word)
		if err != nil {
			return
		}
	}

	return
}

func main() {
	var save string
	var isBinary bool
	var listing bool
	var quiet bool
	var noColor bool
	var verbose bool

	emu := emulator.NewEmulator()

	flag.StringVar(&save, "s", "", "Save program image to file, do not execute")
	flag.BoolVar(&isBinary, "b", false, "Input is a program image, not source")
	flag.BoolVar(&listing, "l", false, "Print the program listing")
	flag.BoolVar(&quiet, "q", false, "Do not trace execution")
	flag.BoolVar(&noColor, "no-color", false, "Do not colorize output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine an equate as NAME=VALUE", func(arg string) error {
		name, value, err := parseDefine(arg)
		if err != nil {
			return err
		}
		emu.Predefine(name, value)
		return nil
	})

	flag.Parse()

	if flag.NArg() != 1 {
		fatalf("%v: expected one source file, got: %v", os.Args[0], flag.Args())
	}

	if noColor {
		color.NoColor = true
	}

	source := flag.Arg(0)

	inf, err := os.Open(source)
	if err != nil {
		fatalf("%v: %v", source, err)
	}
	atexit.Register(func() { inf.Close() })

	emu.Verbose = verbose
	if verbose {
		for equ, value := range emu.Defines() {
			log.Print(f("define %v = %v", equ, value))
		}
	}

	if isBinary {
		prog, err := readImage(inf)
		if err != nil {
			fatalf("%v: %v", source, err)
		}
		emu.Load(prog)
	} else {
		err = emu.Assemble(inf)
		if err != nil {
			fatalf("%v: %v", source, err)
		}
	}

	stdout := bufio.NewWriter(os.Stdout)
	atexit.Register(func() { stdout.Flush() })

	if listing {
		err = emu.Program.Listing(stdout)
		if err != nil {
			fatalf("%v: %v", source, err)
		}
	}

	if len(save) != 0 {
		ouf, err := os.Create(save)
		if err != nil {
			fatalf("%v: %v", save, err)
		}
		atexit.Register(func() { ouf.Close() })

		err = writeImage(ouf, emu.Program)
		if err != nil {
			fatalf("%v: %v", save, err)
		}
		atexit.Exit(0)
	}

	if !quiet {
		emu.Trace = stdout
		emu.Color = !color.NoColor
	}

	err = emu.Run()
	if err != nil {
		stdout.Flush()
		fatalf("%v: %v", source, err)
	}

	if verbose {
		log.Print(f("%v: done after %v ticks\n%v", source, emu.Ticks(), emu.Frame.String()))
	}

	atexit.Exit(0)
}
