// Copyright (C) 2024  The gop11 authors

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/k0kubun/pp/v3"

	"github.com/gop11/gop11/pkg/assembler"
	"github.com/gop11/gop11/pkg/diag"
	"github.com/gop11/gop11/pkg/encoding"
)

var helpvar bool
var debugvar bool
var outvar string

const usage = "gop11-asm [-debug] [-out outfile] filename"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(
		&debugvar, "debug", false,
		"Dumps the parse tree and resolved symbol table to stderr",
	)
	flag.StringVar(
		&outvar, "out", "",
		"Writes the binary listing to the given file instead of printing "+
			"the disassembly to stdout",
	)
	flag.Parse()
}

func gop11_asm() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	var text string
	var infile string

	if len(args) == 0 {
		if stat, _ := os.Stdin.Stat(); stat.Mode()&os.ModeCharDevice != 0 {
			log.Println(usage)
			return 1
		}

		source, err := io.ReadAll(os.Stdin)

		if err != nil {
			log.Println(err)
			return 1
		}

		text = string(source)
		infile = "<stdin>"
	} else {
		if len(args) != 1 {
			log.Println(usage)
			return 1
		}

		source, err := os.ReadFile(args[0])

		if err != nil {
			log.Println(err)
			return 1
		}

		text = string(source)
		infile = filepath.Base(args[0])
	}

	printer := diag.NewStderrPrinter()

	program, errs := assembler.ParseSource(strings.NewReader(text))

	if len(errs) > 0 {
		for _, err := range errs {
			printer.Print(diag.FromError(infile, text, err))
		}

		return 1
	}

	if debugvar {
		pp.Fprintf(os.Stderr, "parsed %v\n", program)
	}

	collection, err := assembler.Collect(program)

	if err != nil {
		printer.Print(diag.FromError(infile, text, err))
		return 1
	}

	resolution, err := collection.Resolve()

	if err != nil {
		printer.Print(diag.FromError(infile, text, err))
		return 1
	}

	if debugvar {
		pp.Fprintf(os.Stderr, "symbols %v\n", resolution.Symbols)
	}

	for _, warning := range resolution.Warnings {
		printer.Print(diag.FromError(infile, text, warning))
	}

	code := resolution.Encode()

	if outvar != "" {
		var listing strings.Builder

		for _, mc := range code {
			listing.WriteString(encoding.FormatWord(uint16(mc.Word)))
			listing.WriteByte('\n')
		}

		if err := os.WriteFile(
			outvar, []byte(listing.String()), 0666,
		); err != nil {
			log.Println("Error writing output file")
			log.Println(err)
			return 1
		}
	} else {
		width := len(fmt.Sprint(len(code)))

		for i, mc := range code {
			fmt.Printf(
				"%*d: %s -- %s %v\n",
				width,
				i,
				encoding.FormatWord(uint16(mc.Word)),
				mc.Source.Op,
				mc.Source.Args,
			)
		}
	}

	return 0
}

func main() {
	os.Exit(gop11_asm())
}
