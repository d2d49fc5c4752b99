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
	"log"
	"os"

	"github.com/k0kubun/pp/v3"

	"github.com/gop11/gop11/pkg/machine"
)

var helpvar bool
var tracevar bool
var stepsvar int

const usage = "gop11 [-trace] [-steps n] filename"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(
		&tracevar, "trace", false,
		"Dumps machine state to stderr after every step",
	)
	flag.IntVar(
		&stepsvar, "steps", 10000,
		"Limits execution to the given number of steps",
	)
	flag.Parse()
}

type traceStepper struct{}

func (traceStepper) Step(mc *machine.Machine) {
	pp.Fprintf(
		os.Stderr,
		"pc=%v sp=%v ra=%v regs=%v\n",
		mc.State.Program,
		mc.State.Stack,
		mc.State.Link,
		mc.State.Registers,
	)
}

func gop11_run() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	if len(args) != 1 {
		log.Println(usage)
		return 1
	}

	file, err := os.Open(args[0])

	if err != nil {
		log.Println(err)
		return 1
	}

	defer file.Close()

	mc := &machine.Machine{}

	if err := mc.LoadListing(file); err != nil {
		log.Println(err)
		return 1
	}

	if tracevar {
		mc.Tracer = traceStepper{}
	}

	if err := mc.Run(stepsvar); err != nil {
		log.Println(err)
		return 1
	}

	fmt.Printf("pc:%d halted:%v\n", mc.State.Program, mc.State.Halted)

	for i, value := range mc.State.Registers {
		fmt.Printf("r%d:%d ", i, value)
	}

	fmt.Println()
	return 0
}

func main() {
	os.Exit(gop11_run())
}
