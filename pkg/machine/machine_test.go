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

package machine_test

import (
	"strings"
	"testing"

	"github.com/gop11/gop11/pkg/assembler"
	"github.com/gop11/gop11/pkg/encoding"
	"github.com/gop11/gop11/pkg/machine"
)

// assemble turns source text into a binary listing the machine can load
func assemble(t *testing.T, source string) string {
	t.Helper()

	program, errs := assembler.ParseSource(strings.NewReader(source))

	if len(errs) > 0 {
		t.Fatalf("Parse failure\nhave:%v", errs)
	}

	code, _, err := assembler.Assemble(program)

	if err != nil {
		t.Fatalf("Assembly failure\nhave:%v", err)
	}

	var listing strings.Builder

	for _, mc := range code {
		listing.WriteString(encoding.FormatWord(uint16(mc.Word)))
		listing.WriteByte('\n')
	}

	return listing.String()
}

func run(t *testing.T, source string) *machine.Machine {
	t.Helper()

	var mc machine.Machine

	if err := mc.LoadListing(strings.NewReader(assemble(t, source))); err != nil {
		t.Fatalf("Load failure\nhave:%v", err)
	}

	if err := mc.Run(1000); err != nil {
		t.Fatalf("Execution failure\nhave:%v", err)
	}

	if !mc.State.Halted {
		t.Fatalf("Machine failed to halt\nhave:%+v", mc.State)
	}

	return &mc
}

func expectRegister(t *testing.T, mc *machine.Machine, register int, want uint16) {
	t.Helper()

	if have := mc.State.Registers[register]; have != want {
		t.Fatalf("Register r%d mismatch\nwant:%d\nhave:%d", register, want, have)
	}
}

func TestArithmetic(t *testing.T) {
	mc := run(t, `
	li r1, 5
	li r2, 3
	add r0, r1, r2
	sub r3, r1, r2
	j stop
stop:	1
`)

	expectRegister(t, mc, 0, 8)
	expectRegister(t, mc, 3, 2)
}

func TestSetLessThan(t *testing.T) {
	mc := run(t, `
	li r1, 2
	li r2, 7
	slt r0, r1, r2
	slt r3, r2, r1
	j stop
stop:	1
`)

	expectRegister(t, mc, 0, 1)
	expectRegister(t, mc, 3, 0)
}

func TestMemory(t *testing.T) {
	mc := run(t, `
	li r0, 9
	sw r0, slot
	lw r1, slot
	j stop
stop:	1
slot:	0
`)

	expectRegister(t, mc, 1, 9)
}

func TestBranchLoop(t *testing.T) {
	mc := run(t, `
	li r1, 1
	li r0, 3
loop:	sub r0, r0, r1
	bne r0, loop
	j stop
stop:	1
`)

	expectRegister(t, mc, 0, 0)
}

func TestBranchEqualTaken(t *testing.T) {
	mc := run(t, `
	li r0, 0
	beq r0, skip
	li r1, 9
skip:	li r2, 4
	j stop
stop:	1
`)

	expectRegister(t, mc, 1, 0)
	expectRegister(t, mc, 2, 4)
}

func TestCallAndReturn(t *testing.T) {
	mc := run(t, `
	li r0, 3
	jal func
	nop
	j stop
func:	li r1, 7
	jr r0
stop:	1
`)

	expectRegister(t, mc, 1, 7)

	if mc.State.Link != 2 {
		t.Fatalf("Link mismatch\nwant:2\nhave:%d", mc.State.Link)
	}

	if mc.State.Program != 6 {
		t.Fatalf("Program counter mismatch\nwant:6\nhave:%d", mc.State.Program)
	}
}

func TestStack(t *testing.T) {
	mc := run(t, `
	li r0, 5
	li r1, 6
	push r0
	push r1
	pop r2
	pop r3
	j stop
stop:	1
`)

	expectRegister(t, mc, 2, 6)
	expectRegister(t, mc, 3, 5)

	if mc.State.Stack != machine.MEM_SIZE {
		t.Fatalf("Stack pointer mismatch\nwant:%d\nhave:%d",
			machine.MEM_SIZE, mc.State.Stack)
	}
}

func TestStackFault(t *testing.T) {
	var mc machine.Machine

	if err := mc.LoadListing(strings.NewReader(assemble(t, "pop r0\n"))); err != nil {
		t.Fatalf("Load failure\nhave:%v", err)
	}

	err := mc.Run(10)

	if _, ok := err.(*machine.StackFaultError); !ok {
		t.Fatalf("Error mismatch\nwant:StackFaultError\nhave:%v", err)
	}
}

func TestHaltOnDataWord(t *testing.T) {
	mc := run(t, `
	nop
	j stop
stop:	5
`)

	if mc.State.Program != 2 {
		t.Fatalf("Program counter mismatch\nwant:2\nhave:%d", mc.State.Program)
	}
}

func TestInvalidInstruction(t *testing.T) {
	var mc machine.Machine

	if err := mc.LoadListing(strings.NewReader("11100000000\n")); err != nil {
		t.Fatalf("Load failure\nhave:%v", err)
	}

	err := mc.Step()

	if _, ok := err.(*machine.InvalidInstructionError); !ok {
		t.Fatalf("Error mismatch\nwant:InvalidInstructionError\nhave:%v", err)
	}
}

func TestOversizedImage(t *testing.T) {
	var mc machine.Machine

	listing := strings.Repeat("11010000001\n", machine.MEM_SIZE+1)
	err := mc.LoadListing(strings.NewReader(listing))

	if _, ok := err.(*machine.OversizedImageError); !ok {
		t.Fatalf("Error mismatch\nwant:OversizedImageError\nhave:%v", err)
	}
}

type stepCounter struct {
	steps int
}

func (counter *stepCounter) Step(mc *machine.Machine) {
	counter.steps++
}

func TestTracer(t *testing.T) {
	var counter stepCounter
	var mc machine.Machine

	mc.Tracer = &counter

	source := "li r0, 1\nli r1, 2\nj stop\nstop: 1\n"

	if err := mc.LoadListing(strings.NewReader(assemble(t, source))); err != nil {
		t.Fatalf("Load failure\nhave:%v", err)
	}

	if err := mc.Run(100); err != nil {
		t.Fatalf("Execution failure\nhave:%v", err)
	}

	// li, li, j execute; the data word halts before tracing
	if counter.steps != 3 {
		t.Fatalf("Step count mismatch\nwant:3\nhave:%d", counter.steps)
	}
}
