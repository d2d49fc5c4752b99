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

package machine

import (
	"fmt"
)

// The P11 address space is 7 bits wide: code starting at zero, data placed
// directly after it, and the stack descending from the top
const MEM_SIZE = 1 << 7

// Register file: the dest and srcB fields address r0-r3, srcA all eight
const NUM_REGISTERS = 8

type MachineState struct {
	Registers [NUM_REGISTERS]uint16
	Program   uint16
	Link      uint16
	Stack     uint16
	Memory    [MEM_SIZE]uint16
	Halted    bool
}

// MachineTracer observes each completed step; the emulator CLI hangs its
// -trace output off this
type MachineTracer interface {
	Step(mc *Machine)
}

type Machine struct {
	State  MachineState
	Tracer MachineTracer
}

type InvalidAccessError struct {
	Address uint16
}

func (err *InvalidAccessError) Error() string {
	return fmt.Sprintf("Invalid memory access at %#04x", err.Address)
}

type InvalidInstructionError struct {
	Address uint16
	Word    uint16
}

func (err *InvalidInstructionError) Error() string {
	return fmt.Sprintf(
		"Invalid instruction %011b at %#04x",
		err.Word,
		err.Address,
	)
}

type StackFaultError struct {
	Pointer uint16
}

func (err *StackFaultError) Error() string {
	return fmt.Sprintf("Stack fault with pointer at %#04x", err.Pointer)
}

type OversizedImageError struct {
	Words int
}

func (err *OversizedImageError) Error() string {
	return fmt.Sprintf(
		"Image exceeds memory\n\twant:<=%d words\n\thave:%d",
		MEM_SIZE,
		err.Words,
	)
}
