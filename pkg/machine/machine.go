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
	"bufio"
	"io"
	"strings"

	"github.com/gop11/gop11/pkg/assembler"
	"github.com/gop11/gop11/pkg/encoding"
)

func (mc *MachineState) Reset() {
	for i := range mc.Registers {
		mc.Registers[i] = 0x0000
	}

	for i := range mc.Memory {
		mc.Memory[i] = 0x0000
	}

	mc.Program = 0
	mc.Link = 0
	mc.Stack = MEM_SIZE
	mc.Halted = false
}

// LoadListing loads a binary listing produced by the assembler, one 11-bit
// word per line, into memory starting at address zero
func (mc *Machine) LoadListing(reader io.Reader) error {
	mc.State.Reset()

	scanner := bufio.NewScanner(reader)
	index := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		word, err := encoding.ParseWord(line)

		if err != nil {
			return err
		}

		if index >= MEM_SIZE {
			return &OversizedImageError{index + 1}
		}

		mc.State.Memory[index] = word
		index++
	}

	return scanner.Err()
}

func (mc *Machine) push(value uint16) error {
	if mc.State.Stack == 0 {
		return &StackFaultError{mc.State.Stack}
	}

	mc.State.Stack--
	mc.State.Memory[mc.State.Stack] = value
	return nil
}

func (mc *Machine) pop() (uint16, error) {
	if mc.State.Stack >= MEM_SIZE {
		return 0, &StackFaultError{mc.State.Stack}
	}

	result := mc.State.Memory[mc.State.Stack]
	mc.State.Stack++
	return result, nil
}

func (mc *Machine) read(addr uint16) (uint16, error) {
	if addr >= MEM_SIZE {
		return 0, &InvalidAccessError{addr}
	}

	return mc.State.Memory[addr], nil
}

func (mc *Machine) write(addr uint16, value uint16) error {
	if addr >= MEM_SIZE {
		return &InvalidAccessError{addr}
	}

	mc.State.Memory[addr] = value
	return nil
}

// Step fetches, decodes, and executes one instruction. Execution halts
// cleanly when the program counter runs into a data word: the code region
// always precedes the data region, so a NOP with a nonzero payload marks
// the end of executable code.
func (mc *Machine) Step() error {
	if mc.State.Halted {
		return nil
	}

	if mc.State.Program >= MEM_SIZE {
		mc.State.Halted = true
		return nil
	}

	word := mc.State.Memory[mc.State.Program]
	instruction, ok := assembler.Decode(assembler.Word(word))

	if !ok {
		return &InvalidInstructionError{mc.State.Program, word}
	}

	next := mc.State.Program + 1
	registers := &mc.State.Registers

	switch instruction.Op {
	case assembler.OPCODE_ADD:
		dest, srcA, srcB := operands3(instruction)
		registers[dest] = registers[srcA] + registers[srcB]

	case assembler.OPCODE_SUB:
		dest, srcA, srcB := operands3(instruction)
		registers[dest] = registers[srcA] - registers[srcB]

	case assembler.OPCODE_SLT:
		dest, srcA, srcB := operands3(instruction)
		if registers[srcA] < registers[srcB] {
			registers[dest] = 1
		} else {
			registers[dest] = 0
		}

	case assembler.OPCODE_LI:
		reg, imm := operands2(instruction)
		registers[reg] = imm

	case assembler.OPCODE_LW:
		reg, imm := operands2(instruction)
		value, err := mc.read(imm)
		if err != nil {
			return err
		}
		registers[reg] = value

	case assembler.OPCODE_SW:
		reg, imm := operands2(instruction)
		if err := mc.write(imm, registers[reg]); err != nil {
			return err
		}

	case assembler.OPCODE_BEQ:
		reg, imm := operands2(instruction)
		if registers[reg] == 0 {
			next = imm
		}

	case assembler.OPCODE_BNE:
		reg, imm := operands2(instruction)
		if registers[reg] != 0 {
			next = imm
		}

	case assembler.OPCODE_PUSH:
		reg, _ := operands2(instruction)
		if err := mc.push(registers[reg]); err != nil {
			return err
		}

	case assembler.OPCODE_POP:
		reg, _ := operands2(instruction)
		value, err := mc.pop()
		if err != nil {
			return err
		}
		registers[reg] = value

	case assembler.OPCODE_J:
		next = operand1(instruction)

	case assembler.OPCODE_JAL:
		mc.State.Link = mc.State.Program + 1
		next = operand1(instruction)

	case assembler.OPCODE_JR:
		next = registers[operand1(instruction)%NUM_REGISTERS]

	case assembler.OPCODE_NOP:
		// A nonzero payload is a data word; reaching one means the program
		// ran off the end of its code region
		if operand1(instruction) != 0 {
			mc.State.Halted = true
			return nil
		}
	}

	mc.State.Program = next

	if mc.Tracer != nil {
		mc.Tracer.Step(mc)
	}

	return nil
}

// Run steps the machine until it halts or faults, bounded by limit steps
func (mc *Machine) Run(limit int) error {
	for i := 0; i < limit && !mc.State.Halted; i++ {
		if err := mc.Step(); err != nil {
			return err
		}
	}

	return nil
}

func operands3(instruction assembler.Instruction) (uint16, uint16, uint16) {
	return uint16(instruction.Args[0]),
		uint16(instruction.Args[1]),
		uint16(instruction.Args[2])
}

func operands2(instruction assembler.Instruction) (uint16, uint16) {
	return uint16(instruction.Args[0]), uint16(instruction.Args[1])
}

func operand1(instruction assembler.Instruction) uint16 {
	return uint16(instruction.Args[0])
}
