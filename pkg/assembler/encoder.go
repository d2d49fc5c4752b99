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

package assembler

import (
	"fmt"

	"github.com/gop11/gop11/pkg/encoding"
)

// Word is an unsigned 11-bit machine word, the final emitted artifact
type Word uint16

// Instruction is an opcode with fully resolved integer operands, immutable
// once produced by the resolver
type Instruction struct {
	Op   Opcode
	Args []int
}

// MachineCode pairs an encoded word with its originating instruction for
// disassembly and debugging output
type MachineCode struct {
	Word   Word
	Source Instruction
}

// layout is the closed set of operand shapes, one per format family. The
// resolver constructs the variant matching each opcode, so a malformed
// operand count can never reach packing.
type layout interface {
	pack(op Opcode) Word
}

// | opcode:4 | dest:2 | srcA:3 | srcB:2 |
type rLayout struct {
	dest, srcA, srcB int
}

// | opcode:4 | reg:2 | imm:5 |
type iLayout struct {
	reg, imm int
}

// | opcode:4 | addr:7 |
type jLayout struct {
	addr int
}

// | opcode:4 | payload:7 |, both bare NOPs and data-region literals
type nopLayout struct {
	payload int
}

func field(value int, shift, width uint) uint16 {
	return (uint16(value) & ((1 << width) - 1)) << shift
}

func (l rLayout) pack(op Opcode) Word {
	word := uint16(op) << OPCODE_SHIFT
	word |= field(l.dest, DEST_SHIFT, DEST_BITS)
	word |= field(l.srcA, SRCA_SHIFT, SRCA_BITS)
	word |= field(l.srcB, SRCB_SHIFT, SRCB_BITS)
	return Word(word & WORD_MASK)
}

func (l iLayout) pack(op Opcode) Word {
	word := uint16(op) << OPCODE_SHIFT
	word |= field(l.reg, REG_SHIFT, REG_BITS)
	word |= field(l.imm, IMM_SHIFT, IMM_BITS)
	return Word(word & WORD_MASK)
}

func (l jLayout) pack(op Opcode) Word {
	word := uint16(op) << OPCODE_SHIFT
	word |= field(l.addr, ADDR_SHIFT, ADDR_BITS)
	return Word(word & WORD_MASK)
}

func (l nopLayout) pack(op Opcode) Word {
	word := uint16(op) << OPCODE_SHIFT
	word |= field(l.payload, ADDR_SHIFT, ADDR_BITS)
	return Word(word & WORD_MASK)
}

// layoutOf maps a resolved operand list onto its format variant. The bool
// reports whether the operand count fits the opcode's shape; arity is the
// resolver's responsibility, so Encode treats a failure here as fatal.
func layoutOf(op Opcode, args []int) (layout, bool) {
	switch op.Format() {
	case FORMAT_R:
		if len(args) != 3 {
			return nil, false
		}
		return rLayout{args[0], args[1], args[2]}, true

	case FORMAT_I:
		switch len(args) {
		case 1:
			return iLayout{reg: args[0]}, true
		case 2:
			return iLayout{reg: args[0], imm: args[1]}, true
		}
		return nil, false

	case FORMAT_J:
		switch len(args) {
		case 0:
			return jLayout{}, true
		case 1:
			return jLayout{addr: args[0]}, true
		}
		return nil, false

	default:
		switch len(args) {
		case 0:
			return nopLayout{}, true
		case 1:
			return nopLayout{payload: args[0]}, true
		}
		return nil, false
	}
}

// arity reports the full operand count of an opcode's format, used for
// argument-count diagnostics
func arity(op Opcode) int {
	switch op.Format() {
	case FORMAT_R:
		return 3
	case FORMAT_I:
		return 2
	default:
		return 1
	}
}

// Encode packs a resolved instruction into its 11-bit machine word. Pure:
// operands entering here are already range-checked and shape-checked by the
// resolver, so there are no failure modes.
func Encode(instruction Instruction) Word {
	l, ok := layoutOf(instruction.Op, instruction.Args)

	if !ok {
		panic(fmt.Sprintf(
			"malformed operand list for %s: %v",
			instruction.Op,
			instruction.Args,
		))
	}

	return l.pack(instruction.Op)
}

// Decode inverts each format's bit layout, reproducing the full resolved
// operand list. Absent trailing operands decode as zero fields. The bool is
// false when the 4-bit opcode field does not name a P11 operation.
func Decode(word Word) (Instruction, bool) {
	op := Opcode(encoding.Field(uint16(word), OPCODE_SHIFT, 4))

	if !op.Valid() {
		return Instruction{}, false
	}

	switch op.Format() {
	case FORMAT_R:
		return Instruction{op, []int{
			int(encoding.Field(uint16(word), DEST_SHIFT, DEST_BITS)),
			int(encoding.Field(uint16(word), SRCA_SHIFT, SRCA_BITS)),
			int(encoding.Field(uint16(word), SRCB_SHIFT, SRCB_BITS)),
		}}, true

	case FORMAT_I:
		return Instruction{op, []int{
			int(encoding.Field(uint16(word), REG_SHIFT, REG_BITS)),
			int(encoding.Field(uint16(word), IMM_SHIFT, IMM_BITS)),
		}}, true

	default:
		return Instruction{op, []int{
			int(encoding.Field(uint16(word), ADDR_SHIFT, ADDR_BITS)),
		}}, true
	}
}
