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

const (
	TOKEN_NONE TokenType = iota
	TOKEN_REGISTER
	TOKEN_NUMBER
	TOKEN_IDENT
)

const (
	OPCODE_ADD Opcode = iota
	OPCODE_SUB
	OPCODE_SLT
	OPCODE_LI
	OPCODE_LW
	OPCODE_SW
	OPCODE_BEQ
	OPCODE_BNE
	OPCODE_PUSH
	OPCODE_POP
	OPCODE_J
	OPCODE_JAL
	OPCODE_JR
	OPCODE_NOP
)

const (
	FORMAT_R FormatType = iota
	FORMAT_I
	FORMAT_J
	FORMAT_NOP
)

// P11 word layout. Every instruction is 11 bits: a 4-bit opcode followed by
// 7 bits of operand fields whose meaning depends on the format family.
const (
	WORD_BITS = 11
	WORD_MASK = (1 << WORD_BITS) - 1

	OPCODE_SHIFT = 7

	// R: | opcode | dest:2 | srcA:3 | srcB:2 |
	DEST_SHIFT = 5
	DEST_BITS  = 2
	SRCA_SHIFT = 2
	SRCA_BITS  = 3
	SRCB_SHIFT = 0
	SRCB_BITS  = 2

	// I: | opcode | reg:2 | imm:5 |
	REG_SHIFT = 5
	REG_BITS  = 2
	IMM_SHIFT = 0
	IMM_BITS  = 5

	// J and NOP: | opcode | addr:7 |
	ADDR_SHIFT = 0
	ADDR_BITS  = 7
)

// Every resolved operand, register index, immediate, or address must land
// in this range before encoding.
const OPERAND_MAX = 31

var opcodeNames = [...]string{
	OPCODE_ADD:  "add",
	OPCODE_SUB:  "sub",
	OPCODE_SLT:  "slt",
	OPCODE_LI:   "li",
	OPCODE_LW:   "lw",
	OPCODE_SW:   "sw",
	OPCODE_BEQ:  "beq",
	OPCODE_BNE:  "bne",
	OPCODE_PUSH: "push",
	OPCODE_POP:  "pop",
	OPCODE_J:    "j",
	OPCODE_JAL:  "jal",
	OPCODE_JR:   "jr",
	OPCODE_NOP:  "nop",
}

var opcodeFormats = [...]FormatType{
	OPCODE_ADD:  FORMAT_R,
	OPCODE_SUB:  FORMAT_R,
	OPCODE_SLT:  FORMAT_R,
	OPCODE_LI:   FORMAT_I,
	OPCODE_LW:   FORMAT_I,
	OPCODE_SW:   FORMAT_I,
	OPCODE_BEQ:  FORMAT_I,
	OPCODE_BNE:  FORMAT_I,
	OPCODE_PUSH: FORMAT_I,
	OPCODE_POP:  FORMAT_I,
	OPCODE_J:    FORMAT_J,
	OPCODE_JAL:  FORMAT_J,
	OPCODE_JR:   FORMAT_J,
	OPCODE_NOP:  FORMAT_NOP,
}
