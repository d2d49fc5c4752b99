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

// Statement is one instruction line, optionally labeled. The mnemonic has
// already been matched against the opcode set by the parser; operand tokens
// are carried raw and resolved later.
type Statement struct {
	Label    *Token
	Mnemonic Token
	Operands []Token
}

// DataDecl binds a label to a single literal value in the data region
type DataDecl struct {
	Label Token
	Value Token
}

// Program is the parse tree consumed by the assembler core: statement and
// data-declaration nodes in source order.
type Program struct {
	Statements []Statement
	Data       []DataDecl
}
