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
	"strings"
)

type TokenType uint
type FormatType uint

// Opcode is one of the 14 fixed P11 operations. The numeric value doubles
// as the 4-bit code packed into the high bits of every machine word.
type Opcode uint16

func (op Opcode) Valid() bool {
	return int(op) < len(opcodeNames)
}

func (op Opcode) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Opcode(%d)", uint16(op))
	}

	return opcodeNames[op]
}

func (op Opcode) Format() FormatType {
	return opcodeFormats[op]
}

// ParseOpcode matches a mnemonic case-insensitively against the opcode set
func ParseOpcode(ident string) (Opcode, bool) {
	for op, name := range opcodeNames {
		if strings.EqualFold(ident, name) {
			return Opcode(op), true
		}
	}

	return 0, false
}

type Cursor struct {
	Line     int
	Column   int
	Byte     int64
	Size     int64
	LineByte int64
}

type Token struct {
	Type     TokenType
	Position Cursor
	Value    string
}

type TokenError interface {
	GetPosition() Cursor
}

type UnknownLabelError struct {
	Position   Cursor
	Received   string
	Suggestion string
}

func (err *UnknownLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownLabelError) Error() string {
	if err.Suggestion != "" {
		return fmt.Sprintf(
			"%02d:%02d: Unknown label '%s', did you mean '%s'?",
			err.Position.Line,
			err.Position.Column,
			err.Received,
			err.Suggestion,
		)
	}

	return fmt.Sprintf(
		"%02d:%02d: Unknown label '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type ImmediateOutOfRangeError struct {
	Position Cursor
	Received string
	Value    int64
}

func (err *ImmediateOutOfRangeError) GetPosition() Cursor {
	return err.Position
}

func (err *ImmediateOutOfRangeError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Immediate '%s' out of range\n\twant:[0, %d]\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Received,
		OPERAND_MAX,
		err.Value,
	)
}

type RedeclaredLabelError struct {
	Position Cursor
	Received string
}

func (err *RedeclaredLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *RedeclaredLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Redeclaration of label '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type InvalidNumArgumentsError struct {
	Position Cursor
	Required int
	Received int
}

func (err *InvalidNumArgumentsError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidNumArgumentsError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid number of arguments\n\twant:%d\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Required,
		err.Received,
	)
}

type InvalidLiteralError struct {
	Position Cursor
}

func (err *InvalidLiteralError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidLiteralError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid numeric literal",
		err.Position.Line,
		err.Position.Column,
	)
}

type UnexpectedCharacterError struct {
	Position Cursor
	Received rune
}

func (err *UnexpectedCharacterError) GetPosition() Cursor {
	return err.Position
}

func (err *UnexpectedCharacterError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unexpected character %c",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type UnknownOpcodeError struct {
	Position Cursor
	Received string
}

func (err *UnknownOpcodeError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownOpcodeError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown opcode '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type UnexpectedTokenError struct {
	Position Cursor
	Received string
	Expected string
}

func (err *UnexpectedTokenError) GetPosition() Cursor {
	return err.Position
}

func (err *UnexpectedTokenError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unexpected token '%s'\n\twant:%s",
		err.Position.Line,
		err.Position.Column,
		err.Received,
		err.Expected,
	)
}

// UnusedDataWarning reports a data label with no referencing identifier
// anywhere in the program. Non-fatal: assembly continues and the data word
// is still emitted.
type UnusedDataWarning struct {
	Position Cursor
	Received string
}

func (err *UnusedDataWarning) GetPosition() Cursor {
	return err.Position
}

func (err *UnusedDataWarning) Error() string {
	return fmt.Sprintf("unused data '%s'", err.Received)
}
