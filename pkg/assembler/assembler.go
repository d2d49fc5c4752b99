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
	"strconv"

	"github.com/gop11/gop11/pkg/encoding"
)

// RawInstruction is a decoded opcode with its unresolved operand tokens
type RawInstruction struct {
	Op       Opcode
	Mnemonic Token
	Operands []Token
}

// Collection is the finished snapshot of the symbol-collection pass: the
// ordered instruction and data lists, both label tables, the set of
// referenced identifiers, and the statement count. It is read-only once
// built; the resolver never mutates it.
type Collection struct {
	Instructions []RawInstruction
	Data         []DataDecl
	CodeLabels   map[string]uint16
	DataLabels   map[string]uint16
	Referenced   map[string]bool
	Statements   uint16
}

// Resolution is the fully resolved program: every operand collapsed to an
// integer in [0, OPERAND_MAX], data labels relocated past the code region,
// and non-fatal warnings gathered along the way.
type Resolution struct {
	Instructions []Instruction
	Data         []Instruction
	Symbols      map[string]uint16
	Warnings     []error
}

func (c *Collection) bindLabel(
	table map[string]uint16, label Token, addr uint16,
) error {
	_, inCode := c.CodeLabels[label.Value]
	_, inData := c.DataLabels[label.Value]

	// One namespace: a data label may not alias a code label or vice versa
	if inCode || inData {
		return &RedeclaredLabelError{label.Position, label.Value}
	}

	table[label.Value] = addr
	return nil
}

// Collect traverses the parse tree once, binding code labels to their
// statement index and data labels to their declaration index, decoding
// opcodes, and recording every referenced identifier. No resolution happens
// here; the returned snapshot feeds the resolver.
func Collect(program *Program) (*Collection, error) {
	collection := &Collection{
		CodeLabels: make(map[string]uint16),
		DataLabels: make(map[string]uint16),
		Referenced: make(map[string]bool),
	}

	for _, statement := range program.Statements {
		if statement.Label != nil {
			err := collection.bindLabel(
				collection.CodeLabels,
				*statement.Label,
				collection.Statements,
			)

			if err != nil {
				return nil, err
			}
		}

		op, ok := ParseOpcode(statement.Mnemonic.Value)

		// The parser guarantees valid mnemonics
		if !ok {
			panic(fmt.Sprintf("unknown opcode %q", statement.Mnemonic.Value))
		}

		for _, operand := range statement.Operands {
			if operand.Type == TOKEN_IDENT {
				collection.Referenced[operand.Value] = true
			}
		}

		collection.Instructions = append(collection.Instructions,
			RawInstruction{
				Op:       op,
				Mnemonic: statement.Mnemonic,
				Operands: statement.Operands,
			},
		)

		collection.Statements++
	}

	for i, decl := range program.Data {
		err := collection.bindLabel(
			collection.DataLabels, decl.Label, uint16(i),
		)

		if err != nil {
			return nil, err
		}

		collection.Data = append(collection.Data, decl)
	}

	return collection, nil
}

func rangeCheck(token Token, value int64) error {
	if value < 0 || value > OPERAND_MAX {
		return &ImmediateOutOfRangeError{
			Position: token.Position,
			Received: token.Value,
			Value:    value,
		}
	}

	return nil
}

func (c *Collection) resolveToken(
	token Token, relocated map[string]uint16,
) (int, error) {
	var value int64

	switch token.Type {
	case TOKEN_REGISTER:
		index, err := strconv.ParseInt(token.Value[1:], 10, 64)

		if err != nil {
			return 0, &InvalidLiteralError{token.Position}
		}

		value = index

	case TOKEN_NUMBER:
		literal, err := encoding.DecodeNumber(token.Value)

		if err != nil {
			return 0, &InvalidLiteralError{token.Position}
		}

		value = literal

	case TOKEN_IDENT:
		// Code labels shadow data labels on lookup
		if addr, ok := c.CodeLabels[token.Value]; ok {
			value = int64(addr)
		} else if addr, ok := relocated[token.Value]; ok {
			value = int64(addr)
		} else {
			return 0, &UnknownLabelError{
				Position: token.Position,
				Received: token.Value,
				Suggestion: closestSymbol(
					token.Value, c.CodeLabels, c.DataLabels,
				),
			}
		}

	default:
		panic(fmt.Sprintf("unresolvable token %q", token.Value))
	}

	if err := rangeCheck(token, value); err != nil {
		return 0, err
	}

	return int(value), nil
}

// Resolve relocates the data region to sit immediately after the code
// region, then collapses every operand token to a bounded integer. Fatal
// resolution errors abort with no partial output; unused-data warnings are
// collected without altering the instruction stream.
func (c *Collection) Resolve() (*Resolution, error) {
	relocated := make(map[string]uint16, len(c.DataLabels))

	for name, addr := range c.DataLabels {
		relocated[name] = addr + c.Statements
	}

	resolution := &Resolution{
		Symbols: make(map[string]uint16, len(c.CodeLabels)+len(relocated)),
	}

	for name, addr := range c.CodeLabels {
		resolution.Symbols[name] = addr
	}

	for name, addr := range relocated {
		resolution.Symbols[name] = addr
	}

	for _, raw := range c.Instructions {
		args := make([]int, 0, len(raw.Operands))

		for _, token := range raw.Operands {
			value, err := c.resolveToken(token, relocated)

			if err != nil {
				return nil, err
			}

			args = append(args, value)
		}

		if _, ok := layoutOf(raw.Op, args); !ok {
			return nil, &InvalidNumArgumentsError{
				Position: raw.Mnemonic.Position,
				Required: arity(raw.Op),
				Received: len(args),
			}
		}

		resolution.Instructions = append(resolution.Instructions,
			Instruction{Op: raw.Op, Args: args},
		)
	}

	// Data literals undergo the same range check and are carried in the
	// payload of a NOP-tagged word
	for _, decl := range c.Data {
		literal, err := encoding.DecodeNumber(decl.Value.Value)

		if err != nil {
			return nil, &InvalidLiteralError{decl.Value.Position}
		}

		if err := rangeCheck(decl.Value, literal); err != nil {
			return nil, err
		}

		resolution.Data = append(resolution.Data,
			Instruction{Op: OPCODE_NOP, Args: []int{int(literal)}},
		)
	}

	// Warn for declared data labels nothing ever references, in
	// declaration order
	for _, decl := range c.Data {
		if !c.Referenced[decl.Label.Value] {
			resolution.Warnings = append(resolution.Warnings,
				&UnusedDataWarning{decl.Label.Position, decl.Label.Value},
			)
		}
	}

	return resolution, nil
}

// Encode packs the resolved program into machine words: one per code
// instruction followed by one per data declaration, in that order
func (r *Resolution) Encode() []MachineCode {
	result := make(
		[]MachineCode, 0, len(r.Instructions)+len(r.Data),
	)

	for _, instruction := range r.Instructions {
		result = append(result, MachineCode{
			Word:   Encode(instruction),
			Source: instruction,
		})
	}

	for _, data := range r.Data {
		result = append(result, MachineCode{
			Word:   Encode(data),
			Source: data,
		})
	}

	return result
}

// Assemble runs the whole pipeline over a parse tree. Fatal errors abort
// with no output; warnings accompany a successful result.
func Assemble(program *Program) ([]MachineCode, []error, error) {
	collection, err := Collect(program)

	if err != nil {
		return nil, nil, err
	}

	resolution, err := collection.Resolve()

	if err != nil {
		return nil, nil, err
	}

	return resolution.Encode(), resolution.Warnings, nil
}
