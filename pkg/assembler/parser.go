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
	"bufio"
	"io"

	"github.com/gop11/gop11/pkg/encoding"
)

// lexeme is one scanned element of a source line: either a word token or a
// single punctuation character (':' or ',')
type lexeme struct {
	token Token
	punct byte
}

func isDigit(char byte) bool {
	return char >= '0' && char <= '9'
}

func isAlpha(char byte) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}

func isAlnum(char byte) bool {
	return isDigit(char) || isAlpha(char)
}

func isRegister(ident string) bool {
	if len(ident) < 2 || (ident[0] != 'r' && ident[0] != 'R') {
		return false
	}

	for i := 1; i < len(ident); i++ {
		if !isDigit(ident[i]) {
			return false
		}
	}

	return true
}

func tokenCursor(line Cursor, column, size int) Cursor {
	return Cursor{
		Line:     line.Line,
		Column:   column,
		Byte:     line.LineByte + int64(column-1),
		Size:     int64(size),
		LineByte: line.LineByte,
	}
}

func lexLine(line string, cursor Cursor) (lexemes []lexeme, errs []error) {
	pos := 0

	for pos < len(line) {
		char := line[pos]
		column := pos + 1

		switch {
		// Comments run to the end of the line
		case char == ';':
			return lexemes, errs

		case char == ' ' || char == '\t' || char == '\r':
			pos++

		case char == ':' || char == ',':
			lexemes = append(lexemes, lexeme{
				token: Token{Position: tokenCursor(cursor, column, 1)},
				punct: char,
			})
			pos++

		// Numeric literal, any base; the exact form is validated against
		// the literal grammar once the token is complete
		case isDigit(char) || char == '-':
			start := pos
			pos++
			for pos < len(line) && (isAlnum(line[pos]) || line[pos] == '_') {
				pos++
			}

			lexemes = append(lexemes, lexeme{
				token: Token{
					Type:     TOKEN_NUMBER,
					Position: tokenCursor(cursor, column, pos-start),
					Value:    line[start:pos],
				},
			})

		case isAlpha(char) || char == '_':
			start := pos
			pos++
			for pos < len(line) && (isAlnum(line[pos]) || line[pos] == '_') {
				pos++
			}

			value := line[start:pos]
			tokenType := TOKEN_IDENT

			if isRegister(value) {
				tokenType = TOKEN_REGISTER
			}

			lexemes = append(lexemes, lexeme{
				token: Token{
					Type:     tokenType,
					Position: tokenCursor(cursor, column, pos-start),
					Value:    value,
				},
			})

		default:
			errs = append(errs, &UnexpectedCharacterError{
				tokenCursor(cursor, column, 1), rune(char),
			})
			pos++
		}
	}

	return lexemes, errs
}

func parseOperands(lexemes []lexeme) (operands []Token, errs []error) {
	expectOperand := true

	for i := range lexemes {
		lx := &lexemes[i]

		if expectOperand {
			if lx.punct != 0 {
				errs = append(errs, &UnexpectedTokenError{
					lx.token.Position, string(lx.punct), "operand",
				})
				continue
			}

			if lx.token.Type == TOKEN_NUMBER {
				if _, err := encoding.DecodeNumber(lx.token.Value); err != nil {
					errs = append(
						errs, &InvalidLiteralError{lx.token.Position},
					)
				}
			}

			operands = append(operands, lx.token)
			expectOperand = false
		} else {
			if lx.punct != ',' {
				received := string(lx.punct)
				if lx.punct == 0 {
					received = lx.token.Value
				}

				errs = append(errs, &UnexpectedTokenError{
					lx.token.Position, received, "','",
				})
				continue
			}

			expectOperand = true
		}
	}

	if expectOperand && len(operands) > 0 {
		last := lexemes[len(lexemes)-1]
		errs = append(errs, &UnexpectedTokenError{
			last.token.Position, string(last.punct), "operand",
		})
	}

	return operands, errs
}

func parseLine(lexemes []lexeme, program *Program) (errs []error) {
	var label *Token
	rest := lexemes

	if len(rest) >= 2 &&
		rest[0].punct == 0 &&
		rest[0].token.Type == TOKEN_IDENT &&
		rest[1].punct == ':' {
		token := rest[0].token
		label = &token
		rest = rest[2:]
	}

	if len(rest) == 0 {
		// A bare label binds to nothing: every statement wraps exactly one
		// instruction and every data declaration carries a literal
		if label != nil {
			errs = append(errs, &UnexpectedTokenError{
				label.Position, label.Value, "instruction or literal",
			})
		}

		return errs
	}

	head := rest[0]

	if head.punct != 0 {
		return append(errs, &UnexpectedTokenError{
			head.token.Position, string(head.punct), "instruction or literal",
		})
	}

	switch head.token.Type {
	case TOKEN_NUMBER:
		if label == nil {
			return append(errs, &UnexpectedTokenError{
				head.token.Position, head.token.Value, "label before literal",
			})
		}

		if len(rest) > 1 {
			next := rest[1]
			received := string(next.punct)
			if next.punct == 0 {
				received = next.token.Value
			}

			return append(errs, &UnexpectedTokenError{
				next.token.Position, received, "end of line",
			})
		}

		if _, err := encoding.DecodeNumber(head.token.Value); err != nil {
			return append(errs, &InvalidLiteralError{head.token.Position})
		}

		program.Data = append(program.Data, DataDecl{
			Label: *label,
			Value: head.token,
		})

	case TOKEN_IDENT:
		if _, ok := ParseOpcode(head.token.Value); !ok {
			return append(errs, &UnknownOpcodeError{
				head.token.Position, head.token.Value,
			})
		}

		operands, operandErrs := parseOperands(rest[1:])
		errs = append(errs, operandErrs...)

		if len(operandErrs) == 0 {
			program.Statements = append(program.Statements, Statement{
				Label:    label,
				Mnemonic: head.token,
				Operands: operands,
			})
		}

	default:
		errs = append(errs, &UnexpectedTokenError{
			head.token.Position, head.token.Value, "instruction or literal",
		})
	}

	return errs
}

// ParseSource scans P11 assembly into the parse tree consumed by the core.
// Statement and data-declaration nodes are gathered in source order; any
// errors abort assembly before collection begins.
func ParseSource(input io.Reader) (*Program, []error) {
	var program Program
	var errs []error

	scanner := bufio.NewScanner(input)
	cursor := Cursor{Line: 1, Column: 0, Size: 0, Byte: 0}

	for scanner.Scan() {
		line := scanner.Text()

		lexemes, lexErrs := lexLine(line, cursor)
		errs = append(errs, lexErrs...)

		if len(lexErrs) == 0 {
			errs = append(errs, parseLine(lexemes, &program)...)
		}

		cursor.Line++
		cursor.Byte += int64(len(line) + 1)
		cursor.LineByte += int64(len(line) + 1)
	}

	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}

	return &program, errs
}
