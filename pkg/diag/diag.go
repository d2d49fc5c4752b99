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

// Package diag renders structured diagnostics produced by the assembler
// core. The core reports kind, message, source location, and optional
// suggestion; everything about presentation lives here.
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/gop11/gop11/pkg/assembler"
)

type Level uint

const (
	LEVEL_ERROR Level = iota
	LEVEL_WARNING
	LEVEL_INFO
)

const (
	styleReset  = "\033[0m"
	styleBright = "\033[1m"
	styleRed    = "\033[31m"
	styleYellow = "\033[33m"
	styleGreen  = "\033[32m"
)

func (level Level) name() string {
	switch level {
	case LEVEL_WARNING:
		return "warning"
	case LEVEL_INFO:
		return "info"
	default:
		return "error"
	}
}

func (level Level) color() string {
	switch level {
	case LEVEL_WARNING:
		return styleYellow
	case LEVEL_INFO:
		return styleGreen
	default:
		return styleRed
	}
}

// Diagnostic is one renderable finding. Line and Column are 1-based;
// a zero Line means no source location is attached.
type Diagnostic struct {
	Level   Level
	Message string
	File    string
	Line    int
	Column  int

	// Snippet is the full source line the finding points into; Span is the
	// length of the offending token's underline
	Snippet string
	Span    int
}

// Printer writes diagnostics to a sink, optionally with ANSI color
type Printer struct {
	out   io.Writer
	color bool
}

func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{out: out, color: color}
}

// NewStderrPrinter builds a Printer on standard error, coloring only when
// stderr is a terminal
func NewStderrPrinter() *Printer {
	return &Printer{
		out:   colorable.NewColorableStderr(),
		color: isatty.IsTerminal(os.Stderr.Fd()),
	}
}

func (p *Printer) style(s string) string {
	if !p.color {
		return ""
	}

	return s
}

func (p *Printer) Print(d Diagnostic) {
	location := d.File

	if d.Line > 0 {
		location = fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
	}

	fmt.Fprintf(
		p.out,
		"%s%s:%s %s%s:%s %s\n",
		p.style(styleBright),
		location,
		p.style(styleReset),
		p.style(d.Level.color()),
		d.Level.name(),
		p.style(styleReset),
		d.Message,
	)

	if d.Line > 0 && d.Snippet != "" {
		gutter := len(fmt.Sprint(d.Line))
		underline := "^"

		if d.Span > 1 {
			underline += strings.Repeat("~", d.Span-1)
		}

		fmt.Fprintf(
			p.out,
			"    %d | %s\n    %s | %s%s%s%s\n",
			d.Line,
			d.Snippet,
			strings.Repeat(" ", gutter),
			strings.Repeat(" ", d.Column-1),
			p.style(d.Level.color()),
			underline,
			p.style(styleReset),
		)
	}
}

func snippetAt(source string, cursor assembler.Cursor) string {
	if cursor.LineByte < 0 || cursor.LineByte > int64(len(source)) {
		return ""
	}

	line := source[cursor.LineByte:]

	if end := strings.IndexByte(line, '\n'); end >= 0 {
		line = line[:end]
	}

	return line
}

// FromError maps a core error onto a renderable diagnostic, attaching the
// source line and token underline when the error carries a position
func FromError(file, source string, err error) Diagnostic {
	d := Diagnostic{
		Level:   LEVEL_ERROR,
		Message: err.Error(),
		File:    file,
	}

	if _, ok := err.(*assembler.UnusedDataWarning); ok {
		d.Level = LEVEL_WARNING
	}

	if tokenErr, ok := err.(assembler.TokenError); ok {
		cursor := tokenErr.GetPosition()

		if cursor.Line > 0 {
			d.Line = cursor.Line
			d.Column = cursor.Column
			d.Span = int(cursor.Size)
			d.Snippet = snippetAt(source, cursor)

			// The message body already carries the location prefix for
			// plain log output; strip it under snippet rendering
			prefix := fmt.Sprintf("%02d:%02d: ", cursor.Line, cursor.Column)
			d.Message = strings.TrimPrefix(d.Message, prefix)
		}
	}

	return d
}
