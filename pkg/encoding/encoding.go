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

package encoding

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Decodes a numeric literal in any common base: 42, 0x2A, 0o52, 0b101010
func DecodeNumber(s string) (int64, error) {
	return strconv.ParseInt(s, 0, 64)
}

// Extracts the bit field of the given width starting at shift
func Field(word uint16, shift, width uint) uint16 {
	return (word >> shift) & ((1 << width) - 1)
}

// Formats a machine word as an 11-character zero-padded binary string
func FormatWord(word uint16) string {
	return fmt.Sprintf("%011b", word)
}

// Parses one line of a binary listing as produced by FormatWord
func ParseWord(s string) (uint16, error) {
	s = strings.TrimSpace(s)

	if len(s) != 11 {
		return 0, errors.New("listing words are 11 binary digits")
	}

	result, err := strconv.ParseUint(s, 2, 16)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}
