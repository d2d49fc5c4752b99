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
	"github.com/agnivade/levenshtein"
)

// Candidates less similar than this are not worth suggesting
const suggestionCutoff = 0.6

// closestSymbol finds the known label nearest to name by edit distance over
// the union of the given symbol tables. Returns "" when nothing is close
// enough; the suggestion is a pure enrichment of the error value, never
// required for correctness.
func closestSymbol(name string, tables ...map[string]uint16) string {
	best := ""
	bestScore := 0.0

	for _, table := range tables {
		for candidate := range table {
			distance := levenshtein.ComputeDistance(name, candidate)
			size := len(name) + len(candidate)

			if size == 0 {
				continue
			}

			score := float64(size-distance) / float64(size)

			if score < suggestionCutoff {
				continue
			}

			// Ties break lexically so map order never leaks out
			if score > bestScore ||
				(score == bestScore && candidate < best) {
				best = candidate
				bestScore = score
			}
		}
	}

	return best
}
