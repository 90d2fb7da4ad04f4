// Dorkroom Core
// Copyright (c) 2026 The Dorkroom Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Dorkroom Core.
//
// Dorkroom Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dorkroom Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dorkroom Core.  If not, see <http://www.gnu.org/licenses/>.

package matcher

import (
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Similarity is the string-similarity capability used for scoring. Every
// measure returns a value in [0, 100] and expects already-folded input.
type Similarity interface {
	// TokenSortRatio compares the inputs after sorting their
	// whitespace-separated tokens, so word order does not matter.
	TokenSortRatio(a, b string) float64
	// PartialRatio is the best Ratio between the shorter input and any
	// equally long window of the longer one.
	PartialRatio(a, b string) float64
	// Ratio is the plain normalised edit similarity.
	Ratio(a, b string) float64
	// TokenSetRatio compares shared and leftover token sets and tolerates
	// extra words on either side.
	TokenSetRatio(a, b string) float64
}

// Unavailable is a Similarity that makes the matcher skip scoring and
// return records in catalog order. All its measures report zero.
var Unavailable Similarity = unavailable{}

type unavailable struct{}

func (unavailable) TokenSortRatio(string, string) float64 { return 0 }
func (unavailable) PartialRatio(string, string) float64   { return 0 }
func (unavailable) Ratio(string, string) float64          { return 0 }
func (unavailable) TokenSetRatio(string, string) float64  { return 0 }

func isUnavailable(s Similarity) bool {
	if s == nil {
		return true
	}
	_, ok := s.(unavailable)
	return ok
}

// LCSSimilarity implements Similarity on top of the longest common
// subsequence, which gives the indel-normalised ratio
// 2*LCS / (len(a)+len(b)).
type LCSSimilarity struct{}

func (LCSSimilarity) Ratio(a, b string) float64 {
	return ratio([]rune(a), []rune(b))
}

func ratio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	lcs := edlib.LCS(string(a), string(b))
	return 100 * float64(2*lcs) / float64(total)
}

func (LCSSimilarity) PartialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		if len(long) == 0 {
			return 100
		}
		return 0
	}

	m, n := len(short), len(long)
	best := 0.0
	// Windows slide past both ends so a needle hanging off the start or
	// end of the haystack is still aligned.
	for start := -(m - 1); start < n; start++ {
		lo := max(start, 0)
		hi := min(start+m, n)
		score := ratio(short, long[lo:hi])
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

func (s LCSSimilarity) TokenSortRatio(a, b string) float64 {
	return s.Ratio(sortedTokens(a), sortedTokens(b))
}

func (s LCSSimilarity) TokenSetRatio(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var inter, onlyA, onlyB []string
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			inter = append(inter, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range tb {
		if _, ok := ta[tok]; !ok {
			onlyB = append(onlyB, tok)
		}
	}
	slices.Sort(inter)
	slices.Sort(onlyA)
	slices.Sort(onlyB)

	// One side is a subset of the other.
	if len(inter) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	sect := strings.Join(inter, " ")
	combinedA := joinNonEmpty(sect, strings.Join(onlyA, " "))
	combinedB := joinNonEmpty(sect, strings.Join(onlyB, " "))

	best := s.Ratio(combinedA, combinedB)
	if sect != "" {
		best = max(best, s.Ratio(sect, combinedA), s.Ratio(sect, combinedB))
	}
	return best
}

func sortedTokens(s string) string {
	toks := strings.Fields(s)
	slices.Sort(toks)
	return strings.Join(toks, " ")
}

func tokenSet(s string) map[string]struct{} {
	toks := strings.Fields(s)
	set := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		set[t] = struct{}{}
	}
	return set
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
