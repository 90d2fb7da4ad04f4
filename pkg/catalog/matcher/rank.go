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

// Package matcher ranks catalog records by approximate textual similarity
// to a query, tolerating reordered words, partial names and extra tokens.
package matcher

import (
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// debugScoreFloor is the score above which candidate evaluations are
// debug logged.
const debugScoreFloor = 30

// Scored is a record with the score it was ranked by.
type Scored[T any] struct {
	Item  T       `json:"item"`
	Score float64 `json:"score"`
}

// Matcher scores records with a Similarity capability. A Matcher with a
// nil or Unavailable capability runs in degraded mode: records come back
// unscored in catalog order.
type Matcher struct {
	sim      Similarity
	warnOnce sync.Once
}

// New returns a Matcher using sim. Pass nil or Unavailable for degraded
// mode.
func New(sim Similarity) *Matcher {
	return &Matcher{sim: sim}
}

// NewDefault returns a Matcher backed by LCSSimilarity.
func NewDefault() *Matcher {
	return New(LCSSimilarity{})
}

// Degraded reports whether the matcher has no similarity capability.
func (m *Matcher) Degraded() bool {
	return isUnavailable(m.sim)
}

// Rank scores every item against query using policy, drops those at or
// below the threshold, orders the rest by descending score and returns at
// most limit of them. Ties keep the order of items. A limit of zero or
// less returns every match. A blank query matches nothing.
func Rank[T any](
	m *Matcher,
	policy Policy,
	query string,
	items []T,
	fields func(T) Fields,
	limit int,
) []Scored[T] {
	q := strings.TrimSpace(Fold(query))
	if q == "" {
		return nil
	}

	if m.Degraded() {
		m.warnOnce.Do(func() {
			log.Warn().Msg("no similarity capability available, fuzzy search returns unranked records")
		})
		n := len(items)
		if limit > 0 && limit < n {
			n = limit
		}
		out := make([]Scored[T], n)
		for i := range n {
			out[i] = Scored[T]{Item: items[i]}
		}
		return out
	}

	var results []Scored[T]
	for _, item := range items {
		f := fields(item)
		score := policy.Score(m.sim, q, f)
		if score > debugScoreFloor {
			log.Debug().
				Str("query", q).
				Str("candidate", f.Primary).
				Float64("score", score).
				Float64("threshold", policy.Threshold).
				Msg("fuzzy candidate evaluation")
		}
		if policy.Keep(score) {
			results = append(results, Scored[T]{Item: item, Score: score})
		}
	}

	slices.SortStableFunc(results, func(a, b Scored[T]) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
