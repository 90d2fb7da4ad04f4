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

import "strings"

// Mode selects how the base similarity signals are combined.
type Mode int

const (
	// ModeComposite is the weighted five-signal score.
	ModeComposite Mode = iota
	// ModeSimple uses token-sort alone, or a discounted partial score when
	// the query is a strong substring of the text.
	ModeSimple
)

func (m Mode) String() string {
	if m == ModeSimple {
		return "simple"
	}
	return "composite"
}

// BonusScope picks the text the word and prefix bonuses are checked against.
type BonusScope int

const (
	BonusPrimary BonusScope = iota
	BonusCombined
)

// Weights of the composite signals. They are expected to sum to 1.
type Weights struct {
	TokenSort        float64
	Partial          float64
	Ratio            float64
	TokenSet         float64
	SecondaryPartial float64
}

// DefaultWeights is the weighting used for films, developers and
// combinations.
var DefaultWeights = Weights{
	TokenSort:        0.30,
	Partial:          0.25,
	Ratio:            0.20,
	TokenSet:         0.15,
	SecondaryPartial: 0.10,
}

// Policy is the complete scoring configuration for one kind of record.
type Policy struct {
	Weights Weights
	// Threshold a score must exceed for the record to be kept.
	Threshold float64
	// ExactWordBonus is added once per query word found as a whole word.
	ExactWordBonus float64
	// PrefixBonus is added when the text starts with the whole query.
	PrefixBonus float64
	// WordPrefixBonus is added instead when some word starts with the query.
	WordPrefixBonus float64
	// StrongPartial is the partial score above which ModeSimple uses the
	// discounted partial score.
	StrongPartial float64
	// PartialDiscount multiplies the partial score in ModeSimple.
	PartialDiscount float64
	Mode            Mode
	BonusScope      BonusScope
}

// Score thresholds used by the default policies.
const (
	FilmThreshold        = 40
	DeveloperThreshold   = 40
	CombinationThreshold = 35
	SimpleThreshold      = 60
)

// CompositePolicy is the five-signal policy with the standard bonuses.
func CompositePolicy(threshold float64, scope BonusScope) Policy {
	return Policy{
		Mode:            ModeComposite,
		Weights:         DefaultWeights,
		Threshold:       threshold,
		ExactWordBonus:  10,
		PrefixBonus:     15,
		WordPrefixBonus: 10,
		BonusScope:      scope,
	}
}

// SimplePolicy is the reduced two-signal policy over the combined text.
// It applies no bonuses.
func SimplePolicy(threshold float64) Policy {
	return Policy{
		Mode:            ModeSimple,
		Threshold:       threshold,
		StrongPartial:   80,
		PartialDiscount: 0.9,
		BonusScope:      BonusCombined,
	}
}

// Fields is the text a record exposes to the matcher. Both parts must
// already be folded.
type Fields struct {
	Primary   string
	Secondary string
}

func (f Fields) combined() string {
	return joinNonEmpty(f.Primary, f.Secondary)
}

// Score computes a record's score for an already-folded query.
func (p Policy) Score(sim Similarity, query string, f Fields) float64 {
	var score float64
	switch p.Mode {
	case ModeSimple:
		text := f.combined()
		tokenScore := sim.TokenSortRatio(query, text)
		partialScore := sim.PartialRatio(query, text)
		score = tokenScore
		if partialScore > p.StrongPartial {
			score = max(tokenScore, partialScore*p.PartialDiscount)
		}
	default:
		w := p.Weights
		score = sim.TokenSortRatio(query, f.Primary)*w.TokenSort +
			sim.PartialRatio(query, f.Primary)*w.Partial +
			sim.Ratio(query, f.Primary)*w.Ratio +
			sim.TokenSetRatio(query, f.Primary)*w.TokenSet
		if f.Secondary != "" {
			score += sim.PartialRatio(query, f.Secondary) * w.SecondaryPartial
		}
	}
	return score + p.bonus(query, f)
}

func (p Policy) bonus(query string, f Fields) float64 {
	if p.ExactWordBonus == 0 && p.PrefixBonus == 0 && p.WordPrefixBonus == 0 {
		return 0
	}

	text := f.Primary
	if p.BonusScope == BonusCombined {
		text = f.combined()
	}
	words := strings.Fields(text)
	wordSet := make(map[string]struct{}, len(words))
	for _, w := range words {
		wordSet[w] = struct{}{}
	}

	var bonus float64
	for _, qw := range strings.Fields(query) {
		if _, ok := wordSet[qw]; ok {
			bonus += p.ExactWordBonus
		}
	}

	if strings.HasPrefix(text, query) {
		bonus += p.PrefixBonus
	} else {
		for _, w := range words {
			if strings.HasPrefix(w, query) {
				bonus += p.WordPrefixBonus
				break
			}
		}
	}
	return bonus
}

// Keep reports whether a score passes the policy threshold.
func (p Policy) Keep(score float64) bool {
	return score > p.Threshold
}
