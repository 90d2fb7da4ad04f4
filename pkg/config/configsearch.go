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

package config

import (
	"fmt"

	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/narrowstacks/dorkroom-core/pkg/catalog/matcher"
)

const (
	ScoringComposite   = "composite"
	ScoringSimple      = "simple"
	DefaultSearchLimit = 10
)

type Search struct {
	FilmThreshold        *float64 `toml:"film_threshold,omitempty"`
	DeveloperThreshold   *float64 `toml:"developer_threshold,omitempty"`
	CombinationThreshold *float64 `toml:"combination_threshold,omitempty"`
	SimpleThreshold      *float64 `toml:"simple_threshold,omitempty"`
	Scoring              string   `toml:"scoring"`
	Limit                int      `toml:"limit"`
}

func (s Search) validate() error {
	switch s.Scoring {
	case "", ScoringComposite, ScoringSimple:
		return nil
	default:
		return fmt.Errorf("invalid search scoring %q, expecting %q or %q", s.Scoring, ScoringComposite, ScoringSimple)
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func (c *Instance) Scoring() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Search.Scoring == "" {
		return ScoringComposite
	}
	return c.vals.Search.Scoring
}

// SearchLimit is the default number of fuzzy results returned.
func (c *Instance) SearchLimit() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Search.Limit <= 0 {
		return DefaultSearchLimit
	}
	return c.vals.Search.Limit
}

// Policies builds the per-kind scoring policies from the selected scoring
// mode and any threshold overrides.
func (c *Instance) Policies() catalog.Policies {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.vals.Search
	if s.Scoring == ScoringSimple {
		return catalog.SimplePolicies(orDefault(s.SimpleThreshold, matcher.SimpleThreshold))
	}

	p := catalog.DefaultPolicies()
	p.Film.Threshold = orDefault(s.FilmThreshold, matcher.FilmThreshold)
	p.Developer.Threshold = orDefault(s.DeveloperThreshold, matcher.DeveloperThreshold)
	p.Combination.Threshold = orDefault(s.CombinationThreshold, matcher.CombinationThreshold)
	return p
}
