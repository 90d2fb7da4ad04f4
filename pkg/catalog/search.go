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

package catalog

import (
	"strings"

	"github.com/narrowstacks/dorkroom-core/pkg/catalog/matcher"
)

// SearchFilms returns the films whose name or brand contains query,
// ignoring case, in catalog order. A non-empty colorType also filters on
// the film's color type.
func (idx *Index) SearchFilms(query string, colorType ColorType) ([]Film, error) {
	s, err := idx.current()
	if err != nil {
		return nil, err
	}
	q := matcher.Fold(query)
	var out []Film
	for _, f := range s.films {
		if colorType != "" && f.ColorType != colorType {
			continue
		}
		if containsFolded(f.Name, q) || containsFolded(f.Brand, q) {
			out = append(out, f.clone())
		}
	}
	return out, nil
}

// SearchDevelopers returns the developers whose name or manufacturer
// contains query, ignoring case, in catalog order.
func (idx *Index) SearchDevelopers(query string) ([]Developer, error) {
	s, err := idx.current()
	if err != nil {
		return nil, err
	}
	q := matcher.Fold(query)
	var out []Developer
	for _, d := range s.developers {
		if containsFolded(d.Name, q) || containsFolded(d.Manufacturer, q) {
			out = append(out, d.clone())
		}
	}
	return out, nil
}

func containsFolded(text, foldedQuery string) bool {
	return strings.Contains(matcher.Fold(text), foldedQuery)
}

// detach replaces each ranked item with a copy so results never alias the
// snapshot.
func detach[T interface{ clone() T }](results []matcher.Scored[T]) []matcher.Scored[T] {
	for i := range results {
		results[i].Item = results[i].Item.clone()
	}
	return results
}

// FuzzySearchFilms ranks films against query by brand and name, with the
// speed, color type and description as secondary text.
func (idx *Index) FuzzySearchFilms(query string, limit int) ([]matcher.Scored[Film], error) {
	s, err := idx.current()
	if err != nil {
		return nil, err
	}
	return detach(matcher.Rank(idx.matcher, idx.policies.Film, query, s.films, s.filmFields, limit)), nil
}

// FuzzySearchDevelopers ranks developers against query by manufacturer and
// name, with type, use and notes as secondary text.
func (idx *Index) FuzzySearchDevelopers(query string, limit int) ([]matcher.Scored[Developer], error) {
	s, err := idx.current()
	if err != nil {
		return nil, err
	}
	return detach(matcher.Rank(
		idx.matcher, idx.policies.Developer, query, s.developers, s.developerFields, limit,
	)), nil
}

// FuzzySearchCombinations ranks combinations against query by name, with
// the referenced film and developer names and the notes as secondary text.
func (idx *Index) FuzzySearchCombinations(query string, limit int) ([]matcher.Scored[Combination], error) {
	s, err := idx.current()
	if err != nil {
		return nil, err
	}
	return detach(matcher.Rank(
		idx.matcher, idx.policies.Combination, query, s.combinations, s.combinationFields, limit,
	)), nil
}

// SearchResults groups the fuzzy results for all three collections.
type SearchResults struct {
	Films        []matcher.Scored[Film]        `json:"films"`
	Developers   []matcher.Scored[Developer]   `json:"developers"`
	Combinations []matcher.Scored[Combination] `json:"combinations"`
}

// SearchAll runs the three fuzzy searches against one snapshot.
func (idx *Index) SearchAll(query string, limit int) (SearchResults, error) {
	s, err := idx.current()
	if err != nil {
		return SearchResults{}, err
	}
	films := matcher.Rank(idx.matcher, idx.policies.Film, query, s.films, s.filmFields, limit)
	developers := matcher.Rank(idx.matcher, idx.policies.Developer, query, s.developers, s.developerFields, limit)
	combinations := matcher.Rank(
		idx.matcher, idx.policies.Combination, query, s.combinations, s.combinationFields, limit,
	)
	return SearchResults{
		Films:        detach(films),
		Developers:   detach(developers),
		Combinations: detach(combinations),
	}, nil
}
