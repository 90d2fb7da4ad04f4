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
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ResolveFilm returns the id of the film with exactly this brand and name,
// ignoring case. It never falls back to fuzzy matching.
func (idx *Index) ResolveFilm(brand, name string) (string, bool, error) {
	s, err := idx.current()
	if err != nil {
		return "", false, err
	}
	f, ok := s.findFilm(brand, name)
	return f.ID, ok, nil
}

// DeveloperMatch is the result of resolving a developer and, optionally,
// one of its dilutions.
type DeveloperMatch struct {
	DilutionID  *int   `json:"dilutionId,omitempty"`
	DeveloperID string `json:"developerId"`
}

// ResolveDeveloperAndDilution finds the developer with exactly this
// manufacturer and name, ignoring case. When dilutionLabel is not empty
// the developer's dilutions are searched in order for one whose name or
// ratio equals the label; the first hit wins and a miss leaves DilutionID
// nil. Without a developer match no dilution lookup is attempted.
func (idx *Index) ResolveDeveloperAndDilution(
	manufacturer, name, dilutionLabel string,
) (DeveloperMatch, bool, error) {
	s, err := idx.current()
	if err != nil {
		return DeveloperMatch{}, false, err
	}
	d, ok := s.findDeveloper(manufacturer, name)
	if !ok {
		return DeveloperMatch{}, false, nil
	}
	m := DeveloperMatch{DeveloperID: d.ID}
	if dilutionLabel != "" {
		if dil, found := matchDilution(d, dilutionLabel); found {
			id := dil.ID
			m.DilutionID = &id
		}
	}
	return m, true, nil
}

func matchDilution(d Developer, label string) (Dilution, bool) {
	for _, dil := range d.Dilutions {
		if strings.EqualFold(dil.Name, label) || strings.EqualFold(dil.Dilution, label) {
			return dil, true
		}
	}
	return Dilution{}, false
}

func (s *snapshot) findFilm(brand, name string) (Film, bool) {
	probe := Film{Brand: brand, Name: name}
	for _, f := range s.films {
		if SameFilm(f, probe) {
			return f, true
		}
	}
	return Film{}, false
}

func (s *snapshot) findDeveloper(manufacturer, name string) (Developer, bool) {
	probe := Developer{Manufacturer: manufacturer, Name: name}
	for _, d := range s.developers {
		if SameDeveloper(d, probe) {
			return d, true
		}
	}
	return Developer{}, false
}

// ParseNumber parses a free-text number such as "+1", " 2.5 " or "-1".
// Anything else returns ErrInvalidNumeric.
func ParseNumber(text string) (float64, error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimSpace(strings.TrimPrefix(clean, "+"))
	if clean == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidNumeric)
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumeric, text)
	}
	return v, nil
}

// ParsePushPull reads a push/pull stop count from free text, truncating
// fractions toward zero. Empty or unparseable input means normal
// development and returns 0.
func ParsePushPull(text string) int {
	v, err := ParseNumber(text)
	if err != nil {
		return 0
	}
	return int(v)
}
