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
	"strings"
)

// IsDuplicate reports whether candidate collides with a record already in
// the catalog. Films collide on brand and name, developers on manufacturer
// and name (both ignoring case), combinations on film, developer, dilution,
// shooting speed and push/pull. Ids and names of combinations are not
// compared.
func (idx *Index) IsDuplicate(candidate Record) (bool, error) {
	s, err := idx.current()
	if err != nil {
		return false, err
	}
	return s.isDuplicate(candidate)
}

func (s *snapshot) isDuplicate(candidate Record) (bool, error) {
	switch c := candidate.(type) {
	case Film:
		_, ok := s.findFilm(c.Brand, c.Name)
		return ok, nil
	case *Film:
		_, ok := s.findFilm(c.Brand, c.Name)
		return ok, nil
	case Developer:
		_, ok := s.findDeveloper(c.Manufacturer, c.Name)
		return ok, nil
	case *Developer:
		_, ok := s.findDeveloper(c.Manufacturer, c.Name)
		return ok, nil
	case Combination:
		return s.hasCombination(c), nil
	case *Combination:
		return s.hasCombination(*c), nil
	default:
		return false, fmt.Errorf("unsupported record type %T", candidate)
	}
}

func (s *snapshot) hasCombination(c Combination) bool {
	for _, existing := range s.combinations {
		if SameCombination(existing, c) {
			return true
		}
	}
	return false
}

// SameFilm reports whether two films share a brand and name, ignoring case.
func SameFilm(a, b Film) bool {
	return strings.EqualFold(a.Brand, b.Brand) && strings.EqualFold(a.Name, b.Name)
}

// SameDeveloper reports whether two developers share a manufacturer and
// name, ignoring case.
func SameDeveloper(a, b Developer) bool {
	return strings.EqualFold(a.Manufacturer, b.Manufacturer) && strings.EqualFold(a.Name, b.Name)
}

// SameCombination reports whether two combinations describe the same
// development: film, developer, dilution, shooting speed and push/pull.
func SameCombination(a, b Combination) bool {
	return a.FilmStockID == b.FilmStockID &&
		a.DeveloperID == b.DeveloperID &&
		sameDilution(a.DilutionID, b.DilutionID) &&
		a.ShootingISO == b.ShootingISO &&
		a.PushPull == b.PushPull
}

func sameDilution(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
