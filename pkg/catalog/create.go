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
	"time"

	"github.com/rs/zerolog/log"
)

// AddFilm inserts a new film. An empty id is replaced with a fresh one and
// an empty DateAdded with the current time. A film with the same brand and
// name returns ErrDuplicate and leaves the catalog untouched.
func (idx *Index) AddFilm(f Film) (Film, error) {
	idx.writeMu.Lock()
	defer idx.writeMu.Unlock()

	s, err := idx.current()
	if err != nil {
		return Film{}, err
	}
	idx.stamp(&f.ID, &f.DateAdded)
	if err := Validate(f); err != nil {
		return Film{}, err
	}
	if _, ok := s.findFilm(f.Brand, f.Name); ok {
		return Film{}, fmt.Errorf("%w: film %q already exists", ErrDuplicate, f.DisplayName())
	}

	next, err := s.with([]Film{f}, nil, nil)
	if err != nil {
		return Film{}, err
	}
	idx.snap.Store(next)
	log.Info().Str("id", f.ID).Str("film", f.DisplayName()).Msg("added film")
	return f, nil
}

// AddDeveloper inserts a new developer. See AddFilm for id, date and
// duplicate handling; developers collide on manufacturer and name.
func (idx *Index) AddDeveloper(d Developer) (Developer, error) {
	idx.writeMu.Lock()
	defer idx.writeMu.Unlock()

	s, err := idx.current()
	if err != nil {
		return Developer{}, err
	}
	idx.stamp(&d.ID, &d.DateAdded)
	if err := Validate(d); err != nil {
		return Developer{}, err
	}
	if _, ok := s.findDeveloper(d.Manufacturer, d.Name); ok {
		return Developer{}, fmt.Errorf("%w: developer %q already exists", ErrDuplicate, d.DisplayName())
	}

	next, err := s.with(nil, []Developer{d}, nil)
	if err != nil {
		return Developer{}, err
	}
	idx.snap.Store(next)
	log.Info().Str("id", d.ID).Str("developer", d.DisplayName()).Msg("added developer")
	return d, nil
}

// AddCombination inserts a new combination. The film and developer must
// exist and a set DilutionID must belong to that developer, otherwise
// ErrNotFound is returned. A set DilutionID clears CustomDilution and an
// empty name is generated from the referenced records. Nothing is inserted
// on error.
func (idx *Index) AddCombination(c Combination) (Combination, error) {
	idx.writeMu.Lock()
	defer idx.writeMu.Unlock()

	s, err := idx.current()
	if err != nil {
		return Combination{}, err
	}

	film, ok := s.film(c.FilmStockID)
	if !ok {
		return Combination{}, fmt.Errorf("%w: film %q", ErrNotFound, c.FilmStockID)
	}
	dev, ok := s.developer(c.DeveloperID)
	if !ok {
		return Combination{}, fmt.Errorf("%w: developer %q", ErrNotFound, c.DeveloperID)
	}
	if c.DilutionID != nil {
		if _, ok := dev.Dilution(*c.DilutionID); !ok {
			return Combination{}, fmt.Errorf(
				"%w: dilution %d for developer %q", ErrNotFound, *c.DilutionID, dev.DisplayName(),
			)
		}
		c.CustomDilution = nil
	}
	if c.Name == "" {
		c.Name = CombinationName(film, dev, c)
	}

	idx.stamp(&c.ID, &c.DateAdded)
	if err := Validate(c); err != nil {
		return Combination{}, err
	}
	if s.hasCombination(c) {
		return Combination{}, fmt.Errorf("%w: combination %q already exists", ErrDuplicate, c.Name)
	}

	next, err := s.with(nil, nil, []Combination{c})
	if err != nil {
		return Combination{}, err
	}
	idx.snap.Store(next)
	log.Info().Str("id", c.ID).Str("combination", c.Name).Msg("added combination")
	return c, nil
}

func (idx *Index) stamp(id, dateAdded *string) {
	if *id == "" {
		*id = idx.newID()
	}
	if *dateAdded == "" {
		*dateAdded = idx.clock.Now().UTC().Format(time.RFC3339)
	}
}

// CombinationName builds the conventional display name
// "<brand> <film> @ <iso> in <developer> <dilution>".
func CombinationName(film Film, dev Developer, c Combination) string {
	dilution := "Unknown Dilution"
	switch {
	case c.DilutionID != nil:
		if dil, ok := dev.Dilution(*c.DilutionID); ok {
			dilution = dil.Dilution
		}
	case c.CustomDilution != nil && *c.CustomDilution != "":
		dilution = *c.CustomDilution
	}
	return fmt.Sprintf("%s @ %s in %s %s", film.DisplayName(), formatISO(c.ShootingISO), dev.Name, dilution)
}
