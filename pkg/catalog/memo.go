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
	"strconv"
	"strings"

	"github.com/narrowstacks/dorkroom-core/pkg/catalog/matcher"
	"github.com/narrowstacks/dorkroom-core/pkg/helpers/syncutil"
)

type memoKey struct {
	kind Kind
	id   string
}

// memo caches the folded match text of records. It belongs to a single
// snapshot, so a reload drops it along with the records it describes, and
// it can never hold more entries than the snapshot has records.
type memo struct {
	fields map[memoKey]matcher.Fields
	mu     syncutil.Mutex
}

func newMemo() *memo {
	return &memo{fields: make(map[memoKey]matcher.Fields)}
}

func (m *memo) get(kind Kind, id string, build func() matcher.Fields) matcher.Fields {
	key := memoKey{kind: kind, id: id}

	m.mu.Lock()
	f, ok := m.fields[key]
	m.mu.Unlock()
	if ok {
		return f
	}

	f = build()
	m.mu.Lock()
	m.fields[key] = f
	m.mu.Unlock()
	return f
}

func (m *memo) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fields)
}

func (s *snapshot) filmFields(f Film) matcher.Fields {
	return s.memo.get(KindFilm, f.ID, func() matcher.Fields {
		secondary := []string{formatISO(f.ISOSpeed), string(f.ColorType)}
		if f.Description != nil {
			secondary = append(secondary, *f.Description)
		}
		return matcher.Fields{
			Primary:   matcher.Fold(f.DisplayName()),
			Secondary: matcher.Fold(strings.Join(secondary, " ")),
		}
	})
}

func (s *snapshot) developerFields(d Developer) matcher.Fields {
	return s.memo.get(KindDeveloper, d.ID, func() matcher.Fields {
		secondary := []string{d.Type, string(d.FilmOrPaper)}
		if d.Notes != nil {
			secondary = append(secondary, *d.Notes)
		}
		return matcher.Fields{
			Primary:   matcher.Fold(d.DisplayName()),
			Secondary: matcher.Fold(strings.Join(secondary, " ")),
		}
	})
}

// combinationFields pulls the referenced film and developer names into the
// secondary text.
func (s *snapshot) combinationFields(c Combination) matcher.Fields {
	return s.memo.get(KindCombination, c.ID, func() matcher.Fields {
		var secondary []string
		if f, ok := s.film(c.FilmStockID); ok {
			secondary = append(secondary, f.DisplayName())
		}
		if d, ok := s.developer(c.DeveloperID); ok {
			secondary = append(secondary, d.Name)
		}
		if c.Notes != nil {
			secondary = append(secondary, *c.Notes)
		}
		return matcher.Fields{
			Primary:   matcher.Fold(c.Name),
			Secondary: matcher.Fold(strings.Join(secondary, " ")),
		}
	})
}

func formatISO(iso float64) string {
	return strconv.FormatFloat(iso, 'f', -1, 64)
}
