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

package issue

import (
	"errors"
	"fmt"

	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/rs/zerolog/log"
)

// Kind is the type of submission an issue carries.
type Kind string

const (
	KindFilmStock   Kind = "film-stock"
	KindDeveloper   Kind = "developer"
	KindCombination Kind = "combination"
)

// Kinds lists every supported submission kind.
var Kinds = []Kind{KindFilmStock, KindDeveloper, KindCombination}

var (
	// ErrEmptyBody is returned when an issue body has no answered fields.
	ErrEmptyBody = errors.New("could not parse issue data")
	// ErrUnknownKind is returned for a submission kind not in Kinds.
	ErrUnknownKind = errors.New("unknown issue type")
)

// ParseKind validates a submission kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// CatalogKind is the kind of record a submission produces.
func (k Kind) CatalogKind() catalog.Kind {
	switch k {
	case KindDeveloper:
		return catalog.KindDeveloper
	case KindCombination:
		return catalog.KindCombination
	default:
		return catalog.KindFilm
	}
}

// Processor adds submitted records to an index.
type Processor struct {
	idx *catalog.Index
}

// NewProcessor returns a Processor writing to idx.
func NewProcessor(idx *catalog.Index) *Processor {
	return &Processor{idx: idx}
}

// Process parses body as a kind submission and adds the resulting record
// to the index, which assigns its id and date. A record that already
// exists returns catalog.ErrDuplicate and the index is left unchanged.
func (p *Processor) Process(kind Kind, body string) (catalog.Record, error) {
	fields := ParseBody(body)
	if len(fields) == 0 {
		return nil, ErrEmptyBody
	}
	log.Debug().Str("kind", string(kind)).Int("fields", len(fields)).Msg("parsed issue body")

	switch kind {
	case KindFilmStock:
		var form FilmForm
		if err := DecodeForm(fields, &form); err != nil {
			return nil, err
		}
		film, err := p.idx.AddFilm(form.Film())
		if err != nil {
			return nil, err
		}
		return film, nil
	case KindDeveloper:
		var form DeveloperForm
		if err := DecodeForm(fields, &form); err != nil {
			return nil, err
		}
		dev, err := p.idx.AddDeveloper(form.Developer())
		if err != nil {
			return nil, err
		}
		return dev, nil
	case KindCombination:
		var form CombinationForm
		if err := DecodeForm(fields, &form); err != nil {
			return nil, err
		}
		c, err := form.Combination(p.idx)
		if err != nil {
			return nil, err
		}
		added, err := p.idx.AddCombination(c)
		if err != nil {
			return nil, err
		}
		return added, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
