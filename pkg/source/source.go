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

// Package source fetches the catalog's JSON collections from a directory
// or an HTTP base URL and decodes them into records.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Names of the three collection files.
const (
	FilmsFile        = "film_stocks.json"
	DevelopersFile   = "developers.json"
	CombinationsFile = "development_combinations.json"
)

var (
	// ErrFetch is returned when a collection could not be read.
	ErrFetch = errors.New("failed to fetch catalog data")
	// ErrParse is returned when a collection is not valid JSON for its
	// record type.
	ErrParse = errors.New("failed to parse catalog data")
)

// Source returns the raw bytes of a named collection file.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Load fetches and decodes the three collections concurrently. The first
// failure cancels the remaining fetches.
func Load(ctx context.Context, src Source) (catalog.Collections, error) {
	var c catalog.Collections
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return fetchInto(ctx, src, FilmsFile, &c.Films)
	})
	g.Go(func() error {
		return fetchInto(ctx, src, DevelopersFile, &c.Developers)
	})
	g.Go(func() error {
		return fetchInto(ctx, src, CombinationsFile, &c.Combinations)
	})
	if err := g.Wait(); err != nil {
		return catalog.Collections{}, err
	}

	log.Debug().
		Int("films", len(c.Films)).
		Int("developers", len(c.Developers)).
		Int("combinations", len(c.Combinations)).
		Msg("fetched catalog collections")
	return c, nil
}

// LoadInto fetches the collections and publishes them to idx.
func LoadInto(ctx context.Context, src Source, idx *catalog.Index) error {
	c, err := Load(ctx, src)
	if err != nil {
		return err
	}
	return idx.Load(c)
}

func fetchInto[T any](ctx context.Context, src Source, name string, dst *[]T) error {
	data, err := src.Fetch(ctx, name)
	if err != nil {
		if errors.Is(err, ErrFetch) {
			return err
		}
		return fmt.Errorf("%w: %s: %w", ErrFetch, name, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrParse, name, err)
	}
	if records == nil {
		records = []T{}
	}
	*dst = records
	return nil
}
