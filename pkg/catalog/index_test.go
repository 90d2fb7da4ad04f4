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

package catalog_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/narrowstacks/dorkroom-core/pkg/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_NotLoaded(t *testing.T) {
	t.Parallel()

	idx := catalog.NewIndex(catalog.Options{})
	assert.False(t, idx.Loaded())

	_, _, err := idx.GetFilm(fixtures.FilmTriX)
	require.ErrorIs(t, err, catalog.ErrNotLoaded)
	_, _, err = idx.GetDeveloper(fixtures.DevD76)
	require.ErrorIs(t, err, catalog.ErrNotLoaded)
	_, _, err = idx.GetCombination(fixtures.CombHP5)
	require.ErrorIs(t, err, catalog.ErrNotLoaded)
	_, err = idx.SearchFilms("tri", "")
	require.ErrorIs(t, err, catalog.ErrNotLoaded)
	_, err = idx.SearchDevelopers("d-76")
	require.ErrorIs(t, err, catalog.ErrNotLoaded)
	_, err = idx.FuzzySearchFilms("tri", 5)
	require.ErrorIs(t, err, catalog.ErrNotLoaded)
	_, err = idx.FuzzySearchDevelopers("d-76", 5)
	require.ErrorIs(t, err, catalog.ErrNotLoaded)
	_, err = idx.FuzzySearchCombinations("tri", 5)
	require.ErrorIs(t, err, catalog.ErrNotLoaded)
	_, _, err = idx.ResolveFilm("Kodak", "Tri-X 400")
	require.ErrorIs(t, err, catalog.ErrNotLoaded)
	_, _, err = idx.ResolveDeveloperAndDilution("Kodak", "D-76", "")
	require.ErrorIs(t, err, catalog.ErrNotLoaded)
	_, err = idx.IsDuplicate(catalog.Film{})
	require.ErrorIs(t, err, catalog.ErrNotLoaded)
	_, err = idx.AddFilm(fixtures.Films()[0])
	require.ErrorIs(t, err, catalog.ErrNotLoaded)
	_, err = idx.Stats()
	require.ErrorIs(t, err, catalog.ErrNotLoaded)
}

func TestIndex_RoundTrip(t *testing.T) {
	t.Parallel()

	idx, err := fixtures.LoadedIndex(catalog.Options{})
	require.NoError(t, err)
	assert.True(t, idx.Loaded())

	for _, want := range fixtures.Films() {
		got, ok, err := idx.GetFilm(want.ID)
		require.NoError(t, err)
		require.True(t, ok, want.ID)
		assert.Equal(t, want, got)
	}
	for _, want := range fixtures.Developers() {
		got, ok, err := idx.GetDeveloper(want.ID)
		require.NoError(t, err)
		require.True(t, ok, want.ID)
		assert.Equal(t, want, got)
	}
	for _, want := range fixtures.Combinations() {
		got, ok, err := idx.GetCombination(want.ID)
		require.NoError(t, err)
		require.True(t, ok, want.ID)
		assert.Equal(t, want, got)
	}

	_, ok, err := idx.GetFilm("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = idx.GetDeveloper("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIndex_ReloadReplacesEverything(t *testing.T) {
	t.Parallel()

	idx, err := fixtures.LoadedIndex(catalog.Options{})
	require.NoError(t, err)

	replacement := catalog.Collections{
		Films: []catalog.Film{{
			ID: "film-new", Brand: "Foma", Name: "Fomapan 100", ISOSpeed: 100, ColorType: catalog.ColorTypeBW,
		}},
	}
	require.NoError(t, idx.Load(replacement))

	_, ok, err := idx.GetFilm(fixtures.FilmTriX)
	require.NoError(t, err)
	assert.False(t, ok, "old film must be gone after reload")

	_, ok, err = idx.GetFilm("film-new")
	require.NoError(t, err)
	assert.True(t, ok)

	stats, err := idx.Stats()
	require.NoError(t, err)
	assert.Equal(t, catalog.Stats{Films: 1}, stats)
}

func TestIndex_LoadDoesNotAliasInput(t *testing.T) {
	t.Parallel()

	cols := fixtures.Collections()
	idx := catalog.NewIndex(catalog.Options{})
	require.NoError(t, idx.Load(cols))

	cols.Films[0].Name = "changed"
	cols.Films[0].ManufacturerNotes[0] = "changed"
	*cols.Films[0].Description = "changed"
	cols.Developers[0].Dilutions[1].Name = "mutated"
	cols.Developers[0].Dilutions[1].Dilution = "mutated"
	*cols.Developers[0].WorkingLifeHours = 1
	*cols.Combinations[0].DilutionID = 1

	got, ok, err := idx.GetFilm(fixtures.FilmTriX)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Tri-X 400", got.Name)
	assert.Equal(t, "Wide exposure latitude", got.ManufacturerNotes[0])
	assert.Equal(t, "Classic high speed black and white film with distinctive grain.", *got.Description)

	m, ok, err := idx.ResolveDeveloperAndDilution("Kodak", "D-76", "1+1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, fixtures.Ptr(2), m.DilutionID)

	dev, _, err := idx.GetDeveloper(fixtures.DevD76)
	require.NoError(t, err)
	assert.Equal(t, 24, *dev.WorkingLifeHours)

	comb, _, err := idx.GetCombination(fixtures.CombTriXBox)
	require.NoError(t, err)
	assert.Equal(t, 2, *comb.DilutionID)
}

func TestIndex_ReturnedRecordsAreCopies(t *testing.T) {
	t.Parallel()

	idx, err := fixtures.LoadedIndex(catalog.Options{})
	require.NoError(t, err)

	dev, ok, err := idx.GetDeveloper(fixtures.DevD76)
	require.NoError(t, err)
	require.True(t, ok)
	dev.Dilutions[0].Dilution = "9+9"
	*dev.Notes = "changed"

	films, err := idx.Films()
	require.NoError(t, err)
	films[0].ManufacturerNotes[0] = "changed"

	devs, err := idx.Developers()
	require.NoError(t, err)
	devs[0].Dilutions[1].Name = "changed"

	combs, err := idx.CombinationsForFilm(fixtures.FilmTriX)
	require.NoError(t, err)
	*combs[0].DilutionID = 7

	found, err := idx.SearchFilms("tri-x", "")
	require.NoError(t, err)
	require.Len(t, found, 1)
	found[0].ManufacturerNotes[1] = "changed"

	ranked, err := idx.FuzzySearchDevelopers("kodak d-76", 1)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	ranked[0].Item.Dilutions[0].Name = "changed"

	dev, _, err = idx.GetDeveloper(fixtures.DevD76)
	require.NoError(t, err)
	assert.Equal(t, fixtures.Developers()[0], dev)

	film, _, err := idx.GetFilm(fixtures.FilmTriX)
	require.NoError(t, err)
	assert.Equal(t, fixtures.Films()[0], film)

	comb, _, err := idx.GetCombination(fixtures.CombTriXBox)
	require.NoError(t, err)
	assert.Equal(t, fixtures.Combinations()[0], comb)

	m, ok, err := idx.ResolveDeveloperAndDilution("Kodak", "D-76", "1+1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, fixtures.Ptr(2), m.DilutionID)
}

func TestIndex_FailedLoadKeepsPreviousCatalog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mutate  func(*catalog.Collections)
		wantErr error
		name    string
	}{
		{
			name: "duplicate film id",
			mutate: func(c *catalog.Collections) {
				c.Films = append(c.Films, c.Films[0])
			},
			wantErr: catalog.ErrDuplicate,
		},
		{
			name: "film brand and name reused",
			mutate: func(c *catalog.Collections) {
				twin := c.Films[0]
				twin.ID = "film-twin"
				twin.Name = "TRI-X 400"
				c.Films = append(c.Films, twin)
			},
			wantErr: catalog.ErrDuplicate,
		},
		{
			name: "developer manufacturer and name reused",
			mutate: func(c *catalog.Collections) {
				twin := c.Developers[0]
				twin.ID = "dev-twin"
				twin.Manufacturer = "kodak"
				c.Developers = append(c.Developers, twin)
			},
			wantErr: catalog.ErrDuplicate,
		},
		{
			name: "film without brand",
			mutate: func(c *catalog.Collections) {
				c.Films[1].Brand = ""
			},
			wantErr: catalog.ErrInvalidRecord,
		},
		{
			name: "unknown color type",
			mutate: func(c *catalog.Collections) {
				c.Films[0].ColorType = "infrared"
			},
			wantErr: catalog.ErrInvalidRecord,
		},
		{
			name: "repeated dilution id",
			mutate: func(c *catalog.Collections) {
				c.Developers[0].Dilutions[1].ID = 1
			},
			wantErr: catalog.ErrInvalidRecord,
		},
		{
			name: "combination without shooting speed",
			mutate: func(c *catalog.Collections) {
				c.Combinations[0].ShootingISO = 0
			},
			wantErr: catalog.ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			idx, err := fixtures.LoadedIndex(catalog.Options{})
			require.NoError(t, err)

			bad := fixtures.Collections()
			tt.mutate(&bad)
			err = idx.Load(bad)
			require.ErrorIs(t, err, tt.wantErr)

			stats, err := idx.Stats()
			require.NoError(t, err)
			assert.Equal(t, len(fixtures.Films()), stats.Films)
			assert.Equal(t, len(fixtures.Developers()), stats.Developers)
			assert.Equal(t, len(fixtures.Combinations()), stats.Combinations)
		})
	}
}

func TestIndex_ValidationErrorFields(t *testing.T) {
	t.Parallel()

	err := catalog.Validate(catalog.Film{ID: "f1", ColorType: "sepia"})
	require.ErrorIs(t, err, catalog.ErrInvalidRecord)

	var verr *catalog.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, catalog.KindFilm, verr.Kind)

	tags := make(map[string]string)
	for _, fe := range verr.Fields {
		tags[fe.Field] = fe.Tag
	}
	assert.Equal(t, "required", tags["Brand"])
	assert.Equal(t, "required", tags["Name"])
	assert.Equal(t, "oneof", tags["ColorType"])
	assert.Equal(t, "gt", tags["ISOSpeed"])
	assert.Contains(t, err.Error(), "brand is required")
}

func TestIndex_CombinationsByReference(t *testing.T) {
	t.Parallel()

	idx, err := fixtures.LoadedIndex(catalog.Options{})
	require.NoError(t, err)

	forFilm, err := idx.CombinationsForFilm(fixtures.FilmTriX)
	require.NoError(t, err)
	require.Len(t, forFilm, 2)
	assert.Equal(t, fixtures.CombTriXBox, forFilm[0].ID)
	assert.Equal(t, fixtures.CombTriX, forFilm[1].ID)

	forDev, err := idx.CombinationsForDeveloper(fixtures.DevRodinal)
	require.NoError(t, err)
	require.Len(t, forDev, 1)
	assert.Equal(t, fixtures.CombHP5, forDev[0].ID)

	none, err := idx.CombinationsForFilm(fixtures.FilmVelvia)
	require.NoError(t, err)
	assert.Empty(t, none)
}

// Readers racing a reload must see either the old or the new catalog,
// never a mixture.
func TestIndex_ConcurrentReloadIsAtomic(t *testing.T) {
	t.Parallel()

	a := fixtures.Collections()
	b := catalog.Collections{
		Films: []catalog.Film{
			{ID: "b1", Brand: "Foma", Name: "Fomapan 100", ISOSpeed: 100, ColorType: catalog.ColorTypeBW},
			{ID: "b2", Brand: "Foma", Name: "Fomapan 400", ISOSpeed: 400, ColorType: catalog.ColorTypeBW},
		},
	}
	idsA := make(map[string]bool)
	for _, f := range a.Films {
		idsA[f.ID] = true
	}

	idx := catalog.NewIndex(catalog.Options{})
	require.NoError(t, idx.Load(a))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errs := make(chan string, 100)

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				films, err := idx.SearchFilms("", "")
				if err != nil {
					errs <- err.Error()
					return
				}
				fromA := 0
				for _, f := range films {
					if idsA[f.ID] {
						fromA++
					}
				}
				if fromA != 0 && fromA != len(films) {
					errs <- "observed a mix of two catalogs"
					return
				}
				if len(films) != len(a.Films) && len(films) != len(b.Films) {
					errs <- "observed a partial catalog"
					return
				}
			}
		}()
	}

	for i := range 200 {
		next := a
		if i%2 == 0 {
			next = b
		}
		require.NoError(t, idx.Load(next))
	}
	close(stop)
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}
