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
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/narrowstacks/dorkroom-core/pkg/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var addedAt = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func newWriteIndex(t *testing.T) *catalog.Index {
	t.Helper()
	n := 0
	idx, err := fixtures.LoadedIndex(catalog.Options{
		Clock: clockwork.NewFakeClockAt(addedAt),
		NewID: func() string {
			n++
			return "generated-" + string(rune('0'+n))
		},
	})
	require.NoError(t, err)
	return idx
}

func TestAddFilm(t *testing.T) {
	t.Parallel()

	idx := newWriteIndex(t)

	added, err := idx.AddFilm(catalog.Film{
		Brand:     "Ilford",
		Name:      "Delta 100",
		ISOSpeed:  100,
		ColorType: catalog.ColorTypeBW,
	})
	require.NoError(t, err)
	assert.Equal(t, "generated-1", added.ID)
	assert.Equal(t, "2026-03-14T09:30:00Z", added.DateAdded)

	got, ok, err := idx.GetFilm(added.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, added, got)

	results, err := idx.SearchFilms("delta", "")
	require.NoError(t, err)
	require.Len(t, results, 1)

	stats, err := idx.Stats()
	require.NoError(t, err)
	assert.Equal(t, len(fixtures.Films())+1, stats.Films)
}

func TestAddFilm_KeepsGivenIDAndDate(t *testing.T) {
	t.Parallel()

	idx := newWriteIndex(t)

	added, err := idx.AddFilm(catalog.Film{
		ID:        "film-delta-100",
		DateAdded: "2020-01-01T00:00:00Z",
		Brand:     "Ilford",
		Name:      "Delta 100",
		ISOSpeed:  100,
		ColorType: catalog.ColorTypeBW,
	})
	require.NoError(t, err)
	assert.Equal(t, "film-delta-100", added.ID)
	assert.Equal(t, "2020-01-01T00:00:00Z", added.DateAdded)
}

func TestAddFilm_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wantErr error
		name    string
		film    catalog.Film
	}{
		{
			name:    "duplicate brand and name",
			film:    catalog.Film{Brand: "KODAK", Name: "tri-x 400", ISOSpeed: 400, ColorType: catalog.ColorTypeBW},
			wantErr: catalog.ErrDuplicate,
		},
		{
			name:    "duplicate id",
			film:    catalog.Film{ID: fixtures.FilmHP5, Brand: "Ilford", Name: "Pan F", ISOSpeed: 50, ColorType: "bw"},
			wantErr: catalog.ErrDuplicate,
		},
		{
			name:    "invalid",
			film:    catalog.Film{Brand: "Ilford", Name: "Pan F", ColorType: catalog.ColorTypeBW},
			wantErr: catalog.ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			idx := newWriteIndex(t)
			_, err := idx.AddFilm(tt.film)
			require.ErrorIs(t, err, tt.wantErr)

			films, err := idx.Films()
			require.NoError(t, err)
			assert.Equal(t, fixtures.Films(), films)
		})
	}
}

func TestAddDeveloper(t *testing.T) {
	t.Parallel()

	idx := newWriteIndex(t)

	added, err := idx.AddDeveloper(catalog.Developer{
		Manufacturer: "Kodak",
		Name:         "HC-110",
		Type:         "Concentrate",
		FilmOrPaper:  catalog.UseFilm,
		Dilutions:    []catalog.Dilution{{ID: 1, Name: "B", Dilution: "1+31"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "generated-1", added.ID)

	m, ok, err := idx.ResolveDeveloperAndDilution("Kodak", "HC-110", "b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, added.ID, m.DeveloperID)
	assert.Equal(t, fixtures.Ptr(1), m.DilutionID)

	_, err = idx.AddDeveloper(catalog.Developer{
		Manufacturer: "kodak",
		Name:         "hc-110",
		Type:         "Concentrate",
		FilmOrPaper:  catalog.UseFilm,
	})
	require.ErrorIs(t, err, catalog.ErrDuplicate)
}

func TestAddCombination(t *testing.T) {
	t.Parallel()

	idx := newWriteIndex(t)

	added, err := idx.AddCombination(catalog.Combination{
		FilmStockID:    fixtures.FilmFP4,
		DeveloperID:    fixtures.DevD76,
		DilutionID:     fixtures.Ptr(1),
		CustomDilution: fixtures.Ptr("1+0"),
		TemperatureF:   68,
		TimeMinutes:    8.5,
		ShootingISO:    125,
	})
	require.NoError(t, err)
	assert.Equal(t, "generated-1", added.ID)
	assert.Equal(t, "Ilford FP4 Plus @ 125 in D-76 1+0", added.Name)
	assert.Nil(t, added.CustomDilution, "a catalog dilution replaces the custom one")
	assert.Equal(t, "2026-03-14T09:30:00Z", added.DateAdded)

	byFilm, err := idx.CombinationsForFilm(fixtures.FilmFP4)
	require.NoError(t, err)
	require.Len(t, byFilm, 1)
	assert.Equal(t, added, byFilm[0])

	fuzzy, err := idx.FuzzySearchCombinations("fp4 d-76", 3)
	require.NoError(t, err)
	require.NotEmpty(t, fuzzy)
	assert.Equal(t, added.ID, fuzzy[0].Item.ID)
}

func TestAddCombination_CustomDilutionName(t *testing.T) {
	t.Parallel()

	idx := newWriteIndex(t)

	added, err := idx.AddCombination(catalog.Combination{
		FilmStockID:    fixtures.FilmHP5,
		DeveloperID:    fixtures.DevRodinal,
		CustomDilution: fixtures.Ptr("1+100"),
		TemperatureF:   68,
		TimeMinutes:    60,
		ShootingISO:    400,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ilford HP5 Plus @ 400 in Rodinal 1+100", added.Name)

	unnamed, err := idx.AddCombination(catalog.Combination{
		FilmStockID:  fixtures.FilmFP4,
		DeveloperID:  fixtures.DevRodinal,
		TemperatureF: 68,
		TimeMinutes:  9,
		ShootingISO:  100,
		PushPull:     0,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ilford FP4 Plus @ 100 in Rodinal Unknown Dilution", unnamed.Name)
}

func TestAddCombination_Rejected(t *testing.T) {
	t.Parallel()

	valid := func() catalog.Combination {
		return catalog.Combination{
			FilmStockID:  fixtures.FilmFP4,
			DeveloperID:  fixtures.DevD76,
			DilutionID:   fixtures.Ptr(2),
			TemperatureF: 68,
			TimeMinutes:  11,
			ShootingISO:  125,
		}
	}

	tests := []struct {
		wantErr error
		mutate  func(*catalog.Combination)
		name    string
	}{
		{
			name:    "missing film",
			mutate:  func(c *catalog.Combination) { c.FilmStockID = "film-missing" },
			wantErr: catalog.ErrNotFound,
		},
		{
			name:    "missing developer",
			mutate:  func(c *catalog.Combination) { c.DeveloperID = "dev-missing" },
			wantErr: catalog.ErrNotFound,
		},
		{
			name:    "dilution of another developer",
			mutate:  func(c *catalog.Combination) { c.DilutionID = fixtures.Ptr(7) },
			wantErr: catalog.ErrNotFound,
		},
		{
			name: "same settings as existing",
			mutate: func(c *catalog.Combination) {
				c.FilmStockID = fixtures.FilmTriX
				c.ShootingISO = 400
			},
			wantErr: catalog.ErrDuplicate,
		},
		{
			name:    "no development time",
			mutate:  func(c *catalog.Combination) { c.TimeMinutes = 0 },
			wantErr: catalog.ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			idx := newWriteIndex(t)
			c := valid()
			tt.mutate(&c)

			_, err := idx.AddCombination(c)
			require.ErrorIs(t, err, tt.wantErr)

			combs, err := idx.Combinations()
			require.NoError(t, err)
			assert.Equal(t, fixtures.Combinations(), combs, "nothing is inserted on error")
		})
	}
}

func TestAdd_NotLoaded(t *testing.T) {
	t.Parallel()

	idx := catalog.NewIndex(catalog.Options{})
	_, err := idx.AddFilm(catalog.Film{Brand: "Ilford", Name: "Pan F", ISOSpeed: 50, ColorType: "bw"})
	require.ErrorIs(t, err, catalog.ErrNotLoaded)
	_, err = idx.AddCombination(catalog.Combination{})
	require.ErrorIs(t, err, catalog.ErrNotLoaded)
}

func TestCombinationName(t *testing.T) {
	t.Parallel()

	films := fixtures.Films()
	devs := fixtures.Developers()

	tests := []struct {
		name string
		want string
		comb catalog.Combination
	}{
		{
			name: "catalog dilution",
			comb: catalog.Combination{ShootingISO: 400, DilutionID: fixtures.Ptr(2)},
			want: "Kodak Tri-X 400 @ 400 in D-76 1+1",
		},
		{
			name: "custom dilution",
			comb: catalog.Combination{ShootingISO: 1600, CustomDilution: fixtures.Ptr("1+3")},
			want: "Kodak Tri-X 400 @ 1600 in D-76 1+3",
		},
		{
			name: "fractional speed",
			comb: catalog.Combination{ShootingISO: 320.5},
			want: "Kodak Tri-X 400 @ 320.5 in D-76 Unknown Dilution",
		},
		{
			name: "dilution id not on developer",
			comb: catalog.Combination{ShootingISO: 400, DilutionID: fixtures.Ptr(9)},
			want: "Kodak Tri-X 400 @ 400 in D-76 Unknown Dilution",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, catalog.CombinationName(films[0], devs[0], tt.comb))
		})
	}
}
