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

package issue_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/narrowstacks/dorkroom-core/pkg/issue"
	"github.com/narrowstacks/dorkroom-core/pkg/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessor(t *testing.T) (*issue.Processor, *catalog.Index) {
	t.Helper()
	idx, err := fixtures.LoadedIndex(catalog.Options{
		Clock: clockwork.NewFakeClockAt(time.Date(2026, time.May, 2, 18, 0, 0, 0, time.UTC)),
		NewID: func() string { return "3f2b6c1e-0000-4000-8000-000000000001" },
	})
	require.NoError(t, err)
	return issue.NewProcessor(idx), idx
}

const filmBody = `### Brand/Manufacturer

Ilford

### Film Name

Delta 100

### ISO Speed

100

### Film Type

Black & White

### Grain Structure

_No response_

### Current Production Status

- [x] Discontinued

### Description

Modern   tabular grain emulsion.

### Manufacturer Notes

Very fine grain
Excellent sharpness
`

func TestProcess_FilmStock(t *testing.T) {
	t.Parallel()

	p, idx := newProcessor(t)

	rec, err := p.Process(issue.KindFilmStock, filmBody)
	require.NoError(t, err)
	film, ok := rec.(catalog.Film)
	require.True(t, ok)

	assert.Equal(t, "3f2b6c1e-0000-4000-8000-000000000001", film.ID)
	assert.Equal(t, "2026-05-02T18:00:00Z", film.DateAdded)
	assert.Equal(t, "Ilford", film.Brand)
	assert.Equal(t, "Delta 100", film.Name)
	assert.InDelta(t, 100, film.ISOSpeed, 0)
	assert.Equal(t, catalog.ColorTypeBW, film.ColorType)
	assert.True(t, bool(film.Discontinued))
	assert.Nil(t, film.GrainStructure)
	require.NotNil(t, film.Description)
	assert.Equal(t, "Modern tabular grain emulsion.", *film.Description)
	assert.Equal(t, []string{"Very fine grain", "Excellent sharpness"}, film.ManufacturerNotes)

	id, found, err := idx.ResolveFilm("ilford", "delta 100")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, film.ID, id)
}

func TestProcess_DuplicateFilm(t *testing.T) {
	t.Parallel()

	p, idx := newProcessor(t)
	body := "### Brand/Manufacturer\n\nKODAK\n\n### Film Name\n\ntri-x 400\n\n### ISO Speed\n\n400\n"

	_, err := p.Process(issue.KindFilmStock, body)
	require.ErrorIs(t, err, catalog.ErrDuplicate)

	stats, err := idx.Stats()
	require.NoError(t, err)
	assert.Equal(t, len(fixtures.Films()), stats.Films)
}

func TestProcess_Developer(t *testing.T) {
	t.Parallel()

	p, _ := newProcessor(t)
	body := `### Developer Name

HC-110

### Manufacturer

Kodak

### Developer Type

Liquid concentrate

### Intended Use

Film

### Working Life (hours)

2160

### Stock Life (months)

_No response_

### Current Production Status

- [x] In production

### Datasheet URLs

https://example.com/hc110.pdf
not a link

### Common Dilutions

Dilution B:1+31
Dilution H:1+63
`

	rec, err := p.Process(issue.KindDeveloper, body)
	require.NoError(t, err)
	dev, ok := rec.(catalog.Developer)
	require.True(t, ok)

	assert.Equal(t, "Kodak", dev.Manufacturer)
	assert.Equal(t, "HC-110", dev.Name)
	assert.Equal(t, "Liquid concentrate", dev.Type)
	assert.Equal(t, catalog.UseFilm, dev.FilmOrPaper)
	require.NotNil(t, dev.WorkingLifeHours)
	assert.Equal(t, 2160, *dev.WorkingLifeHours)
	assert.Nil(t, dev.StockLifeMonths)
	assert.False(t, bool(dev.Discontinued))
	assert.Equal(t, []string{"https://example.com/hc110.pdf"}, dev.DatasheetURL)
	assert.Equal(t, []catalog.Dilution{
		{ID: 1, Name: "Dilution B", Dilution: "1+31"},
		{ID: 2, Name: "Dilution H", Dilution: "1+63"},
	}, dev.Dilutions)
}

func combinationBody(dilution, iso, push, temperature string) string {
	body := "### Film Brand\n\nKodak\n\n### Film Name\n\nTri-X 400\n\n" +
		"### Developer Manufacturer\n\nKodak\n\n### Developer Name\n\nD-76\n\n" +
		"### Time (minutes)\n\n12.5\n\n### Shooting ISO\n\n" + iso + "\n\n"
	if dilution != "" {
		body += "### Dilution Name\n\n" + dilution + "\n\n"
	}
	if push != "" {
		body += "### Push/Pull Stops\n\n" + push + "\n\n"
	}
	if temperature != "" {
		body += "### Temperature (F)\n\n" + temperature + "\n\n"
	}
	return body
}

func TestProcess_Combination(t *testing.T) {
	t.Parallel()

	p, idx := newProcessor(t)

	rec, err := p.Process(issue.KindCombination, combinationBody("1+1", "800", "+1", "70.5"))
	require.NoError(t, err)
	c, ok := rec.(catalog.Combination)
	require.True(t, ok)

	assert.Equal(t, fixtures.FilmTriX, c.FilmStockID)
	assert.Equal(t, fixtures.DevD76, c.DeveloperID)
	require.NotNil(t, c.DilutionID)
	assert.Equal(t, 2, *c.DilutionID)
	assert.Nil(t, c.CustomDilution)
	assert.InDelta(t, 70, c.TemperatureF, 0)
	assert.InDelta(t, 12.5, c.TimeMinutes, 0)
	assert.InDelta(t, 800, c.ShootingISO, 0)
	assert.Equal(t, 1, c.PushPull)
	assert.Equal(t, "Kodak Tri-X 400 @ 800 in D-76 1+1", c.Name)

	got, found, err := idx.GetCombination(c.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, c, got)
}

func TestProcess_CombinationCustomDilution(t *testing.T) {
	t.Parallel()

	p, _ := newProcessor(t)

	rec, err := p.Process(issue.KindCombination, combinationBody("1+3", "320", "", ""))
	require.NoError(t, err)
	c, ok := rec.(catalog.Combination)
	require.True(t, ok)

	assert.Nil(t, c.DilutionID)
	require.NotNil(t, c.CustomDilution)
	assert.Equal(t, "1+3", *c.CustomDilution)
	assert.InDelta(t, issue.DefaultTemperatureF, c.TemperatureF, 0)
	assert.Zero(t, c.PushPull)
	assert.Equal(t, "Kodak Tri-X 400 @ 320 in D-76 1+3", c.Name)
}

func TestProcess_CombinationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wantErr error
		name    string
		body    string
	}{
		{
			name:    "unknown film",
			body:    "### Film Brand\n\nKodak\n\n### Film Name\n\nEktachrome E100\n\n### Shooting ISO\n\n100\n",
			wantErr: catalog.ErrNotFound,
		},
		{
			name: "unknown developer",
			body: "### Film Brand\n\nKodak\n\n### Film Name\n\nTri-X 400\n\n" +
				"### Developer Manufacturer\n\nKodak\n\n### Developer Name\n\nXTOL\n",
			wantErr: catalog.ErrNotFound,
		},
		{
			name:    "same settings as existing",
			body:    combinationBody("1+1", "400", "", ""),
			wantErr: catalog.ErrDuplicate,
		},
		{
			name:    "no shooting speed",
			body:    combinationBody("1+1", "fast", "", ""),
			wantErr: catalog.ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, idx := newProcessor(t)
			_, err := p.Process(issue.KindCombination, tt.body)
			require.ErrorIs(t, err, tt.wantErr)

			combs, err := idx.Combinations()
			require.NoError(t, err)
			assert.Len(t, combs, len(fixtures.Combinations()))
		})
	}
}

func TestProcess_BadInput(t *testing.T) {
	t.Parallel()

	p, _ := newProcessor(t)

	_, err := p.Process(issue.KindFilmStock, "   ")
	require.ErrorIs(t, err, issue.ErrEmptyBody)

	_, err = p.Process(issue.Kind("lens"), filmBody)
	require.ErrorIs(t, err, issue.ErrUnknownKind)
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, k := range issue.Kinds {
		got, err := issue.ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := issue.ParseKind("film")
	require.ErrorIs(t, err, issue.ErrUnknownKind)

	assert.Equal(t, catalog.KindFilm, issue.KindFilmStock.CatalogKind())
	assert.Equal(t, catalog.KindCombination, issue.KindCombination.CatalogKind())
}
