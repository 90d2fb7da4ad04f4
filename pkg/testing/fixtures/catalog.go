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

package fixtures

import "github.com/narrowstacks/dorkroom-core/pkg/catalog"

// Common catalog fixtures for use in tests

// Ids of the fixture records.
const (
	FilmTriX    = "film-kodak-trix-400"
	FilmHP5     = "film-ilford-hp5-plus"
	FilmPortra  = "film-kodak-portra-400"
	FilmVelvia  = "film-fujifilm-velvia-50"
	FilmFP4     = "film-ilford-fp4-plus"
	DevD76      = "dev-kodak-d76"
	DevRodinal  = "dev-agfa-rodinal"
	DevDDX      = "dev-ilford-ddx"
	DevDektol   = "dev-kodak-dektol"
	CombTriXBox = "comb-trix-400-d76-1-1"
	CombTriX    = "comb-trix-1600-d76-stock"
	CombHP5     = "comb-hp5-400-rodinal-1-50"
	CombHP5DDX  = "comb-hp5-800-ddx"
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Films returns a small film catalog covering every color type.
func Films() []catalog.Film {
	return []catalog.Film{
		{
			ID:                FilmTriX,
			Brand:             "Kodak",
			Name:              "Tri-X 400",
			ISOSpeed:          400,
			ColorType:         catalog.ColorTypeBW,
			Description:       Ptr("Classic high speed black and white film with distinctive grain."),
			ManufacturerNotes: []string{"Wide exposure latitude", "Pushes well"},
		},
		{
			ID:                FilmHP5,
			Brand:             "Ilford",
			Name:              "HP5 Plus",
			ISOSpeed:          400,
			ColorType:         catalog.ColorTypeBW,
			Description:       Ptr("Versatile high speed black and white negative film."),
			ManufacturerNotes: []string{},
		},
		{
			ID:                FilmPortra,
			Brand:             "Kodak",
			Name:              "Portra 400",
			ISOSpeed:          400,
			ColorType:         catalog.ColorTypeColor,
			Description:       Ptr("Professional color negative film with natural skin tones."),
			ManufacturerNotes: []string{},
		},
		{
			ID:                FilmVelvia,
			Brand:             "Fujifilm",
			Name:              "Velvia 50",
			ISOSpeed:          50,
			ColorType:         catalog.ColorTypeSlide,
			Description:       Ptr("Saturated daylight color reversal film."),
			ManufacturerNotes: []string{},
			Discontinued:      false,
		},
		{
			ID:                FilmFP4,
			Brand:             "Ilford",
			Name:              "FP4 Plus",
			ISOSpeed:          125,
			ColorType:         catalog.ColorTypeBW,
			ManufacturerNotes: []string{},
		},
	}
}

// Developers returns a small developer catalog. D-76 carries the
// "Stock"/"1+1" dilutions used by the resolver scenarios.
func Developers() []catalog.Developer {
	return []catalog.Developer{
		{
			ID:           DevD76,
			Manufacturer: "Kodak",
			Name:         "D-76",
			Type:         "Powder",
			FilmOrPaper:  catalog.UseFilm,
			Notes:        Ptr("Fine grain developer with full emulsion speed."),
			Dilutions: []catalog.Dilution{
				{ID: 1, Name: "Stock", Dilution: "1+0"},
				{ID: 2, Name: "1+1", Dilution: "1+1"},
			},
			WorkingLifeHours: Ptr(24),
			StockLifeMonths:  Ptr(6),
		},
		{
			ID:           DevRodinal,
			Manufacturer: "Agfa",
			Name:         "Rodinal",
			Type:         "Concentrate",
			FilmOrPaper:  catalog.UseFilm,
			Notes:        Ptr("Acutance developer with very long shelf life."),
			Dilutions: []catalog.Dilution{
				{ID: 1, Name: "1+25", Dilution: "1+25"},
				{ID: 2, Name: "1+50", Dilution: "1+50"},
			},
		},
		{
			ID:           DevDDX,
			Manufacturer: "Ilford",
			Name:         "Ilfotec DD-X",
			Type:         "Concentrate",
			FilmOrPaper:  catalog.UseFilm,
			Dilutions: []catalog.Dilution{
				{ID: 1, Name: "Standard", Dilution: "1+4"},
			},
		},
		{
			ID:           DevDektol,
			Manufacturer: "Kodak",
			Name:         "Dektol",
			Type:         "Powder",
			FilmOrPaper:  catalog.UsePaper,
			Dilutions: []catalog.Dilution{
				{ID: 1, Name: "1+2", Dilution: "1+2"},
			},
			DatasheetURL: []string{"https://example.com/dektol.pdf"},
		},
	}
}

// Combinations returns combinations referencing Films and Developers.
func Combinations() []catalog.Combination {
	return []catalog.Combination{
		{
			ID:           CombTriXBox,
			Name:         "Kodak Tri-X 400 @ 400 in D-76 1+1",
			FilmStockID:  FilmTriX,
			DeveloperID:  DevD76,
			DilutionID:   Ptr(2),
			TemperatureF: 68,
			TimeMinutes:  9.75,
			ShootingISO:  400,
		},
		{
			ID:                CombTriX,
			Name:              "Kodak Tri-X 400 @ 1600 in D-76 Stock",
			FilmStockID:       FilmTriX,
			DeveloperID:       DevD76,
			DilutionID:        Ptr(1),
			TemperatureF:      68,
			TimeMinutes:       11,
			ShootingISO:       1600,
			PushPull:          2,
			AgitationSchedule: Ptr("Initial 30s, then 10s every minute"),
		},
		{
			ID:           CombHP5,
			Name:         "Ilford HP5 Plus @ 400 in Rodinal 1+50",
			FilmStockID:  FilmHP5,
			DeveloperID:  DevRodinal,
			DilutionID:   Ptr(2),
			TemperatureF: 68,
			TimeMinutes:  11,
			ShootingISO:  400,
			Notes:        Ptr("Semi-stand works well at this dilution."),
		},
		{
			ID:           CombHP5DDX,
			Name:         "HP5 pushed one stop",
			FilmStockID:  FilmHP5,
			DeveloperID:  DevDDX,
			DilutionID:   Ptr(1),
			TemperatureF: 68,
			TimeMinutes:  10,
			ShootingISO:  800,
			PushPull:     1,
		},
	}
}

// Collections returns the full fixture catalog.
func Collections() catalog.Collections {
	return catalog.Collections{
		Films:        Films(),
		Developers:   Developers(),
		Combinations: Combinations(),
	}
}

// LoadedIndex returns an index loaded with Collections.
func LoadedIndex(opts catalog.Options) (*catalog.Index, error) {
	idx := catalog.NewIndex(opts)
	if err := idx.Load(Collections()); err != nil {
		return nil, err
	}
	return idx, nil
}
