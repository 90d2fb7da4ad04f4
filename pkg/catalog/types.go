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

// Package catalog holds the film, developer and development combination
// records and the in-memory index used to look them up, search them and
// resolve free-text references to them.
package catalog

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// ColorType is the emulsion family of a film stock.
type ColorType string

const (
	ColorTypeBW    ColorType = "bw"
	ColorTypeColor ColorType = "color"
	ColorTypeSlide ColorType = "slide"
)

// FilmOrPaper is the intended use of a developer.
type FilmOrPaper string

const (
	UseFilm  FilmOrPaper = "film"
	UsePaper FilmOrPaper = "paper"
	UseBoth  FilmOrPaper = "both"
)

// Kind identifies one of the three record collections.
type Kind string

const (
	KindFilm        Kind = "film"
	KindDeveloper   Kind = "developer"
	KindCombination Kind = "combination"
)

// Record is implemented by Film, Developer and Combination.
type Record interface {
	Kind() Kind
	RecordID() string
}

// Flag is a boolean that is stored as 0 or 1 in the catalog files.
type Flag bool

func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "1", "true":
		*f = true
		return nil
	case "0", "false", "null":
		*f = false
		return nil
	}
	// Some hand-edited entries carry the flag as a quoted string.
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid flag value %s: %w", data, err)
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid flag value %q: %w", s, err)
	}
	*f = Flag(b)
	return nil
}

// Film is a photographic film stock.
type Film struct {
	Description        *string   `json:"description,omitempty"`
	GrainStructure     *string   `json:"grainStructure,omitempty"`
	ReciprocityFailure *string   `json:"reciprocityFailure,omitempty"`
	StaticImageURL     *string   `json:"staticImageURL,omitempty" validate:"omitempty,url"`
	ID                 string    `json:"id" validate:"required"`
	Brand              string    `json:"brand" validate:"required"`
	Name               string    `json:"name" validate:"required"`
	ColorType          ColorType `json:"colorType" validate:"required,oneof=bw color slide"`
	DateAdded          string    `json:"dateAdded,omitempty"`
	ManufacturerNotes  []string  `json:"manufacturerNotes"`
	ISOSpeed           float64   `json:"isoSpeed" validate:"gt=0"`
	Discontinued       Flag      `json:"discontinued"`
}

func (Film) Kind() Kind { return KindFilm }

func (f Film) RecordID() string { return f.ID }

// DisplayName is the brand followed by the film name.
func (f Film) DisplayName() string {
	return f.Brand + " " + f.Name
}

// clone returns a copy of f that shares no memory with it.
func (f Film) clone() Film {
	f.Description = clonePtr(f.Description)
	f.GrainStructure = clonePtr(f.GrainStructure)
	f.ReciprocityFailure = clonePtr(f.ReciprocityFailure)
	f.StaticImageURL = clonePtr(f.StaticImageURL)
	f.ManufacturerNotes = slices.Clone(f.ManufacturerNotes)
	return f
}

// Dilution is a working-solution ratio owned by a single developer.
type Dilution struct {
	Name     string `json:"name" validate:"required"`
	Dilution string `json:"dilution" validate:"required"`
	ID       int    `json:"id"`
}

// Developer is a film and/or paper developer with its dilutions.
type Developer struct {
	WorkingLifeHours   *int        `json:"workingLifeHours,omitempty" validate:"omitempty,gte=0"`
	StockLifeMonths    *int        `json:"stockLifeMonths,omitempty" validate:"omitempty,gte=0"`
	Notes              *string     `json:"notes,omitempty"`
	MixingInstructions *string     `json:"mixingInstructions,omitempty"`
	SafetyNotes        *string     `json:"safetyNotes,omitempty"`
	ID                 string      `json:"id" validate:"required"`
	Name               string      `json:"name" validate:"required"`
	Manufacturer       string      `json:"manufacturer" validate:"required"`
	Type               string      `json:"type"`
	FilmOrPaper        FilmOrPaper `json:"filmOrPaper" validate:"required,oneof=film paper both"`
	DateAdded          string      `json:"dateAdded,omitempty"`
	Dilutions          []Dilution  `json:"dilutions" validate:"dive"`
	DatasheetURL       []string    `json:"datasheetUrl,omitempty" validate:"dive,url"`
	Discontinued       Flag        `json:"discontinued"`
}

func (Developer) Kind() Kind { return KindDeveloper }

func (d Developer) RecordID() string { return d.ID }

// DisplayName is the manufacturer followed by the developer name.
func (d Developer) DisplayName() string {
	return d.Manufacturer + " " + d.Name
}

func (d Developer) clone() Developer {
	d.WorkingLifeHours = clonePtr(d.WorkingLifeHours)
	d.StockLifeMonths = clonePtr(d.StockLifeMonths)
	d.Notes = clonePtr(d.Notes)
	d.MixingInstructions = clonePtr(d.MixingInstructions)
	d.SafetyNotes = clonePtr(d.SafetyNotes)
	d.Dilutions = slices.Clone(d.Dilutions)
	d.DatasheetURL = slices.Clone(d.DatasheetURL)
	return d
}

// Dilution returns the dilution with the given id.
func (d Developer) Dilution(id int) (Dilution, bool) {
	for _, dil := range d.Dilutions {
		if dil.ID == id {
			return dil, true
		}
	}
	return Dilution{}, false
}

// Combination is a film and developer pairing with its development
// parameters. DilutionID and CustomDilution are mutually exclusive.
type Combination struct {
	DilutionID        *int    `json:"dilutionId,omitempty"`
	CustomDilution    *string `json:"customDilution,omitempty"`
	AgitationSchedule *string `json:"agitationSchedule,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	ID                string  `json:"id" validate:"required"`
	Name              string  `json:"name"`
	FilmStockID       string  `json:"filmStockId" validate:"required"`
	DeveloperID       string  `json:"developerId" validate:"required"`
	DateAdded         string  `json:"dateAdded,omitempty"`
	TemperatureF      float64 `json:"temperatureF" validate:"gt=0"`
	TimeMinutes       float64 `json:"timeMinutes" validate:"gt=0"`
	ShootingISO       float64 `json:"shootingIso" validate:"gt=0"`
	PushPull          int     `json:"pushPull"`
}

func (Combination) Kind() Kind { return KindCombination }

func (c Combination) RecordID() string { return c.ID }

func (c Combination) clone() Combination {
	c.DilutionID = clonePtr(c.DilutionID)
	c.CustomDilution = clonePtr(c.CustomDilution)
	c.AgitationSchedule = clonePtr(c.AgitationSchedule)
	c.Notes = clonePtr(c.Notes)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneAll deep-copies records. A nil slice stays nil.
func cloneAll[T interface{ clone() T }](records []T) []T {
	if records == nil {
		return nil
	}
	out := make([]T, len(records))
	for i, r := range records {
		out[i] = r.clone()
	}
	return out
}
