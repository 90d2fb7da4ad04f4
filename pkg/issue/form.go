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
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
)

// FilmForm is the film stock submission form. The brand header renders
// as "brandmanufacturer" or "brand_manufacturer" depending on the form
// revision.
type FilmForm struct {
	Brand             string `form:"brandmanufacturer"`
	BrandManufacturer string `form:"brand_manufacturer"`
	Name              string `form:"film_name"`
	ISOSpeed          string `form:"iso_speed"`
	FilmType          string `form:"film_type"`
	GrainStructure    string `form:"grain_structure"`
	Reciprocity       string `form:"reciprocity_failure_characteristics"`
	ProductionStatus  string `form:"current_production_status"`
	Description       string `form:"description"`
	ManufacturerNotes string `form:"manufacturer_notes"`
}

// DeveloperForm is the developer submission form.
type DeveloperForm struct {
	Name               string `form:"developer_name"`
	Manufacturer       string `form:"manufacturer"`
	Type               string `form:"developer_type"`
	IntendedUse        string `form:"intended_use"`
	WorkingLifeHours   string `form:"working_life_hours"`
	StockLifeMonths    string `form:"stock_life_months"`
	ProductionStatus   string `form:"current_production_status"`
	Notes              string `form:"notes"`
	MixingInstructions string `form:"mixing_instructions"`
	SafetyNotes        string `form:"safety_notes"`
	DatasheetURLs      string `form:"datasheet_urls"`
	Dilutions          string `form:"common_dilutions"`
}

// CombinationForm is the development combination submission form.
type CombinationForm struct {
	Name                  string `form:"combination_name"`
	FilmBrand             string `form:"film_brand"`
	FilmName              string `form:"film_name"`
	DeveloperManufacturer string `form:"developer_manufacturer"`
	DeveloperName         string `form:"developer_name"`
	Dilution              string `form:"dilution_name"`
	TemperatureF          string `form:"temperature_f"`
	TimeMinutes           string `form:"time_minutes"`
	ShootingISO           string `form:"shooting_iso"`
	PushPull              string `form:"push_pull_stops"`
	AgitationSchedule     string `form:"agitation_schedule"`
	Notes                 string `form:"notes"`
}

// DefaultTemperatureF is used when a combination form gives no usable
// temperature.
const DefaultTemperatureF = 68

// DecodeForm fills dest, a pointer to one of the form structs, from parsed
// issue fields. Fields the form does not know are ignored and every value
// is trimmed.
func DecodeForm(fields map[string]string, dest any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dest,
		TagName:          "form",
		WeaklyTypedInput: true,
		DecodeHook:       trimStringsHook(),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(fields); err != nil {
		return fmt.Errorf("failed to decode form: %w", err)
	}
	return nil
}

func trimStringsHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, _ reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		str, ok := data.(string)
		if !ok {
			return data, nil
		}
		return strings.TrimSpace(str), nil
	}
}

func discontinued(status string) catalog.Flag {
	return catalog.Flag(strings.Contains(strings.ToLower(status), "discontinued"))
}

// Film converts the form into a film without id or date.
func (f FilmForm) Film() catalog.Film {
	var iso float64
	if v, err := catalog.ParseNumber(f.ISOSpeed); err == nil {
		iso = v
	}
	brand := f.Brand
	if brand == "" {
		brand = f.BrandManufacturer
	}
	return catalog.Film{
		Brand:              brand,
		Name:               f.Name,
		ISOSpeed:           iso,
		ColorType:          ConvertColorType(f.FilmType),
		GrainStructure:     CleanNoResponse(f.GrainStructure),
		ReciprocityFailure: CleanNoResponse(f.Reciprocity),
		Discontinued:       discontinued(f.ProductionStatus),
		Description:        CleanNoResponse(f.Description),
		ManufacturerNotes:  ParseManufacturerNotes(f.ManufacturerNotes),
	}
}

// Developer converts the form into a developer without id or date.
func (f DeveloperForm) Developer() catalog.Developer {
	return catalog.Developer{
		Name:               f.Name,
		Manufacturer:       f.Manufacturer,
		Type:               f.Type,
		FilmOrPaper:        ConvertFilmOrPaper(f.IntendedUse),
		WorkingLifeHours:   ParseNumericField(f.WorkingLifeHours),
		StockLifeMonths:    ParseNumericField(f.StockLifeMonths),
		Discontinued:       discontinued(f.ProductionStatus),
		Notes:              CleanNoResponse(f.Notes),
		MixingInstructions: CleanNoResponse(f.MixingInstructions),
		SafetyNotes:        CleanNoResponse(f.SafetyNotes),
		DatasheetURL:       ParseURLs(f.DatasheetURLs),
		Dilutions:          ParseDilutions(f.Dilutions),
	}
}

// Combination converts the form into a combination. The film and
// developer must resolve exactly in idx, otherwise ErrNotFound is
// returned. A dilution label that matches none of the developer's
// dilutions is kept as a custom dilution.
func (f CombinationForm) Combination(idx *catalog.Index) (catalog.Combination, error) {
	filmID, ok, err := idx.ResolveFilm(f.FilmBrand, f.FilmName)
	if err != nil {
		return catalog.Combination{}, err
	}
	if !ok {
		return catalog.Combination{}, fmt.Errorf(
			"%w: could not find film stock %s %s", catalog.ErrNotFound, f.FilmBrand, f.FilmName,
		)
	}

	dev, ok, err := idx.ResolveDeveloperAndDilution(f.DeveloperManufacturer, f.DeveloperName, f.Dilution)
	if err != nil {
		return catalog.Combination{}, err
	}
	if !ok {
		return catalog.Combination{}, fmt.Errorf(
			"%w: could not find developer %s %s", catalog.ErrNotFound, f.DeveloperManufacturer, f.DeveloperName,
		)
	}

	c := catalog.Combination{
		Name:              f.Name,
		FilmStockID:       filmID,
		DeveloperID:       dev.DeveloperID,
		DilutionID:        dev.DilutionID,
		TemperatureF:      DefaultTemperatureF,
		PushPull:          catalog.ParsePushPull(f.PushPull),
		AgitationSchedule: optional(f.AgitationSchedule),
		Notes:             CleanNoResponse(f.Notes),
	}
	if c.DilutionID == nil {
		c.CustomDilution = optional(f.Dilution)
	}
	if v, err := catalog.ParseNumber(f.TemperatureF); err == nil {
		c.TemperatureF = math.Trunc(v)
	}
	if v, err := catalog.ParseNumber(f.TimeMinutes); err == nil {
		c.TimeMinutes = v
	}
	if v, err := catalog.ParseNumber(f.ShootingISO); err == nil {
		c.ShootingISO = v
	}
	return c, nil
}
