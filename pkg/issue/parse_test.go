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
	"testing"

	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBody(t *testing.T) {
	t.Parallel()

	body := "### Brand/Manufacturer\n\nIlford\n\n" +
		"### Film Name\n\n  Delta 100  \n\n" +
		"### ISO Speed\n\n100\n\n" +
		"### Grain Structure\n\n\n\n" +
		"### Temperature (F)\n\n70\n\n" +
		"### Current Production Status\n\n- [x] Discontinued\n\n" +
		"### Manufacturer Notes\n\nTabular grain\nGood for pushing\n<!-- reviewers only -->\nignored\n"

	got := ParseBody(body)
	assert.Equal(t, map[string]string{
		"brand_manufacturer":        "Ilford",
		"film_name":                 "Delta 100",
		"iso_speed":                 "100",
		"temperature_f":             "70",
		"current_production_status": "Discontinued",
		"manufacturer_notes":        "Tabular grain\nGood for pushing",
	}, got)
}

func TestParseBody_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ParseBody(""))
	assert.Empty(t, ParseBody("just some text without headers"))
	assert.Empty(t, ParseBody("### Header only"))
}

func TestFieldKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Push/Pull Stops":    "push_pull_stops",
		"Time (minutes)":     "time_minutes",
		"Brandmanufacturer":  "brandmanufacturer",
		"Dilution Name ✨":    "dilution_name_",
		"  ISO Speed  ":      "iso_speed",
		"Datasheet URL(s)":   "datasheet_urls",
		"Combination Name?!": "combination_name",
	}
	for in, want := range tests {
		assert.Equal(t, want, fieldKey(in), "header %q", in)
	}
}

func TestCleanNoResponse(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "_No response_", "No response", "no response", "_No Response_"} {
		assert.Nil(t, CleanNoResponse(in), "input %q", in)
	}

	tests := map[string]string{
		"  plain  ":       "plain",
		"a  \t b":         "a b",
		"a\n\n\n\nb":      "a\n\nb",
		"line one\nline2": "line one\nline2",
	}
	for in, want := range tests {
		got := CleanNoResponse(in)
		require.NotNil(t, got, "input %q", in)
		assert.Equal(t, want, *got, "input %q", in)
	}
}

func TestConvertColorType(t *testing.T) {
	t.Parallel()

	tests := map[string]catalog.ColorType{
		"Black & White":         catalog.ColorTypeBW,
		"bw":                    catalog.ColorTypeBW,
		"Color Negative (C-41)": catalog.ColorTypeColor,
		"Slide / Transparency":  catalog.ColorTypeSlide,
		"transparency":          catalog.ColorTypeSlide,
		"":                      catalog.ColorTypeBW,
		"something else":        catalog.ColorTypeBW,
	}
	for in, want := range tests {
		assert.Equal(t, want, ConvertColorType(in), "input %q", in)
	}
}

func TestConvertFilmOrPaper(t *testing.T) {
	t.Parallel()

	tests := map[string]catalog.FilmOrPaper{
		"Film":                 catalog.UseFilm,
		"Paper":                catalog.UsePaper,
		"Both":                 catalog.UseBoth,
		"Film and paper":       catalog.UseBoth,
		"":                     catalog.UseFilm,
		"Black and white film": catalog.UseFilm,
	}
	for in, want := range tests {
		assert.Equal(t, want, ConvertFilmOrPaper(in), "input %q", in)
	}
}

func TestParseManufacturerNotes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{}, ParseManufacturerNotes("_No response_"))
	assert.Equal(t, []string{"one", "two"}, ParseManufacturerNotes("  one \n\n\n  two\n"))
}

func TestParseNumericField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		want  *int
		input string
	}{
		{input: "24", want: intPtr(24)},
		{input: "2.9", want: intPtr(2)},
		{input: "+3", want: intPtr(3)},
		{input: "", want: nil},
		{input: "  ", want: nil},
		{input: "six", want: nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseNumericField(tt.input), "input %q", tt.input)
	}
}

func intPtr(v int) *int { return &v }

func TestParseURLs(t *testing.T) {
	t.Parallel()

	got := ParseURLs("https://a.example/x.pdf\nftp://b.example\nsee http://c.example\n  http://d.example  \n")
	assert.Equal(t, []string{"https://a.example/x.pdf", "http://d.example"}, got)
	assert.Equal(t, []string{}, ParseURLs("   "))
}

func TestParseDilutions(t *testing.T) {
	t.Parallel()

	got := ParseDilutions("Stock:1+0\n\nno colon here\n 1+1 : 1+1 \n")
	assert.Equal(t, []catalog.Dilution{
		{ID: 1, Name: "Stock", Dilution: "1+0"},
		{ID: 2, Name: "1+1", Dilution: "1+1"},
	}, got)
	assert.Equal(t, []catalog.Dilution{}, ParseDilutions(""))
}

func TestDecodeForm(t *testing.T) {
	t.Parallel()

	var form CombinationForm
	err := DecodeForm(map[string]string{
		"film_brand":      "  Kodak ",
		"film_name":       "Tri-X 400",
		"push_pull_stops": "+1",
		"unrelated_field": "ignored",
	}, &form)
	require.NoError(t, err)
	assert.Equal(t, "Kodak", form.FilmBrand)
	assert.Equal(t, "Tri-X 400", form.FilmName)
	assert.Equal(t, "+1", form.PushPull)
	assert.Empty(t, form.Dilution)
}
