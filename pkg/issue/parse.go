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

// Package issue turns submission forms, as rendered into the body of a
// tracker issue, into catalog records.
package issue

import (
	"regexp"
	"strings"

	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
)

var (
	sectionSplit   = regexp.MustCompile(`\n### `)
	fieldKeyStrip  = regexp.MustCompile(`[^a-z0-9_]`)
	blankLineRun   = regexp.MustCompile(`\n\s*\n\s*\n+`)
	horizontalRuns = regexp.MustCompile(`[ \t]+`)
)

const (
	checkedBox    = "- [x]"
	commentMarker = "<!-- "
)

// ParseBody extracts the answered form fields from an issue body. Each
// "### Header" starts a field; the header is turned into a key such as
// "brandmanufacturer" or "iso_speed" and the text below it is the value.
// Empty answers are left out.
func ParseBody(body string) map[string]string {
	fields := make(map[string]string)
	for _, section := range sectionSplit.Split(body, -1) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		if strings.HasPrefix(section, "###") {
			section = strings.TrimSpace(section[3:])
		}

		header, content, ok := strings.Cut(section, "\n")
		if !ok {
			continue
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}

		key := fieldKey(header)
		content = strings.TrimSpace(strings.TrimPrefix(content, checkedBox))
		if before, _, found := strings.Cut(content, commentMarker); found {
			content = strings.TrimSpace(before)
		}
		if content != "" && key != "" {
			fields[key] = content
		}
	}
	return fields
}

func fieldKey(header string) string {
	key := strings.ToLower(strings.TrimSpace(header))
	key = strings.NewReplacer(" ", "_", "(", "", ")", "", "/", "_").Replace(key)
	return fieldKeyStrip.ReplaceAllString(key, "")
}

// CleanNoResponse returns nil for empty answers and the "_No response_"
// placeholder, and otherwise the text with runs of blank lines collapsed
// to one and runs of spaces or tabs collapsed to a single space.
func CleanNoResponse(text string) *string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" || isNoResponse(cleaned) {
		return nil
	}
	cleaned = blankLineRun.ReplaceAllString(cleaned, "\n\n")
	cleaned = strings.TrimSpace(horizontalRuns.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

func isNoResponse(s string) bool {
	switch s {
	case "_No response_", "No response", "_no response_", "no response", "_No Response_", "No Response":
		return true
	}
	return false
}

// ConvertColorType maps the film type selection to a color type. Unknown
// selections are treated as black and white.
func ConvertColorType(text string) catalog.ColorType {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(text, "Black & White") || strings.Contains(lower, "bw"):
		return catalog.ColorTypeBW
	case strings.Contains(lower, "color"):
		return catalog.ColorTypeColor
	case strings.Contains(lower, "slide") || strings.Contains(lower, "transparency"):
		return catalog.ColorTypeSlide
	}
	return catalog.ColorTypeBW
}

// ConvertFilmOrPaper maps the intended use selection. Anything that is
// not clearly paper or both is treated as film.
func ConvertFilmOrPaper(text string) catalog.FilmOrPaper {
	lower := strings.ToLower(text)
	film := strings.Contains(lower, "film")
	paper := strings.Contains(lower, "paper")
	switch {
	case strings.Contains(lower, "both") || (film && paper):
		return catalog.UseBoth
	case paper:
		return catalog.UsePaper
	}
	return catalog.UseFilm
}

// ParseManufacturerNotes splits the notes answer into one note per
// non-blank line.
func ParseManufacturerNotes(text string) []string {
	notes := []string{}
	cleaned := CleanNoResponse(text)
	if cleaned == nil {
		return notes
	}
	for line := range strings.SplitSeq(*cleaned, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			notes = append(notes, line)
		}
	}
	return notes
}

// ParseNumericField reads a whole number, truncating any fraction. Blank
// or unparseable input returns nil.
func ParseNumericField(text string) *int {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	v, err := catalog.ParseNumber(text)
	if err != nil {
		return nil
	}
	n := int(v)
	return &n
}

// ParseURLs returns the lines that are http or https URLs.
func ParseURLs(text string) []string {
	urls := []string{}
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
			urls = append(urls, line)
		}
	}
	return urls
}

// ParseDilutions reads "Name:Ratio" lines into dilutions numbered from 1.
// Lines without a colon are skipped.
func ParseDilutions(text string) []catalog.Dilution {
	dilutions := []catalog.Dilution{}
	for line := range strings.SplitSeq(text, "\n") {
		name, ratio, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		dilutions = append(dilutions, catalog.Dilution{
			ID:       len(dilutions) + 1,
			Name:     strings.TrimSpace(name),
			Dilution: strings.TrimSpace(ratio),
		})
	}
	return dilutions
}

// optional returns nil for blank text and the trimmed text otherwise.
func optional(text string) *string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return &text
}
