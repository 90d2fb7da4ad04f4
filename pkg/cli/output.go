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

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gocarina/gocsv"
	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/narrowstacks/dorkroom-core/pkg/catalog/matcher"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

var errFormat = fmt.Errorf("unsupported output format, expecting %s, %s, %s or %s",
	FormatText, FormatJSON, FormatYAML, FormatCSV)

func addFormatFlag(cmd *cobra.Command, dest *string, def string) {
	cmd.Flags().StringVarP(dest, "output", "o", def, "output format: text, json, yaml or csv")
}

func checkFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML, FormatCSV:
		return nil
	default:
		return fmt.Errorf("%w: %q", errFormat, format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// writeYAML renders v through its JSON form so field names and omitted
// fields match the JSON files.
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to decode json: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return nil
}

func writeCSV[T any](w io.Writer, rows []T) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to encode csv: %w", err)
	}
	return nil
}

// writeStructured handles the json and yaml formats.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, v)
	case FormatYAML:
		return writeYAML(w, v)
	default:
		return fmt.Errorf("%w: %q", errFormat, format)
	}
}

// searchRow is one line of text or csv search output.
type searchRow struct {
	Kind  catalog.Kind `csv:"kind"`
	ID    string       `csv:"id"`
	Name  string       `csv:"name"`
	Score string       `csv:"score"`
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}

func filmRows(results []matcher.Scored[catalog.Film]) []searchRow {
	rows := make([]searchRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, searchRow{
			Kind:  catalog.KindFilm,
			ID:    r.Item.ID,
			Name:  r.Item.DisplayName(),
			Score: formatScore(r.Score),
		})
	}
	return rows
}

func developerRows(results []matcher.Scored[catalog.Developer]) []searchRow {
	rows := make([]searchRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, searchRow{
			Kind:  catalog.KindDeveloper,
			ID:    r.Item.ID,
			Name:  r.Item.DisplayName(),
			Score: formatScore(r.Score),
		})
	}
	return rows
}

func combinationRows(results []matcher.Scored[catalog.Combination]) []searchRow {
	rows := make([]searchRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, searchRow{
			Kind:  catalog.KindCombination,
			ID:    r.Item.ID,
			Name:  r.Item.Name,
			Score: formatScore(r.Score),
		})
	}
	return rows
}

func writeRowsText(w io.Writer, rows []searchRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No matches.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "KIND\tID\tNAME\tSCORE")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Kind, r.ID, r.Name, r.Score)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

// writeRows handles the text and csv formats for search rows.
func writeRows(w io.Writer, format string, rows []searchRow) error {
	if format == FormatCSV {
		return writeCSV(w, rows)
	}
	return writeRowsText(w, rows)
}

// filmRecord is the flat csv form of a film.
type filmRecord struct {
	ID                string            `csv:"id"`
	Brand             string            `csv:"brand"`
	Name              string            `csv:"name"`
	ColorType         catalog.ColorType `csv:"color_type"`
	Description       string            `csv:"description"`
	ManufacturerNotes string            `csv:"manufacturer_notes"`
	DateAdded         string            `csv:"date_added"`
	ISOSpeed          float64           `csv:"iso_speed"`
	Discontinued      bool              `csv:"discontinued"`
}

func toFilmRecord(f catalog.Film) filmRecord {
	r := filmRecord{
		ID:                f.ID,
		Brand:             f.Brand,
		Name:              f.Name,
		ColorType:         f.ColorType,
		ISOSpeed:          f.ISOSpeed,
		Discontinued:      bool(f.Discontinued),
		ManufacturerNotes: strings.Join(f.ManufacturerNotes, "; "),
		DateAdded:         f.DateAdded,
	}
	if f.Description != nil {
		r.Description = *f.Description
	}
	return r
}
