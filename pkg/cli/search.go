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
	"fmt"
	"strings"

	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/spf13/cobra"
)

type searchOpts struct {
	format    string
	colorType string
	limit     int
	exact     bool
}

func newSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the catalog",
		Long: `Fuzzy search film stocks, developers or development combinations.

Results are ranked by similarity and only matches above the configured
threshold are shown.`,
		Example: `  # Find a film by a partial or misspelled name
  dorkroom search films trix

  # Exact substring search filtered by color type
  dorkroom search films kodak --exact --color-type color

  # Search every collection at once
  dorkroom search all hp5 -o json`,
	}

	cmd.AddCommand(
		newSearchFilmsCmd(a),
		newSearchDevelopersCmd(a),
		newSearchCombinationsCmd(a),
		newSearchAllCmd(a),
	)
	return cmd
}

func addSearchFlags(cmd *cobra.Command, o *searchOpts) {
	addFormatFlag(cmd, &o.format, FormatText)
	cmd.Flags().IntVarP(&o.limit, "limit", "n", 0, "maximum number of results (default from config)")
}

func (o *searchOpts) resolveLimit(a *app, cmd *cobra.Command) int {
	if cmd.Flags().Changed("limit") {
		return o.limit
	}
	return a.cfg.SearchLimit()
}

func parseColorType(s string) (catalog.ColorType, error) {
	ct := catalog.ColorType(strings.ToLower(s))
	switch ct {
	case "", catalog.ColorTypeBW, catalog.ColorTypeColor, catalog.ColorTypeSlide:
		return ct, nil
	default:
		return "", fmt.Errorf("invalid color type %q, expecting bw, color or slide", s)
	}
}

func newSearchFilmsCmd(a *app) *cobra.Command {
	var o searchOpts
	cmd := &cobra.Command{
		Use:   "films [query]",
		Short: "Search film stocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(o.format); err != nil {
				return err
			}
			query := strings.Join(args, " ")
			idx, err := a.loadIndex(cmd.Context())
			if err != nil {
				return err
			}

			if o.exact || o.colorType != "" {
				ct, err := parseColorType(o.colorType)
				if err != nil {
					return err
				}
				films, err := idx.SearchFilms(query, ct)
				if err != nil {
					return err
				}
				return writeFilms(cmd, o.format, films)
			}

			results, err := idx.FuzzySearchFilms(query, o.resolveLimit(a, cmd))
			if err != nil {
				return err
			}
			if o.format == FormatJSON || o.format == FormatYAML {
				return writeStructured(cmd.OutOrStdout(), o.format, orEmpty(results))
			}
			return writeRows(cmd.OutOrStdout(), o.format, filmRows(results))
		},
	}
	addSearchFlags(cmd, &o)
	cmd.Flags().BoolVar(&o.exact, "exact", false, "substring match instead of fuzzy ranking")
	cmd.Flags().StringVar(&o.colorType, "color-type", "", "only bw, color or slide films (implies --exact)")
	return cmd
}

func writeFilms(cmd *cobra.Command, format string, films []catalog.Film) error {
	w := cmd.OutOrStdout()
	switch format {
	case FormatJSON, FormatYAML:
		return writeStructured(w, format, orEmpty(films))
	case FormatCSV:
		records := make([]filmRecord, 0, len(films))
		for _, f := range films {
			records = append(records, toFilmRecord(f))
		}
		return writeCSV(w, records)
	default:
		rows := make([]searchRow, 0, len(films))
		for _, f := range films {
			rows = append(rows, searchRow{Kind: catalog.KindFilm, ID: f.ID, Name: f.DisplayName()})
		}
		return writeRowsText(w, rows)
	}
}

func newSearchDevelopersCmd(a *app) *cobra.Command {
	var o searchOpts
	cmd := &cobra.Command{
		Use:     "developers [query]",
		Aliases: []string{"devs"},
		Short:   "Search developers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(o.format); err != nil {
				return err
			}
			query := strings.Join(args, " ")
			idx, err := a.loadIndex(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if o.exact {
				devs, err := idx.SearchDevelopers(query)
				if err != nil {
					return err
				}
				if o.format == FormatJSON || o.format == FormatYAML {
					return writeStructured(w, o.format, orEmpty(devs))
				}
				rows := make([]searchRow, 0, len(devs))
				for _, d := range devs {
					rows = append(rows, searchRow{Kind: catalog.KindDeveloper, ID: d.ID, Name: d.DisplayName()})
				}
				return writeRows(w, o.format, rows)
			}

			results, err := idx.FuzzySearchDevelopers(query, o.resolveLimit(a, cmd))
			if err != nil {
				return err
			}
			if o.format == FormatJSON || o.format == FormatYAML {
				return writeStructured(w, o.format, orEmpty(results))
			}
			return writeRows(w, o.format, developerRows(results))
		},
	}
	addSearchFlags(cmd, &o)
	cmd.Flags().BoolVar(&o.exact, "exact", false, "substring match instead of fuzzy ranking")
	return cmd
}

func newSearchCombinationsCmd(a *app) *cobra.Command {
	var o searchOpts
	cmd := &cobra.Command{
		Use:     "combinations [query]",
		Aliases: []string{"combos"},
		Short:   "Search development combinations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(o.format); err != nil {
				return err
			}
			idx, err := a.loadIndex(cmd.Context())
			if err != nil {
				return err
			}
			results, err := idx.FuzzySearchCombinations(strings.Join(args, " "), o.resolveLimit(a, cmd))
			if err != nil {
				return err
			}
			if o.format == FormatJSON || o.format == FormatYAML {
				return writeStructured(cmd.OutOrStdout(), o.format, orEmpty(results))
			}
			return writeRows(cmd.OutOrStdout(), o.format, combinationRows(results))
		},
	}
	addSearchFlags(cmd, &o)
	return cmd
}

func newSearchAllCmd(a *app) *cobra.Command {
	var o searchOpts
	cmd := &cobra.Command{
		Use:   "all [query]",
		Short: "Search every collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(o.format); err != nil {
				return err
			}
			idx, err := a.loadIndex(cmd.Context())
			if err != nil {
				return err
			}
			res, err := idx.SearchAll(strings.Join(args, " "), o.resolveLimit(a, cmd))
			if err != nil {
				return err
			}
			if o.format == FormatJSON || o.format == FormatYAML {
				res.Films = orEmpty(res.Films)
				res.Developers = orEmpty(res.Developers)
				res.Combinations = orEmpty(res.Combinations)
				return writeStructured(cmd.OutOrStdout(), o.format, res)
			}
			rows := filmRows(res.Films)
			rows = append(rows, developerRows(res.Developers)...)
			rows = append(rows, combinationRows(res.Combinations)...)
			return writeRows(cmd.OutOrStdout(), o.format, rows)
		},
	}
	addSearchFlags(cmd, &o)
	return cmd
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
