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
	"io"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export catalog collections as CSV",
	}
	cmd.AddCommand(newExportFilmsCmd(a))
	return cmd
}

func newExportFilmsCmd(a *app) *cobra.Command {
	var (
		out       string
		colorType string
	)
	cmd := &cobra.Command{
		Use:     "films",
		Short:   "Export film stocks as CSV",
		Example: `  dorkroom export films --color-type bw --out bw-films.csv`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ct, err := parseColorType(colorType)
			if err != nil {
				return err
			}
			idx, err := a.loadIndex(cmd.Context())
			if err != nil {
				return err
			}
			films, err := idx.SearchFilms("", ct)
			if err != nil {
				return err
			}
			records := make([]filmRecord, 0, len(films))
			for _, f := range films {
				records = append(records, toFilmRecord(f))
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := a.fs.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create export file: %w", err)
				}
				defer func() {
					_ = f.Close()
				}()
				w = f
			}
			return writeCSV(w, records)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "file to write, stdout when empty")
	cmd.Flags().StringVar(&colorType, "color-type", "", "only bw, color or slide films")
	return cmd
}
