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

	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/spf13/cobra"
)

func newResolveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Find the id of a record from its exact names",
		Long: `Resolve looks up records by exact, case-insensitive names, the way
submission forms reference films and developers.`,
	}
	cmd.AddCommand(newResolveFilmCmd(a), newResolveDeveloperCmd(a))
	return cmd
}

func newResolveFilmCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "film <brand> <name>",
		Short:   "Resolve a film id",
		Example: `  dorkroom resolve film Kodak "Tri-X 400"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := a.loadIndex(cmd.Context())
			if err != nil {
				return err
			}
			id, ok, err := idx.ResolveFilm(args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: film %s %s", catalog.ErrNotFound, args[0], args[1])
			}
			if format == FormatText {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
				return err
			}
			return writeStructured(cmd.OutOrStdout(), format, map[string]string{"id": id})
		},
	}
	addFormatFlag(cmd, &format, FormatText)
	return cmd
}

func newResolveDeveloperCmd(a *app) *cobra.Command {
	var (
		format   string
		dilution string
	)
	cmd := &cobra.Command{
		Use:     "developer <manufacturer> <name>",
		Short:   "Resolve a developer id and optionally a dilution",
		Example: `  dorkroom resolve developer Kodak D-76 --dilution 1+1`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := a.loadIndex(cmd.Context())
			if err != nil {
				return err
			}
			m, ok, err := idx.ResolveDeveloperAndDilution(args[0], args[1], dilution)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: developer %s %s", catalog.ErrNotFound, args[0], args[1])
			}
			if format != FormatText {
				return writeStructured(cmd.OutOrStdout(), format, m)
			}
			w := cmd.OutOrStdout()
			if m.DilutionID == nil {
				_, err = fmt.Fprintln(w, m.DeveloperID)
				return err
			}
			_, err = fmt.Fprintf(w, "%s dilution %d\n", m.DeveloperID, *m.DilutionID)
			return err
		},
	}
	addFormatFlag(cmd, &format, FormatText)
	cmd.Flags().StringVar(&dilution, "dilution", "", "dilution name or ratio to resolve")
	return cmd
}
