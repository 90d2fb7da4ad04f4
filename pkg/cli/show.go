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

func newShowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a single catalog record",
		Example: `  dorkroom show film kodak-tri-x-400
  dorkroom show combination 0f9a... -o json`,
	}
	cmd.AddCommand(
		newShowRecordCmd(a, catalog.KindFilm, func(idx *catalog.Index, id string) (any, bool, error) {
			return idx.GetFilm(id)
		}),
		newShowRecordCmd(a, catalog.KindDeveloper, func(idx *catalog.Index, id string) (any, bool, error) {
			return idx.GetDeveloper(id)
		}),
		newShowRecordCmd(a, catalog.KindCombination, func(idx *catalog.Index, id string) (any, bool, error) {
			return idx.GetCombination(id)
		}),
	)
	return cmd
}

type lookupFunc func(idx *catalog.Index, id string) (any, bool, error)

func newShowRecordCmd(a *app, kind catalog.Kind, lookup lookupFunc) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   string(kind) + " <id>",
		Short: "Show a " + string(kind) + " by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != FormatYAML && format != FormatJSON {
				return fmt.Errorf("%w: %q", errFormat, format)
			}
			idx, err := a.loadIndex(cmd.Context())
			if err != nil {
				return err
			}
			rec, ok, err := lookup(idx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s %q", catalog.ErrNotFound, kind, args[0])
			}
			return writeStructured(cmd.OutOrStdout(), format, rec)
		},
	}
	addFormatFlag(cmd, &format, FormatYAML)
	return cmd
}
