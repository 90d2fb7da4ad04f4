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
	"strconv"

	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/narrowstacks/dorkroom-core/pkg/catalog/exposure"
	"github.com/spf13/cobra"
)

func newStopsCmd(_ *app) *cobra.Command {
	var push int
	cmd := &cobra.Command{
		Use:   "stops <box-iso> [shooting-iso]",
		Short: "Compute push/pull stops between two film speeds",
		Example: `  # Tri-X shot at 1600
  dorkroom stops 400 1600

  # What speed is HP5 pushed two stops?
  dorkroom stops 400 --push 2`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := catalog.ParseNumber(args[0])
			if err != nil {
				return fmt.Errorf("box iso: %w", err)
			}

			var shooting float64
			stops := push
			if len(args) == 2 {
				shooting, err = catalog.ParseNumber(args[1])
				if err != nil {
					return fmt.Errorf("shooting iso: %w", err)
				}
				stops = exposure.ComputeStops(box, shooting)
			} else {
				if !cmd.Flags().Changed("push") {
					return fmt.Errorf("%w: shooting iso or --push required", catalog.ErrInvalidNumeric)
				}
				if push > exposure.MaxStops || push < -exposure.MaxStops {
					return fmt.Errorf("%w: --push must be within %d stops", catalog.ErrInvalidNumeric, exposure.MaxStops)
				}
				shooting = exposure.ShootingISO(box, stops)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ISO %s at %s: %s\n",
				formatISO(box), formatISO(shooting), exposure.Describe(stops))
			return err
		},
	}
	cmd.Flags().IntVar(&push, "push", 0, "stops to push (negative to pull) when no shooting iso is given")
	return cmd
}

func formatISO(iso float64) string {
	return strconv.FormatFloat(iso, 'f', -1, 64)
}
