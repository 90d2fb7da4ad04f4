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
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/narrowstacks/dorkroom-core/pkg/issue"
	"github.com/narrowstacks/dorkroom-core/pkg/source"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newIssueCmd(a *app) *cobra.Command {
	var (
		kind   string
		file   string
		format string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Add a record from a submission form",
		Long: `Issue converts the markdown body of a submission form into a catalog
record, checks it against the catalog for duplicates and appends it to the
matching JSON file in the data directory.

Forms are the "### Header" sections produced by the film stock, developer
and development combination issue templates.`,
		Example: `  dorkroom issue --type film-stock --file body.md
  gh issue view 42 --json body -q .body | dorkroom issue --type combination --file -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			k, err := issue.ParseKind(kind)
			if err != nil {
				return err
			}
			body, err := readBody(a.fs, cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			var (
				src source.Source
				dir *source.DirSource
			)
			if dryRun {
				src, err = a.source()
			} else {
				dir, err = a.dirSource()
				src = dir
			}
			if err != nil {
				return err
			}
			idx := a.newIndex()
			if err := source.LoadInto(cmd.Context(), src, idx); err != nil {
				return err
			}

			rec, err := issue.NewProcessor(idx).Process(k, body)
			if err != nil {
				return err
			}
			log.Info().Str("kind", string(rec.Kind())).Str("id", rec.RecordID()).Msg("created record")

			if dir != nil {
				if err := saveCollection(cmd.Context(), dir, idx, rec.Kind()); err != nil {
					return err
				}
			}
			if format == FormatText || format == FormatCSV {
				format = FormatJSON
			}
			return writeStructured(cmd.OutOrStdout(), format, rec)
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "", "form type: film-stock, developer or combination")
	cmd.Flags().StringVarP(&file, "file", "f", "-", "file holding the form body, - for stdin")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the record without saving it")
	addFormatFlag(cmd, &format, FormatJSON)
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func readBody(fs afero.Fs, stdin io.Reader, file string) (string, error) {
	var (
		data []byte
		err  error
	)
	if file == "" || file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = afero.ReadFile(fs, file)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read form body: %w", err)
	}
	return string(data), nil
}

// saveCollection writes the collection holding kind back to the data
// directory.
func saveCollection(ctx context.Context, dir *source.DirSource, idx *catalog.Index, kind catalog.Kind) error {
	switch kind {
	case catalog.KindFilm:
		films, err := idx.Films()
		if err != nil {
			return err
		}
		return dir.Save(ctx, source.FilmsFile, films)
	case catalog.KindDeveloper:
		devs, err := idx.Developers()
		if err != nil {
			return err
		}
		return dir.Save(ctx, source.DevelopersFile, devs)
	case catalog.KindCombination:
		combs, err := idx.Combinations()
		if err != nil {
			return err
		}
		return dir.Save(ctx, source.CombinationsFile, combs)
	default:
		return errors.New("unknown record kind: " + string(kind))
	}
}
