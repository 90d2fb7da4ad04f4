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

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// DirSource reads collection files from a directory.
type DirSource struct {
	fs  afero.Fs
	dir string
}

// NewDirSource returns a DirSource rooted at dir on fs. A nil fs means the
// host filesystem.
func NewDirSource(fs afero.Fs, dir string) *DirSource {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &DirSource{fs: fs, dir: dir}
}

// Dir returns the directory the source reads from.
func (s *DirSource) Dir() string {
	return s.dir
}

func (s *DirSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, name, err)
	}
	path := filepath.Join(s.dir, name)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, name, err)
	}
	return data, nil
}

// Save writes v as indented JSON to the named file. The data is written to
// a temporary file first and renamed into place.
func (s *DirSource) Save(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	data = append(data, '\n')

	if err := s.fs.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		if rmErr := s.fs.Remove(tmp); rmErr != nil {
			log.Warn().Err(rmErr).Msgf("error removing temp file: %s", tmp)
		}
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("saved collection")
	return nil
}
