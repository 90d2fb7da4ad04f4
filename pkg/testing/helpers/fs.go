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

package helpers

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/narrowstacks/dorkroom-core/pkg/source"
	"github.com/spf13/afero"
)

// FSHelper provides utilities for filesystem mocking in tests
type FSHelper struct {
	Fs afero.Fs
}

// NewMemoryFS creates a new in-memory filesystem for testing
func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// CreateCatalog writes the three collection files of c into dir.
func (h *FSHelper) CreateCatalog(dir string, c catalog.Collections) error {
	files := map[string]any{
		source.FilmsFile:        c.Films,
		source.DevelopersFile:   c.Developers,
		source.CombinationsFile: c.Combinations,
	}
	for name, v := range files {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", name, err)
		}
		if err := h.WriteFile(filepath.Join(dir, name), data); err != nil {
			return err
		}
	}
	return nil
}

// CreateConfigFile writes a TOML config file.
func (h *FSHelper) CreateConfigFile(path, toml string) error {
	return h.WriteFile(path, []byte(toml))
}

// WriteFile writes content to path, creating parent directories.
func (h *FSHelper) WriteFile(path string, content []byte) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(h.Fs, path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// FileExists checks if a file exists in the filesystem
func (h *FSHelper) FileExists(path string) bool {
	exists, err := afero.Exists(h.Fs, path)
	return err == nil && exists
}

// ReadFile reads a file from the filesystem
func (h *FSHelper) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(h.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}
