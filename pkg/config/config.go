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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/narrowstacks/dorkroom-core/pkg/helpers/syncutil"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	SchemaVersion = 1
	CfgEnv        = "DORKROOM_CFG"
	CfgFile       = "config.toml"
)

var ErrSchemaMismatch = errors.New("schema version mismatch")

type Values struct {
	Source       Source `toml:"source"`
	Search       Search `toml:"search"`
	Server       Server `toml:"server"`
	ConfigSchema int    `toml:"config_schema"`
	DebugLogging bool   `toml:"debug_logging"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Source: Source{
		DataDir: DefaultDataDir,
	},
	Search: Search{
		Scoring: ScoringComposite,
		Limit:   DefaultSearchLimit,
	},
	Server: Server{
		Listen:            DefaultListen,
		RequestsPerMinute: DefaultRequestsPerMinute,
		Burst:             DefaultBurst,
	},
}

type Instance struct {
	fs       afero.Fs
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// NewConfig opens the config file in configDir, or the file named by
// DORKROOM_CFG, writing the defaults to it first if it does not exist.
// A nil fs means the host filesystem.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(fs afero.Fs, configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	return OpenConfig(fs, cfgPath, defaults)
}

// OpenConfig opens the config file at cfgPath, creating it from defaults
// when missing.
//
//nolint:gocritic // config struct copied for immutability
func OpenConfig(fs afero.Fs, cfgPath string, defaults Values) (*Instance, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	cfg := Instance{
		fs:       fs,
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	exists, err := afero.Exists(fs, cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if !exists {
		log.Info().Str("path", cfgPath).Msg("saving new default config to disk")

		err := fs.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err = cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Path returns the location of the config file.
func (c *Instance) Path() string {
	return c.cfgPath
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := afero.ReadFile(c.fs, c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return ErrSchemaMismatch
	}

	if err := newVals.Search.validate(); err != nil {
		return err
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(c.fs, c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}
