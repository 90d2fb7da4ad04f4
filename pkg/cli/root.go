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

// Package cli implements the dorkroom command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/narrowstacks/dorkroom-core/pkg/config"
	"github.com/narrowstacks/dorkroom-core/pkg/helpers"
	"github.com/narrowstacks/dorkroom-core/pkg/source"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var errNeedsDataDir = errors.New("a local data directory is required")

// app is the state shared by every command. It is filled in by the root
// command's PersistentPreRunE.
type app struct {
	fs     afero.Fs
	cfg    *config.Instance
	out    io.Writer
	errOut io.Writer
	env    []string
	// configDir holds config.toml when --config is not given.
	configDir string
	cfgPath   string
	dataDir   string
	baseURL   string
	// logDir is empty for tests so nothing lands on disk.
	logDir string
	debug  bool
}

// NewRootCmd returns the dorkroom command tree using the host filesystem.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{
		fs:        afero.NewOsFs(),
		out:       os.Stdout,
		errOut:    os.Stderr,
		env:       []string{".env"},
		configDir: filepath.Join(xdg.ConfigHome, config.AppName),
		logDir:    filepath.Join(xdg.DataHome, config.AppName, "logs"),
	})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Film and developer catalog for darkroom work",
		Long: `Dorkroom searches a catalog of film stocks, developers and
development combinations, computes push/pull stops and turns submission
forms into new catalog records.

The catalog is read from a local data directory or, with --base-url, from
a remote copy of the same JSON files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", "", "path to config file")
	flags.StringVar(&a.dataDir, "data-dir", "", "directory holding the catalog JSON files")
	flags.StringVar(&a.baseURL, "base-url", "", "fetch the catalog from this URL instead of the data directory")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newSearchCmd(a),
		newShowCmd(a),
		newResolveCmd(a),
		newStopsCmd(a),
		newIssueCmd(a),
		newExportCmd(a),
		newServeCmd(a),
	)

	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	a.loadEnv()

	cfg, err := a.openConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cmd.Flags().Changed("data-dir") {
		cfg.SetDataDir(a.dataDir)
	}
	if cmd.Flags().Changed("base-url") {
		cfg.SetBaseURL(a.baseURL)
	}
	if a.debug {
		cfg.SetDebugLogging(true)
	}

	var writers []io.Writer
	if cfg.DebugLogging() {
		writers = append(writers, helpers.ConsoleWriter(a.errOut))
	}
	if err := helpers.InitLogging(a.logDir, cfg.DebugLogging(), writers...); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	log.Debug().Str("config", cfg.Path()).Str("dataDir", cfg.DataDir()).
		Str("baseURL", cfg.BaseURL()).Msg("configuration loaded")
	return nil
}

// loadEnv applies optional .env files. Variables already present in the
// environment are not overridden.
func (a *app) loadEnv() {
	for _, name := range a.env {
		data, err := afero.ReadFile(a.fs, name)
		if err != nil {
			continue
		}
		vals, err := godotenv.UnmarshalBytes(data)
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("failed to parse env file")
			continue
		}
		for k, v := range vals {
			if _, set := os.LookupEnv(k); set {
				continue
			}
			if err := os.Setenv(k, v); err != nil {
				log.Warn().Err(err).Str("key", k).Msg("failed to set env var")
			}
		}
	}
}

func (a *app) openConfig() (*config.Instance, error) {
	if a.cfgPath != "" {
		return config.OpenConfig(a.fs, a.cfgPath, config.BaseDefaults)
	}
	return config.NewConfig(a.fs, a.configDir, config.BaseDefaults)
}

// source returns the configured catalog source. A base URL wins over the
// data directory.
func (a *app) source() (source.Source, error) {
	if u := a.cfg.BaseURL(); u != "" {
		src, err := source.NewHTTPSource(u, source.HTTPOptions{
			Timeout:    a.cfg.SourceTimeout(),
			MaxRetries: a.cfg.MaxRetries(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create http source: %w", err)
		}
		return src, nil
	}
	return source.NewDirSource(a.fs, a.cfg.DataDir()), nil
}

// dirSource is the local source used by commands that write records.
func (a *app) dirSource() (*source.DirSource, error) {
	src, err := a.source()
	if err != nil {
		return nil, err
	}
	dir, ok := src.(*source.DirSource)
	if !ok {
		return nil, fmt.Errorf("%w: cannot write to %s", errNeedsDataDir, a.cfg.BaseURL())
	}
	return dir, nil
}

func (a *app) newIndex() *catalog.Index {
	policies := a.cfg.Policies()
	return catalog.NewIndex(catalog.Options{Policies: &policies})
}

// loadIndex loads the catalog from the configured source.
func (a *app) loadIndex(ctx context.Context) (*catalog.Index, error) {
	src, err := a.source()
	if err != nil {
		return nil, err
	}
	idx := a.newIndex()
	if err := source.LoadInto(ctx, src, idx); err != nil {
		return nil, err
	}
	return idx, nil
}
