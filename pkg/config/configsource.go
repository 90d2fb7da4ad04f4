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

import "time"

const (
	DefaultDataDir        = "."
	DefaultTimeoutSeconds = 30
)

type Source struct {
	MaxRetries     *int   `toml:"max_retries,omitempty"`
	DataDir        string `toml:"data_dir,omitempty"`
	BaseURL        string `toml:"base_url,omitempty"`
	TimeoutSeconds int    `toml:"timeout_seconds,omitempty"`
}

// DataDir is the directory holding the collection files. It is used when
// no base URL is set and is where new submissions are saved.
func (c *Instance) DataDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Source.DataDir == "" {
		return DefaultDataDir
	}
	return c.vals.Source.DataDir
}

func (c *Instance) SetDataDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Source.DataDir = dir
}

// BaseURL is the remote location of the collection files. Empty means
// the data directory is used instead.
func (c *Instance) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Source.BaseURL
}

func (c *Instance) SetBaseURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Source.BaseURL = u
}

func (c *Instance) SourceTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Source.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.vals.Source.TimeoutSeconds) * time.Second
}

// MaxRetries returns the configured retry count, or 0 when unset so the
// source default applies. An explicit 0 disables retries and is reported
// as -1.
func (c *Instance) MaxRetries() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Source.MaxRetries == nil {
		return 0
	}
	if *c.vals.Source.MaxRetries <= 0 {
		return -1
	}
	return *c.vals.Source.MaxRetries
}
