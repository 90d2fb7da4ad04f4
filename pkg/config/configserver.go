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

const (
	DefaultListen            = "127.0.0.1:7480"
	DefaultRequestsPerMinute = 120
	DefaultBurst             = 20
)

type Server struct {
	Listen            string   `toml:"listen,omitempty"`
	AllowedOrigins    []string `toml:"allowed_origins,omitempty"`
	RequestsPerMinute int      `toml:"requests_per_minute,omitempty"`
	Burst             int      `toml:"burst,omitempty"`
}

func (c *Instance) Listen() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Server.Listen == "" {
		return DefaultListen
	}
	return c.vals.Server.Listen
}

func (c *Instance) SetListen(addr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Server.Listen = addr
}

func (c *Instance) AllowedOrigins() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Server.AllowedOrigins
}

// RateLimit returns the per-client request rate and burst for the API.
func (c *Instance) RateLimit() (perMinute, burst int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	perMinute = c.vals.Server.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = DefaultRequestsPerMinute
	}
	burst = c.vals.Server.Burst
	if burst <= 0 {
		burst = DefaultBurst
	}
	return perMinute, burst
}
