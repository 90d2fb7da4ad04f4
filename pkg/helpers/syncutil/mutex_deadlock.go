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

//go:build deadlock

// Package syncutil holds the mutex types used by the index, the memo and
// the config. Building with -tags=deadlock swaps in go-deadlock, which
// reports locks held longer than DORKROOM_DEADLOCK_TIMEOUT (default 30s).
package syncutil

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	deadlock "github.com/sasha-s/go-deadlock"
)

// DeadlockEnabled reports whether lock wait detection is compiled in.
const DeadlockEnabled = true

const timeoutEnv = "DORKROOM_DEADLOCK_TIMEOUT"

func init() {
	deadlock.Opts.DeadlockTimeout = 30 * time.Second
	if v := os.Getenv(timeoutEnv); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Warn().Err(err).Msgf("ignoring invalid %s", timeoutEnv)
		} else {
			deadlock.Opts.DeadlockTimeout = d
		}
	}
	deadlock.Opts.OnPotentialDeadlock = func() {
		log.Error().Msg("potential deadlock detected, see stderr for lock holders")
	}
}

// Mutex is a sync.Mutex with wait detection.
type Mutex struct {
	deadlock.Mutex
}

// RWMutex is a sync.RWMutex with wait detection.
type RWMutex struct {
	deadlock.RWMutex
}
