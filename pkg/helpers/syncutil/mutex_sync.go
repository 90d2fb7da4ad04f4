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

//go:build !deadlock

// Package syncutil holds the mutex types used by the index, the memo and
// the config. Building with -tags=deadlock swaps in go-deadlock, which
// reports locks held longer than DORKROOM_DEADLOCK_TIMEOUT (default 30s).
package syncutil

import "sync"

// DeadlockEnabled reports whether lock wait detection is compiled in.
const DeadlockEnabled = false

// Mutex is a plain sync.Mutex in regular builds.
//
//nolint:gocritic // embedding is the point of the wrapper
type Mutex struct {
	sync.Mutex //nolint:forbidigo // wrapped here only
}

// RWMutex is a plain sync.RWMutex in regular builds.
//
//nolint:gocritic // embedding is the point of the wrapper
type RWMutex struct {
	sync.RWMutex //nolint:forbidigo // wrapped here only
}
