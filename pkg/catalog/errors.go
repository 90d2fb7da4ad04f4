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

package catalog

import "errors"

var (
	// ErrNotLoaded is returned by every query issued before the first Load.
	ErrNotLoaded = errors.New("catalog not loaded")
	// ErrNotFound is returned when a referenced record does not exist.
	// Plain lookups report misses through their found result instead.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a new record would violate a
	// uniqueness rule. Nothing is inserted.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalidNumeric marks a free-text numeric field that failed to
	// parse. Callers usually fall back to a default instead of failing.
	ErrInvalidNumeric = errors.New("invalid numeric value")
	// ErrInvalidRecord wraps record validation failures.
	ErrInvalidRecord = errors.New("invalid record")
)
