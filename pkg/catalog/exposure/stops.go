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

// Package exposure converts between box speed and shooting speed in stops.
package exposure

import (
	"fmt"
	"math"
)

// MaxStops bounds the push or pull accepted when deriving a shooting speed
// from a stop count.
const MaxStops = 20

// ComputeStops returns the push (positive) or pull (negative) needed to
// develop film rated boxISO that was shot at shootingISO. Non-positive
// inputs return 0. Half stops round to the nearest even stop count, so a
// 1.5 stop difference is a 2 stop push and a 0.5 stop difference is normal
// development.
func ComputeStops(boxISO, shootingISO float64) int {
	if boxISO <= 0 || shootingISO <= 0 {
		return 0
	}
	if math.IsInf(boxISO, 0) || math.IsInf(shootingISO, 0) {
		return 0
	}
	// Subtracting logs keeps extreme but finite speeds from overflowing.
	return roundStops(math.Log2(shootingISO) - math.Log2(boxISO))
}

func roundStops(stops float64) int {
	if math.IsNaN(stops) {
		return 0
	}
	return int(math.RoundToEven(stops))
}

// ShootingISO is the inverse of ComputeStops: the speed a film rated boxISO
// is exposed at when pushed or pulled by stops.
func ShootingISO(boxISO float64, stops int) float64 {
	if boxISO <= 0 {
		return 0
	}
	return boxISO * math.Exp2(float64(stops))
}

// Describe renders a stop count for display.
func Describe(stops int) string {
	switch {
	case stops > 0:
		return fmt.Sprintf("+%d %s (push)", stops, plural(stops))
	case stops < 0:
		return fmt.Sprintf("%d %s (pull)", stops, plural(stops))
	default:
		return "Normal development"
	}
}

func plural(stops int) string {
	if stops == 1 || stops == -1 {
		return "stop"
	}
	return "stops"
}
