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

package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/narrowstacks/dorkroom-core/pkg/cli"
	"github.com/narrowstacks/dorkroom-core/pkg/config"
)

func main() {
	root := cli.NewRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(config.AppVersion),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
