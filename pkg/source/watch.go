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

package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce is how long Watch waits for writes to settle.
const DefaultDebounce = 500 * time.Millisecond

const changeOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

func isCollectionFile(name string) bool {
	switch filepath.Base(name) {
	case FilmsFile, DevelopersFile, CombinationsFile:
		return true
	default:
		return false
	}
}

// Watch calls onChange once the collection files in dir stop changing for
// debounce. The directory is watched rather than the files because Save
// replaces them by rename. Watch blocks until ctx is done.
func Watch(ctx context.Context, dir string, debounce time.Duration, onChange func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close file watcher")
		}
	}()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	log.Info().Str("dir", dir).Msg("watching catalog files")

	var settle *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if settle != nil {
				settle.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isCollectionFile(event.Name) || event.Op&changeOps == 0 {
				continue
			}
			log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("catalog file changed")
			if settle == nil {
				settle = time.NewTimer(debounce)
			} else {
				settle.Reset(debounce)
			}
			fire = settle.C
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(watchErr).Msg("error in catalog watcher")
		case <-fire:
			fire = nil
			onChange()
		}
	}
}
