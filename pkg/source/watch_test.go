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

package source_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/narrowstacks/dorkroom-core/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatch_DebouncesCollectionChanges(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- source.Watch(ctx, dir, 100*time.Millisecond, func() {
			calls.Add(1)
		})
	}()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	src := source.NewDirSource(nil, dir)
	for i := range 3 {
		require.NoError(t, src.Save(ctx, source.FilmsFile, []int{i}))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	assert.Eventually(t, func() bool {
		return calls.Load() == 1
	}, 2*time.Second, 20*time.Millisecond)

	// nothing further once writes settle
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_MissingDir(t *testing.T) {
	t.Parallel()

	err := source.Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), 0, func() {})
	require.Error(t, err)
}
