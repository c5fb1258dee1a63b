// NSL Core
// Copyright (c) 2025 The NonSteamLaunchers Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of NSL Core.
//
// NSL Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// NSL Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with NSL Core.  If not, see <http://www.gnu.org/licenses/>.

package boltkv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", DBFile)
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestGetReturnsDefaultWhenMissing(t *testing.T) {
	t.Parallel()

	s, _ := openTemp(t)
	defer func() { _ = s.Close() }()

	def := map[string]any{"autoscan": false}
	got, err := s.Get(context.Background(), "settings", def)

	require.NoError(t, err)
	assert.Equal(t, def, got)
}

func TestSetThenGet(t *testing.T) {
	t.Parallel()

	s, path := openTemp(t)

	err := s.Set(context.Background(), "settings", map[string]any{
		"autoscan":    true,
		"customSites": "itch.io",
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Get(context.Background(), "settings", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"autoscan": true, "customSites": "itch.io"}, got)
}

func TestSetReplacesWholeValue(t *testing.T) {
	t.Parallel()

	s, _ := openTemp(t)
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "settings", map[string]any{"autoscan": true, "customSites": "a"}))
	require.NoError(t, s.Set(ctx, "settings", map[string]any{"autoscan": false}))

	got, err := s.Get(ctx, "settings", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"autoscan": false}, got)
}

func TestClosedStore(t *testing.T) {
	t.Parallel()

	s, _ := openTemp(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.Get(context.Background(), "settings", nil)
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, s.Set(context.Background(), "settings", nil), ErrClosed)
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	s, _ := openTemp(t)
	defer func() { _ = s.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Get(ctx, "settings", nil)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, s.Set(ctx, "settings", map[string]any{}), context.Canceled)
}

func TestSharedBetweenStores(t *testing.T) {
	t.Parallel()

	watcher, path := openTemp(t)
	defer func() { _ = watcher.Close() }()

	cmd, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = cmd.Close() }()

	ctx := context.Background()
	require.NoError(t, watcher.Set(ctx, "settings", map[string]any{"autoscan": true}))
	require.NoError(t, cmd.Set(ctx, "settings", map[string]any{"autoscan": false}))

	got, err := watcher.Get(ctx, "settings", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"autoscan": false}, got)
}
