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

package helpers

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/nonsteamlaunchers/nsl-core/pkg/platforms"
	"github.com/nonsteamlaunchers/nsl-core/pkg/testing/mocks"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirectories(t *testing.T) {
	t.Parallel()

	for _, existing := range []bool{false, true} {
		testRoot := t.TempDir()
		tempDir := filepath.Join(testRoot, "temp", "nested")
		logDir := filepath.Join(testRoot, "logs", "nested")
		if existing {
			require.NoError(t, os.MkdirAll(tempDir, 0o750))
			require.NoError(t, os.MkdirAll(logDir, 0o750))
		}

		platform := mocks.NewMockPlatform()
		platform.On("Settings").Return(platforms.Settings{TempDir: tempDir, LogDir: logDir})

		require.NoError(t, EnsureDirectories(platform))
		assert.DirExists(t, tempDir)
		assert.DirExists(t, logDir)
	}
}

func TestEnsureDirectoriesErrors(t *testing.T) {
	t.Parallel()

	platform := mocks.NewMockPlatform()
	platform.On("Settings").Return(platforms.Settings{
		TempDir: "/proc/invalid\x00path",
		LogDir:  t.TempDir(),
	})
	err := EnsureDirectories(platform)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create temp directory")

	platform = mocks.NewMockPlatform()
	platform.On("Settings").Return(platforms.Settings{
		TempDir: t.TempDir(),
		LogDir:  "/proc/invalid\x00path",
	})
	err = EnsureDirectories(platform)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create log directory")
}

//nolint:paralleltest // InitLogging replaces the global logger
func TestInitLogging(t *testing.T) {
	saved := log.Logger
	t.Cleanup(func() { log.Logger = saved })

	testRoot := t.TempDir()
	platform := mocks.NewMockPlatform()
	platform.On("Settings").Return(platforms.Settings{
		TempDir: filepath.Join(testRoot, "temp"),
		LogDir:  filepath.Join(testRoot, "logs"),
	})
	require.NoError(t, EnsureDirectories(platform))

	var buf bytes.Buffer
	require.NoError(t, InitLogging(platform, []io.Writer{&buf}))

	log.Info().Str("appName", "Game").Msg("creating shortcut")
	assert.Contains(t, buf.String(), `"appName":"Game"`)
	assert.Contains(t, buf.String(), `"message":"creating shortcut"`)
	assert.FileExists(t, filepath.Join(testRoot, "logs", "nsl.log"))
}
