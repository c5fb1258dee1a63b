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

package config

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) *Instance {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, CfgFile)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	cfg := &Instance{cfgPath: path, vals: BaseDefaults, defaults: BaseDefaults}
	require.NoError(t, cfg.Load())
	return cfg
}

func TestNewConfigWritesDefaults(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, CfgFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "config_schema = 1")
	assert.Contains(t, string(data), "python3 main.py")

	assert.Equal(t, "python3 main.py", cfg.InstallerCommand())
	assert.Equal(t, 1, cfg.ShortcutConcurrency())
	assert.True(t, cfg.Notify())
	assert.False(t, cfg.StoreTrimmedLaunchOptions())
	assert.False(t, cfg.UMUEnabled())
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, `
config_schema = 1
debug_logging = true

[steam]
dir = "/home/deck/.steam/steam"
user_id = "12345"

[shortcuts]
call_timeout = "5s"
launch_options = "tail"
concurrency = 4

[umu]
enabled = true
`)

	assert.True(t, cfg.DebugLogging())
	assert.Equal(t, "/home/deck/.steam/steam", cfg.SteamDir())
	assert.Equal(t, "12345", cfg.SteamUserID())
	assert.Equal(t, 5*time.Second, cfg.CallTimeout())
	assert.True(t, cfg.StoreTrimmedLaunchOptions())
	assert.Equal(t, 4, cfg.ShortcutConcurrency())
	assert.True(t, cfg.UMUEnabled())
	assert.Equal(t, "GE-Proton", cfg.UMUDefaultTool())
	assert.Equal(t, "python3 main.py", cfg.InstallerCommand())
}

func TestLoadSchemaMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, CfgFile)
	require.NoError(t, os.WriteFile(path, []byte("config_schema = 99\n"), 0o600))

	cfg := &Instance{cfgPath: path, defaults: BaseDefaults}
	require.ErrorIs(t, cfg.Load(), ErrSchemaMismatch)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"launch options": "config_schema = 1\n[shortcuts]\nlaunch_options = \"both\"\n",
		"concurrency":    "config_schema = 1\n[shortcuts]\nconcurrency = 100\n",
		"umu url":        "config_schema = 1\n[umu]\ndatabase_url = \"not a url\"\n",
		"toml":           "config_schema = [",
	}
	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			path := filepath.Join(dir, CfgFile)
			require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
			cfg := &Instance{cfgPath: path, defaults: BaseDefaults}
			require.Error(t, cfg.Load())
		})
	}
}

func TestLoadNoPath(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	require.Error(t, cfg.Load())
	require.Error(t, cfg.Save())
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "config_schema = 1\n")
	cfg.SetSteamDir("/steam")
	cfg.SetSteamUserID("42")
	cfg.SetUMUEnabled(true)
	cfg.SetStoreTrimmedLaunchOptions(true)
	require.NoError(t, cfg.Save())

	reloaded := &Instance{cfgPath: cfg.Path(), defaults: BaseDefaults}
	require.NoError(t, reloaded.Load())
	assert.Equal(t, "/steam", reloaded.SteamDir())
	assert.Equal(t, "42", reloaded.SteamUserID())
	assert.True(t, reloaded.UMUEnabled())
	assert.True(t, reloaded.StoreTrimmedLaunchOptions())
}

func TestCallTimeoutInvalid(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "config_schema = 1\n[shortcuts]\ncall_timeout = \"soon\"\n")
	assert.Zero(t, cfg.CallTimeout())

	cfg = writeConfig(t, "config_schema = 1\n[shortcuts]\ncall_timeout = \"-1s\"\n")
	assert.Zero(t, cfg.CallTimeout())
}

func TestInstallerDropDir(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "config_schema = 1\n")
	assert.Equal(t, filepath.Join("/data", DropDir), cfg.InstallerDropDir("/data"))

	cfg = writeConfig(t, "config_schema = 1\n[installer]\ndrop_dir = \"incoming\"\n")
	assert.Equal(t, filepath.Join("/data", "incoming"), cfg.InstallerDropDir("/data"))

	cfg = writeConfig(t, "config_schema = 1\n[installer]\ndrop_dir = \"/tmp/drop\"\n")
	assert.Equal(t, "/tmp/drop", cfg.InstallerDropDir("/data"))
}

func TestIsSiteAllowed(t *testing.T) {
	t.Parallel()

	open := writeConfig(t, "config_schema = 1\n")
	assert.True(t, open.IsSiteAllowed("itch.io"))
	assert.False(t, open.IsSiteAllowed(""))

	restricted := writeConfig(t, `
config_schema = 1
[installer]
allow_sites = ['^itch\.io$', '(']
`)
	assert.True(t, restricted.IsSiteAllowed("itch.io"))
	assert.False(t, restricted.IsSiteAllowed("example.com"))
}

func TestCheckAllow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		allow    []string
		allowRe  []*regexp.Regexp
		expected bool
	}{
		{
			name:     "empty input returns false",
			allow:    []string{".*"},
			allowRe:  []*regexp.Regexp{regexp.MustCompile(".*")},
			input:    "",
			expected: false,
		},
		{
			name:     "nil regex returns false",
			allow:    []string{"test"},
			allowRe:  []*regexp.Regexp{nil},
			input:    "test",
			expected: false,
		},
		{
			name:     "exact match",
			allow:    []string{"test"},
			allowRe:  []*regexp.Regexp{regexp.MustCompile("^test$")},
			input:    "test",
			expected: true,
		},
		{
			name:     "multiple patterns second matches",
			allow:    []string{"test", "other"},
			allowRe:  []*regexp.Regexp{regexp.MustCompile("test"), regexp.MustCompile("other")},
			input:    "other456",
			expected: true,
		},
		{
			name:     "case insensitive match",
			allow:    []string{"(?i)itch"},
			allowRe:  []*regexp.Regexp{regexp.MustCompile("(?i)itch")},
			input:    "ITCH.io",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, checkAllow(tt.allow, tt.allowRe, tt.input))
		})
	}
}
