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

// Package steam reads and edits a local Steam installation's user data:
// the non-Steam shortcut catalog, custom artwork and compatibility tool
// assignments.
package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const FlatpakSteamID = "com.valvesoftware.Steam"

// Client locates Steam directories.
type Client struct {
	fs   afero.Fs
	home string
	opts Options
}

// NewClient returns a Client using the real filesystem and the current
// user's home directory.
func NewClient(opts Options) *Client {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn().Err(err).Msg("failed to get user home directory")
	}
	return NewClientWithFs(afero.NewOsFs(), home, opts)
}

// NewClientWithFs returns a Client on fs with home as the home directory.
func NewClientWithFs(fs afero.Fs, home string, opts Options) *Client {
	return &Client{fs: fs, home: home, opts: opts}
}

func (c *Client) exists(path string) bool {
	_, err := c.fs.Stat(path)
	return err == nil
}

// FindSteamDir locates the Steam installation directory. A non-empty
// configured path wins when it exists.
func (c *Client) FindSteamDir(configured string) string {
	if configured != "" {
		if c.exists(configured) {
			log.Debug().Msgf("using user-configured Steam directory: %s", configured)
			return configured
		}
		log.Warn().Msgf("user-configured Steam directory not found: %s", configured)
	}

	var paths []string
	if c.home != "" {
		paths = append(paths,
			filepath.Join(c.home, ".steam", "steam"),
			filepath.Join(c.home, ".local", "share", "Steam"),
		)
	}

	paths = append(paths, c.opts.ExtraPaths...)

	if c.opts.CheckFlatpak && c.home != "" {
		paths = append(paths, filepath.Join(
			c.home, ".var", "app", FlatpakSteamID,
			".steam", "steam",
		))
	}

	for _, path := range paths {
		if c.exists(path) {
			log.Debug().Msgf("found Steam installation: %s", path)
			return path
		}
	}

	log.Debug().Msgf("Steam detection failed, using fallback: %s", c.opts.FallbackPath)
	return c.opts.FallbackPath
}

// FindUserID returns the Steam user whose userdata directory was modified
// most recently, which is the account last logged in on the device.
func (c *Client) FindUserID(steamDir string) (string, error) {
	userdataDir := filepath.Join(steamDir, "userdata")
	entries, err := afero.ReadDir(c.fs, userdataDir)
	if err != nil {
		return "", fmt.Errorf("failed to read Steam userdata directory: %w", err)
	}

	var users []os.FileInfo
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		// "0" is the anonymous user and never owns shortcuts
		if id, err := strconv.ParseUint(e.Name(), 10, 32); err != nil || id == 0 {
			continue
		}
		users = append(users, e)
	}
	if len(users) == 0 {
		return "", fmt.Errorf("no Steam users found in %s", userdataDir)
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].ModTime().After(users[j].ModTime())
	})

	log.Debug().Str("userId", users[0].Name()).Int("users", len(users)).Msg("selected Steam user")
	return users[0].Name(), nil
}

// ShortcutsPath returns the path of a user's shortcuts.vdf.
func ShortcutsPath(steamDir, userID string) string {
	return filepath.Join(steamDir, "userdata", userID, "config", "shortcuts.vdf")
}

// GridDir returns the directory holding a user's custom artwork.
func GridDir(steamDir, userID string) string {
	return filepath.Join(steamDir, "userdata", userID, "config", "grid")
}

// ConfigVDFPath returns the path of Steam's global config.vdf.
func ConfigVDFPath(steamDir string) string {
	return filepath.Join(steamDir, "config", "config.vdf")
}

// CompatToolsDir returns the directory custom compatibility tools are
// installed to.
func CompatToolsDir(steamDir string) string {
	return filepath.Join(steamDir, "compatibilitytools.d")
}

// ShortcutGameID converts a 32-bit shortcut app ID into the 64-bit ID Steam
// uses to launch it: (AppID << 32) | 0x02000000.
func ShortcutGameID(appID uint32) uint64 {
	return (uint64(appID) << 32) | 0x02000000
}

// RunGameURL returns the steam:// URL that launches a shortcut.
func RunGameURL(appID uint32) string {
	return "steam://rungameid/" + strconv.FormatUint(ShortcutGameID(appID), 10)
}
