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
	"path/filepath"
	"regexp"
)

type Installer struct {
	// Command is the shell-style command line of the installer.
	Command string `toml:"command"`
	// Dir is the working directory the installer runs in.
	Dir string `toml:"dir,omitempty"`
	// DropDir is watched for descriptor files while autoscan is on.
	DropDir string `toml:"drop_dir,omitempty"`
	// AllowSites restricts which custom sites are passed to the installer.
	// Every site is allowed when empty.
	AllowSites   []string `toml:"allow_sites,omitempty,multiline"`
	allowSitesRe []*regexp.Regexp
}

func (c *Instance) InstallerCommand() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Installer.Command
}

func (c *Instance) InstallerDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Installer.Dir
}

// InstallerDropDir returns the autoscan drop directory, relative paths
// resolved against dataDir.
func (c *Instance) InstallerDropDir(dataDir string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dir := c.vals.Installer.DropDir
	if dir == "" {
		return filepath.Join(dataDir, DropDir)
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(dataDir, dir)
}

func (c *Instance) IsSiteAllowed(site string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.vals.Installer.AllowSites) == 0 {
		return site != ""
	}
	return checkAllow(c.vals.Installer.AllowSites, c.vals.Installer.allowSitesRe, site)
}
