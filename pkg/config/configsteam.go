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

type Steam struct {
	// Dir overrides Steam installation detection.
	Dir string `toml:"dir,omitempty"`
	// UserID selects the userdata directory. The most recently used
	// account is picked when empty.
	UserID string `toml:"user_id,omitempty"`
	// Home is the directory umu-run and compatibility tools are installed
	// under. Defaults to the current user's home.
	Home string `toml:"home,omitempty"`
}

func (c *Instance) SteamDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Steam.Dir
}

func (c *Instance) SetSteamDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Steam.Dir = dir
}

func (c *Instance) SteamUserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Steam.UserID
}

func (c *Instance) SetSteamUserID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Steam.UserID = id
}

func (c *Instance) SteamHome() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Steam.Home
}
