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

type UMU struct {
	DatabaseURL string `toml:"database_url,omitempty" validate:"omitempty,url"`
	// DefaultTool is the compatibility tool used for games that do not
	// name one.
	DefaultTool string `toml:"default_tool,omitempty"`
	Enabled     bool   `toml:"enabled"`
}

func (c *Instance) UMUEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.UMU.Enabled
}

func (c *Instance) SetUMUEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.UMU.Enabled = enabled
}

func (c *Instance) UMUDatabaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.UMU.DatabaseURL
}

func (c *Instance) UMUDefaultTool() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.UMU.DefaultTool
}

func (c *Instance) SetUMUDatabaseURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.UMU.DatabaseURL = url
}
