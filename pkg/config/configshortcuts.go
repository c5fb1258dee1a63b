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

import "time"

const (
	LaunchOptionsOriginal = "original"
	LaunchOptionsTail     = "tail"
)

type Shortcuts struct {
	// CallTimeout bounds each shortcut host call, e.g. "5s". Empty means
	// no limit.
	CallTimeout   string `toml:"call_timeout,omitempty"`
	LaunchOptions string `toml:"launch_options" validate:"omitempty,oneof=original tail"`
	Concurrency   int    `toml:"concurrency" validate:"gte=0,lte=16"`
	Notify        bool   `toml:"notify"`
	// NotifyFailures also shows a notification when a game could not be
	// added.
	NotifyFailures bool `toml:"notify_failures"`
}

// CallTimeout returns the per-call timeout, or 0 if unset or invalid.
func (c *Instance) CallTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.vals.Shortcuts.CallTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.vals.Shortcuts.CallTimeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

func (c *Instance) ShortcutConcurrency() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Shortcuts.Concurrency < 1 {
		return 1
	}
	return c.vals.Shortcuts.Concurrency
}

// StoreTrimmedLaunchOptions reports whether the shortened launch options
// are stored instead of the installer's original string.
func (c *Instance) StoreTrimmedLaunchOptions() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Shortcuts.LaunchOptions == LaunchOptionsTail
}

func (c *Instance) SetStoreTrimmedLaunchOptions(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if enabled {
		c.vals.Shortcuts.LaunchOptions = LaunchOptionsTail
	} else {
		c.vals.Shortcuts.LaunchOptions = LaunchOptionsOriginal
	}
}

func (c *Instance) Notify() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Shortcuts.Notify
}

func (c *Instance) NotifyFailures() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Shortcuts.NotifyFailures
}
