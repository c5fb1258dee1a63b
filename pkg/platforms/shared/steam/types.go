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

package steam

// Options configures Steam directory detection.
type Options struct {
	// FallbackPath is used if Steam directory detection fails.
	// Linux examples: "/home/deck/.steam/steam", "/usr/games/steam"
	FallbackPath string

	// ExtraPaths are additional paths to check for a Steam installation.
	ExtraPaths []string

	// CheckFlatpak enables checking for a Flatpak Steam installation.
	CheckFlatpak bool
}

// DefaultSteamOSOptions returns options for a Steam Deck running SteamOS.
func DefaultSteamOSOptions() Options {
	return Options{
		FallbackPath: "/home/deck/.steam/steam",
		ExtraPaths:   []string{"/home/deck/.local/share/Steam"},
		CheckFlatpak: false,
	}
}

// DefaultLinuxOptions returns options for desktop Linux distributions.
func DefaultLinuxOptions() Options {
	return Options{
		FallbackPath: "/usr/games/steam",
		CheckFlatpak: true,
	}
}
