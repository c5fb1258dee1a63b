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

// Package platforms describes the host systems NSL runs on: where it keeps
// its files and how Steam is found there.
package platforms

import (
	"github.com/nonsteamlaunchers/nsl-core/pkg/platforms/shared/steam"
)

const (
	PlatformIDSteamOS = "steamos"
	PlatformIDLinux   = "linux"
)

// Settings holds the directories a platform stores files in.
type Settings struct {
	// DataDir is the root folder where databases and downloaded assets are
	// permanently stored.
	DataDir string
	// ConfigDir is the directory where the config file is stored.
	ConfigDir string
	// TempDir is a temporary directory for files used for inter-process
	// communication. Expect it to be deleted.
	TempDir string
	// LogDir is where log files are written.
	LogDir string
}

// Platform is a supported host system.
type Platform interface {
	// ID returns the unique ID of this platform.
	ID() string
	// Settings returns the platform's directories.
	Settings() Settings
	// SteamOptions returns how Steam is detected on this platform.
	SteamOptions() steam.Options
}
