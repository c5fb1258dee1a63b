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

// Package linux is the platform for desktop Linux distributions running
// Steam natively or from Flatpak.
package linux

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/nonsteamlaunchers/nsl-core/pkg/config"
	"github.com/nonsteamlaunchers/nsl-core/pkg/platforms"
	"github.com/nonsteamlaunchers/nsl-core/pkg/platforms/shared/steam"
)

type Platform struct{}

var _ platforms.Platform = (*Platform)(nil)

func NewPlatform() *Platform {
	return &Platform{}
}

func (*Platform) ID() string {
	return platforms.PlatformIDLinux
}

func (*Platform) Settings() platforms.Settings {
	s := platforms.Settings{
		DataDir:   filepath.Join(xdg.DataHome, config.AppName),
		ConfigDir: filepath.Join(xdg.ConfigHome, config.AppName),
		LogDir:    filepath.Join(xdg.StateHome, config.AppName),
		TempDir:   filepath.Join(os.TempDir(), config.AppName),
	}
	if v, ok := platforms.HasUserDir(); ok {
		s.DataDir = v
		s.ConfigDir = v
		s.LogDir = v
	}
	return s
}

func (*Platform) SteamOptions() steam.Options {
	return steam.DefaultLinuxOptions()
}
