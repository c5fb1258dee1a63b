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

package platforms

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nonsteamlaunchers/nsl-core/pkg/config"
)

// HasUserDir returns the "user" directory next to the executable when it
// exists. It makes a portable install keep all its files in one place.
func HasUserDir() (string, bool) {
	exePath := os.Getenv(config.AppEnv)
	if exePath == "" {
		var err error
		exePath, err = os.Executable()
		if err != nil {
			return "", false
		}
	}

	userDir := filepath.Join(filepath.Dir(exePath), config.UserDir)
	info, err := os.Stat(userDir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return userDir, true
}

// Detect returns the platform ID for the running system.
func Detect() string {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return PlatformIDLinux
	}
	return detect(string(data))
}

func detect(osRelease string) string {
	for _, line := range strings.Split(osRelease, "\n") {
		id, ok := strings.CutPrefix(strings.TrimSpace(line), "ID=")
		if ok && strings.Trim(id, `"`) == "steamos" {
			return PlatformIDSteamOS
		}
	}
	return PlatformIDLinux
}
