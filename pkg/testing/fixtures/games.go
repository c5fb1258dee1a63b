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

// Package fixtures holds sample installer output shared by tests.
package fixtures

import "github.com/nonsteamlaunchers/nsl-core/pkg/shortcuts"

const CompatDataPath = "/home/deck/.local/share/Steam/steamapps/compatdata/NonSteamLaunchers/"

const epicExe = `"` + CompatDataPath +
	`pfx/drive_c/Program Files (x86)/Epic Games/Launcher/Portal/Binaries/Win32/EpicGamesLauncher.exe"`

// EpicLauncher is the Epic Games Store launcher shortcut.
func EpicLauncher() shortcuts.GameDescriptor {
	return shortcuts.GameDescriptor{
		AppName:       "Epic Games",
		Exe:           epicExe,
		StartDir:      `"` + CompatDataPath + `pfx/drive_c/Program Files (x86)/Epic Games/"`,
		LaunchOptions: `STEAM_COMPAT_DATA_PATH="` + CompatDataPath + `" %command% -opengl`,
		CompatTool:    "GE-Proton9-20",
	}
}

// Fortnite is an Epic game the UMU database knows.
func Fortnite() shortcuts.GameDescriptor {
	return shortcuts.GameDescriptor{
		AppName:  "Fortnite",
		Exe:      epicExe,
		StartDir: `"` + CompatDataPath + `pfx/drive_c/Program Files (x86)/Epic Games/"`,
		LaunchOptions: `STEAM_COMPAT_DATA_PATH="` + CompatDataPath + `" %command% ` +
			`-com.epicgames.launcher://apps/Fortnite?action=launch&silent=true`,
	}
}

// Malformed has an exe without a quoted path.
func Malformed() shortcuts.GameDescriptor {
	return shortcuts.GameDescriptor{
		AppName: "Broken Game",
		Exe:     "/usr/bin/broken",
	}
}

// UMUDatabaseCSV is a small UMU database export.
const UMUDatabaseCSV = `TITLE,STORE,CODENAME,UMU_ID,COMMON ACRONYM (Optional),NOTE (Optional)
Fortnite,egs,fortnite,umu-fortnite,,
Anno 1800,uplay,4553,umu-916440,,Needs Ubisoft Connect
`
