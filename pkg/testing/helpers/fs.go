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

// Package helpers builds on-disk fixtures for tests.
package helpers

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/nonsteamlaunchers/nsl-core/pkg/shortcuts"
	"github.com/spf13/afero"
)

type FSHelper struct {
	Fs afero.Fs
}

func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// CreateSteamUser creates the userdata config directory of a Steam
// account.
func (h *FSHelper) CreateSteamUser(steamDir, userID string) error {
	dir := filepath.Join(steamDir, "userdata", userID, "config")
	if err := h.Fs.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create Steam user directory: %w", err)
	}
	return nil
}

// CreateCompatTool installs a custom compatibility tool. internalName is
// written to its manifest when set.
func (h *FSHelper) CreateCompatTool(steamDir, dirName, internalName string) error {
	dir := filepath.Join(steamDir, "compatibilitytools.d", dirName)
	if err := h.Fs.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create compat tool directory: %w", err)
	}
	if internalName == "" {
		return nil
	}
	manifest := fmt.Sprintf(`"compatibilitytools"
{
	"compat_tools"
	{
		%q
		{
			"install_path" "."
			"display_name" %q
			"from_oslist" "windows"
			"to_oslist" "linux"
		}
	}
}
`, internalName, dirName)
	path := filepath.Join(dir, "compatibilitytool.vdf")
	if err := afero.WriteFile(h.Fs, path, []byte(manifest), 0o644); err != nil { //nolint:gosec // read by Steam
		return fmt.Errorf("failed to write compat tool manifest: %w", err)
	}
	return nil
}

// CreateDescriptorFile writes games as a JSON array.
func (h *FSHelper) CreateDescriptorFile(path string, games []shortcuts.GameDescriptor) error {
	data, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal descriptors to JSON: %w", err)
	}

	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for descriptor file: %w", err)
	}

	if err := afero.WriteFile(h.Fs, path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write descriptor file: %w", err)
	}
	return nil
}
