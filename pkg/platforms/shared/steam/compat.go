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

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/nonsteamlaunchers/nsl-core/internal/vdftext"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// compatToolPriority is the priority Steam gives mappings chosen by the
// user in a game's properties.
const compatToolPriority = "250"

var compatMappingPath = []string{
	"InstallConfigStore", "Software", "Valve", "Steam", "CompatToolMapping",
}

// SpecifyCompatTool assigns a compatibility tool to a shortcut by writing
// its CompatToolMapping entry in config.vdf.
func (h *Host) SpecifyCompatTool(ctx context.Context, appID uint32, tool string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("compat tool update cancelled: %w", err)
	}
	if tool == "" {
		return errors.New("compat tool name is empty")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	path := ConfigVDFPath(h.steamDir)
	cfg, err := vdftext.ReadFile(h.fs, path)
	if err != nil {
		return err
	}

	mapping := vdftext.Path(cfg, compatMappingPath...)
	mapping[strconv.FormatUint(uint64(appID), 10)] = map[string]any{
		"name":     tool,
		"config":   "",
		"priority": compatToolPriority,
	}

	if err := vdftext.WriteFile(h.fs, path, cfg); err != nil {
		return err
	}
	log.Debug().Uint32("appID", appID).Str("tool", tool).Msg("set compat tool")
	return nil
}

// CompatTool returns the compatibility tool mapped to a shortcut, or "" if
// none is.
func (h *Host) CompatTool(appID uint32) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cfg, err := vdftext.ReadFile(h.fs, ConfigVDFPath(h.steamDir))
	if err != nil {
		return "", err
	}
	entry := vdftext.Path(cfg, append(compatMappingPath, strconv.FormatUint(uint64(appID), 10))...)
	name, _ := entry["name"].(string)
	return name, nil
}

// ListCompatTools returns the names of the custom compatibility tools
// installed in compatibilitytools.d. The directory name is used when a
// tool has no readable manifest.
func (h *Host) ListCompatTools() ([]string, error) {
	dir := CompatToolsDir(h.steamDir)
	entries, err := afero.ReadDir(h.fs, dir)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	tools := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		tools = append(tools, h.compatToolName(filepath.Join(dir, e.Name()), e.Name()))
	}
	slices.Sort(tools)
	return tools, nil
}

func (h *Host) compatToolName(dir, fallback string) string {
	manifest := filepath.Join(dir, "compatibilitytool.vdf")
	if exists, _ := afero.Exists(h.fs, manifest); !exists {
		return fallback
	}
	m, err := vdftext.ReadFile(h.fs, manifest)
	if err != nil {
		log.Warn().Err(err).Str("path", manifest).Msg("unreadable compat tool manifest")
		return fallback
	}
	// "compatibilitytools" { "compat_tools" { "<internal name>" { ... } } }
	for name := range vdftext.Path(m, "compatibilitytools", "compat_tools") {
		return name
	}
	return fallback
}
