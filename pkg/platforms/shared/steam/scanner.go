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

	"github.com/nonsteamlaunchers/nsl-core/internal/vdfbinary"
	"github.com/nonsteamlaunchers/nsl-core/pkg/shortcuts"
)

// OwnedShortcut is a catalog entry created by this tool.
type OwnedShortcut struct {
	vdfbinary.Shortcut
	RunURL     string
	CompatTool string
}

// ScanOwned lists the shortcuts carrying the provenance tag, with the
// compatibility tool each one is mapped to.
func (h *Host) ScanOwned(ctx context.Context) ([]OwnedShortcut, error) {
	all, err := h.Shortcuts(ctx)
	if err != nil {
		return nil, err
	}

	var owned []OwnedShortcut
	for i := range all {
		if !all[i].HasTag(shortcuts.ProvenanceTag) {
			continue
		}
		tool, err := h.CompatTool(all[i].AppID)
		if err != nil {
			return nil, err
		}
		owned = append(owned, OwnedShortcut{
			Shortcut:   all[i],
			RunURL:     RunGameURL(all[i].AppID),
			CompatTool: tool,
		})
	}
	return owned, nil
}
