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

package shortcuts

import (
	"context"
	"fmt"
)

// ProvenanceTag is added to every shortcut this system creates so they can
// be told apart from shortcuts the user added by hand.
const ProvenanceTag = "NonSteamLaunchers"

// ArtworkFormat is the image format passed to the host for every slot.
const ArtworkFormat = "png"

// ArtworkSlot is a host-defined artwork placement for a library entry.
type ArtworkSlot int

const (
	SlotGrid     ArtworkSlot = 0
	SlotHero     ArtworkSlot = 1
	SlotLogo     ArtworkSlot = 2
	SlotWideGrid ArtworkSlot = 3
)

func (s ArtworkSlot) String() string {
	switch s {
	case SlotGrid:
		return "grid"
	case SlotHero:
		return "hero"
	case SlotLogo:
		return "logo"
	case SlotWideGrid:
		return "widegrid"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Artwork pairs an image path or URI with the slot it is applied to.
type Artwork struct {
	Path string
	Slot ArtworkSlot
}

// Host is the platform's shortcut catalog. A zero app ID from AddShortcut
// means the host declined to create the entry.
type Host interface {
	AddShortcut(ctx context.Context, name, exe, startDir, launchOptions string) (uint32, error)
	SetShortcutName(ctx context.Context, appID uint32, name string) error
	SetLaunchOptions(ctx context.Context, appID uint32, options string) error
	SetShortcutExe(ctx context.Context, appID uint32, exe string) error
	SetShortcutStartDir(ctx context.Context, appID uint32, dir string) error
	SpecifyCompatTool(ctx context.Context, appID uint32, tool string) error
	SetCustomArtwork(ctx context.Context, appID uint32, path, format string, slot ArtworkSlot) error
	AddUserTag(ctx context.Context, appIDs []uint32, tag string) error
}

// Notifier shows a short message to the user. Callers only log its error.
type Notifier interface {
	Toast(ctx context.Context, title, body string) error
}
