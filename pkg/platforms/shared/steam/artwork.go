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
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	"image/png"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nfnt/resize"
	"github.com/nonsteamlaunchers/nsl-core/pkg/shortcuts"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const maxArtworkBytes = 32 << 20

var (
	ErrUnsupportedFormat = errors.New("unsupported artwork format")
	ErrUnknownSlot       = errors.New("unknown artwork slot")
)

type slotSpec struct {
	suffix    string
	maxWidth  uint
	maxHeight uint
}

var slotSpecs = map[shortcuts.ArtworkSlot]slotSpec{
	shortcuts.SlotGrid:     {suffix: "p", maxWidth: 600, maxHeight: 900},
	shortcuts.SlotHero:     {suffix: "_hero", maxWidth: 3840, maxHeight: 1240},
	shortcuts.SlotLogo:     {suffix: "_logo", maxWidth: 1280, maxHeight: 720},
	shortcuts.SlotWideGrid: {suffix: "", maxWidth: 920, maxHeight: 430},
}

// ArtworkPath returns the file Steam reads a slot's custom artwork from.
func ArtworkPath(steamDir, userID string, appID uint32, slot shortcuts.ArtworkSlot) (string, error) {
	spec, ok := slotSpecs[slot]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownSlot, int(slot))
	}
	name := strconv.FormatUint(uint64(appID), 10) + spec.suffix + ".png"
	return filepath.Join(GridDir(steamDir, userID), name), nil
}

// SetCustomArtwork stores the image at source as the artwork of a
// shortcut's slot. The source may be a local path, a file:// URI or an
// http(s) URL. Images larger than the slot are scaled down. An empty
// source leaves the slot untouched.
func (h *Host) SetCustomArtwork(
	ctx context.Context,
	appID uint32,
	source, format string,
	slot shortcuts.ArtworkSlot,
) error {
	if !strings.EqualFold(format, shortcuts.ArtworkFormat) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	spec, ok := slotSpecs[slot]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownSlot, int(slot))
	}
	if source == "" {
		log.Debug().Uint32("appID", appID).Stringer("slot", slot).Msg("no artwork for slot")
		return nil
	}
	dest, err := ArtworkPath(h.steamDir, h.userID, appID, slot)
	if err != nil {
		return err
	}

	data, err := h.loadArtwork(ctx, source)
	if err != nil {
		return err
	}

	img, kind, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode artwork %s: %w", source, err)
	}

	bounds := img.Bounds()
	if uint(bounds.Dx()) > spec.maxWidth || uint(bounds.Dy()) > spec.maxHeight {
		img = resize.Thumbnail(spec.maxWidth, spec.maxHeight, img, resize.Lanczos3)
		log.Debug().
			Stringer("slot", slot).
			Int("fromWidth", bounds.Dx()).
			Int("toWidth", img.Bounds().Dx()).
			Msg("scaled artwork down")
	}

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return fmt.Errorf("failed to encode artwork: %w", err)
	}

	if err := writeFileAtomic(h.fs, dest, out.Bytes()); err != nil {
		return err
	}

	log.Debug().
		Uint32("appID", appID).
		Stringer("slot", slot).
		Str("source", source).
		Str("sourceFormat", kind).
		Str("path", dest).
		Msg("saved artwork")
	return nil
}

func (h *Host) loadArtwork(ctx context.Context, source string) ([]byte, error) {
	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// plain path, or a windows drive letter parsed as scheme
		return h.readArtworkFile(source)
	}

	switch u.Scheme {
	case "file":
		return h.readArtworkFile(u.Path)
	case "http", "https":
		return h.downloadArtwork(ctx, u.String())
	default:
		return nil, fmt.Errorf("unsupported artwork source scheme: %s", u.Scheme)
	}
}

func (h *Host) readArtworkFile(path string) ([]byte, error) {
	f, err := h.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artwork: %w", err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	if err := copyLimited(&buf, f, maxArtworkBytes); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (h *Host) downloadArtwork(ctx context.Context, src string) ([]byte, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("artwork download not started: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create artwork request: %w", err)
	}
	resp, err := h.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download artwork: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("artwork download returned status %d", resp.StatusCode)
	}

	var buf bytes.Buffer
	if err := copyLimited(&buf, resp.Body, maxArtworkBytes); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RemoveArtwork deletes every custom artwork file of a shortcut. Missing
// files are ignored.
func (h *Host) RemoveArtwork(appID uint32) error {
	for slot := range slotSpecs {
		path, err := ArtworkPath(h.steamDir, h.userID, appID, slot)
		if err != nil {
			return err
		}
		if exists, _ := afero.Exists(h.fs, path); !exists {
			continue
		}
		if err := h.fs.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}
