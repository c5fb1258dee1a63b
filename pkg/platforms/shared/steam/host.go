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
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/nonsteamlaunchers/nsl-core/internal/vdfbinary"
	"github.com/nonsteamlaunchers/nsl-core/pkg/helpers/syncutil"
	"github.com/nonsteamlaunchers/nsl-core/pkg/shortcuts"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/time/rate"
)

var _ shortcuts.Host = (*Host)(nil)

// Host edits the shortcut catalog, artwork and compatibility tool mapping
// of one Steam user directly on disk. Steam should not be running while
// the files are modified or it will overwrite them on exit.
type Host struct {
	fs       afero.Fs
	http     *http.Client
	limiter  *rate.Limiter
	steamDir string
	userID   string
	mu       syncutil.Mutex
}

// Artwork downloads are throttled so a large batch does not hammer the
// image host.
const (
	DefaultDownloadRate  = 4
	DefaultDownloadBurst = 8
)

// HostOption configures a Host.
type HostOption func(*Host)

// WithFs sets the filesystem the host works on.
func WithFs(fs afero.Fs) HostOption {
	return func(h *Host) {
		h.fs = fs
	}
}

// WithHTTPClient sets the client used to download remote artwork.
func WithHTTPClient(c *http.Client) HostOption {
	return func(h *Host) {
		h.http = c
	}
}

// WithDownloadLimit sets how many artwork downloads may start per second.
// A zero or negative rate disables the limit.
func WithDownloadLimit(perSecond float64, burst int) HostOption {
	return func(h *Host) {
		if perSecond <= 0 {
			h.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		h.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewHost returns a Host for userID in the Steam installation at steamDir.
func NewHost(steamDir, userID string, opts ...HostOption) *Host {
	h := &Host{
		fs:       afero.NewOsFs(),
		http:     &http.Client{Timeout: 30 * time.Second},
		limiter:  rate.NewLimiter(DefaultDownloadRate, DefaultDownloadBurst),
		steamDir: steamDir,
		userID:   userID,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SteamDir returns the Steam installation directory.
func (h *Host) SteamDir() string {
	return h.steamDir
}

// UserID returns the Steam user the host edits.
func (h *Host) UserID() string {
	return h.userID
}

func (h *Host) shortcutsPath() string {
	return ShortcutsPath(h.steamDir, h.userID)
}

func (h *Host) readCatalog() (*vdfbinary.Catalog, error) {
	data, err := afero.ReadFile(h.fs, h.shortcutsPath())
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(data) == 0) {
		return vdfbinary.NewCatalog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read shortcuts: %w", err)
	}
	c, err := vdfbinary.ReadCatalog(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse shortcuts: %w", err)
	}
	return c, nil
}

func (h *Host) writeCatalog(c *vdfbinary.Catalog) error {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return fmt.Errorf("failed to encode shortcuts: %w", err)
	}
	return writeFileAtomic(h.fs, h.shortcutsPath(), buf.Bytes())
}

// editCatalog runs fn on the current catalog and saves it when fn
// succeeds.
func (h *Host) editCatalog(ctx context.Context, fn func(*vdfbinary.Catalog) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("shortcut edit cancelled: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	c, err := h.readCatalog()
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return h.writeCatalog(c)
}

func (h *Host) updateShortcut(ctx context.Context, appID uint32, fn func(*vdfbinary.Shortcut)) error {
	return h.editCatalog(ctx, func(c *vdfbinary.Catalog) error {
		return c.Update(appID, fn)
	})
}

// AddShortcut creates a shortcut and returns its app ID. Adding a
// shortcut whose exe and name are already in the catalog refreshes that
// entry instead of duplicating it and drops its custom artwork, so the
// follow-up artwork calls start from a clean slate.
func (h *Host) AddShortcut(
	ctx context.Context,
	name, exe, startDir, launchOptions string,
) (uint32, error) {
	sc := vdfbinary.NewShortcut(name, exe, startDir, launchOptions)
	refreshed := false
	err := h.editCatalog(ctx, func(c *vdfbinary.Catalog) error {
		err := c.Update(sc.AppID, func(existing *vdfbinary.Shortcut) {
			log.Debug().Uint32("appID", sc.AppID).Msg("shortcut already exists, updating")
			refreshed = true
			existing.AppName = name
			existing.Exe = exe
			existing.StartDir = startDir
			existing.LaunchOptions = launchOptions
		})
		if errors.Is(err, vdfbinary.ErrShortcutNotFound) {
			c.Add(&sc)
			return nil
		}
		return err
	})
	if err != nil {
		return 0, err
	}
	if refreshed {
		if err := h.RemoveArtwork(sc.AppID); err != nil {
			return 0, fmt.Errorf("failed to clear artwork of %d: %w", sc.AppID, err)
		}
	}
	return sc.AppID, nil
}

func (h *Host) SetShortcutName(ctx context.Context, appID uint32, name string) error {
	return h.updateShortcut(ctx, appID, func(s *vdfbinary.Shortcut) {
		s.AppName = name
	})
}

func (h *Host) SetLaunchOptions(ctx context.Context, appID uint32, options string) error {
	return h.updateShortcut(ctx, appID, func(s *vdfbinary.Shortcut) {
		s.LaunchOptions = options
	})
}

func (h *Host) SetShortcutExe(ctx context.Context, appID uint32, exe string) error {
	return h.updateShortcut(ctx, appID, func(s *vdfbinary.Shortcut) {
		s.Exe = exe
	})
}

func (h *Host) SetShortcutStartDir(ctx context.Context, appID uint32, dir string) error {
	return h.updateShortcut(ctx, appID, func(s *vdfbinary.Shortcut) {
		s.StartDir = dir
	})
}

// AddUserTag adds tag to every listed shortcut that does not carry it yet.
func (h *Host) AddUserTag(ctx context.Context, appIDs []uint32, tag string) error {
	return h.editCatalog(ctx, func(c *vdfbinary.Catalog) error {
		for _, id := range appIDs {
			err := c.Update(id, func(s *vdfbinary.Shortcut) {
				if !slices.Contains(s.Tags, tag) {
					s.Tags = append(s.Tags, tag)
				}
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Shortcuts returns every shortcut in the user's catalog.
func (h *Host) Shortcuts(ctx context.Context) ([]vdfbinary.Shortcut, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("shortcut read cancelled: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	c, err := h.readCatalog()
	if err != nil {
		return nil, err
	}
	return c.Shortcuts()
}

func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func copyLimited(w io.Writer, r io.Reader, limit int64) error {
	n, err := io.Copy(w, io.LimitReader(r, limit+1))
	if err != nil {
		return fmt.Errorf("failed to read artwork: %w", err)
	}
	if n > limit {
		return fmt.Errorf("artwork larger than %d bytes", limit)
	}
	return nil
}
