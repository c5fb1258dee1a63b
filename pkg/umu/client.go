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

// Package umu looks games up in the UMU database and rewrites their
// shortcuts to launch through umu-run.
package umu

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/jonboulle/clockwork"
	"github.com/nonsteamlaunchers/nsl-core/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	DatabaseURL  = "https://raw.githubusercontent.com/Open-Wine-Components/umu-database/main/umu-database.csv"
	DatabaseFile = "umu-database.csv"
	// DefaultMaxAge is how long a cached copy is used before it is
	// downloaded again.
	DefaultMaxAge = 24 * time.Hour
)

// Entry is one row of the UMU database.
type Entry struct {
	Title    string `csv:"TITLE"`
	Store    string `csv:"STORE"`
	Codename string `csv:"CODENAME"`
	UMUID    string `csv:"UMU_ID"`
	Acronym  string `csv:"COMMON ACRONYM (Optional)"`
	Note     string `csv:"NOTE (Optional)"`
}

// GameID returns the UMU ID without its "umu-" prefix, as expected in the
// GAMEID variable.
func (e *Entry) GameID() string {
	return trimUMUPrefix(e.UMUID)
}

// Client downloads and caches the UMU database.
type Client struct {
	httpClient *http.Client
	fs         afero.Fs
	clock      clockwork.Clock
	entries    []Entry
	url        string
	cachePath  string
	MaxAge     time.Duration
	mu         syncutil.Mutex
}

// NewClient returns a client caching the database at cachePath.
func NewClient(httpClient *http.Client, fs afero.Fs, url, cachePath string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if url == "" {
		url = DatabaseURL
	}
	return &Client{
		httpClient: httpClient,
		fs:         fs,
		clock:      clockwork.NewRealClock(),
		url:        url,
		cachePath:  cachePath,
		MaxAge:     DefaultMaxAge,
	}
}

// DefaultCachePath returns the cache location inside dataDir.
func DefaultCachePath(dataDir string) string {
	return filepath.Join(dataDir, DatabaseFile)
}

func (c *Client) doRequest(ctx context.Context) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func (c *Client) cacheFresh() bool {
	info, err := c.fs.Stat(c.cachePath)
	if err != nil {
		return false
	}
	return c.clock.Since(info.ModTime()) < c.MaxAge
}

// Update downloads the database unless the cached copy is still fresh.
// It reports whether a new copy was written.
func (c *Client) Update(ctx context.Context) (bool, error) {
	if c.cacheFresh() {
		return false, nil
	}

	status, body, err := c.doRequest(ctx)
	if err != nil {
		return false, err
	}
	if status != http.StatusOK {
		return false, fmt.Errorf("download failed with status %d", status)
	}

	// reject anything gocsv cannot read before replacing a working cache
	if _, err := parse(bytes.NewReader(body)); err != nil {
		return false, err
	}

	if err := c.fs.MkdirAll(filepath.Dir(c.cachePath), 0o750); err != nil {
		return false, fmt.Errorf("failed to create directory: %w", err)
	}
	if err := afero.WriteFile(c.fs, c.cachePath, body, 0o600); err != nil {
		return false, fmt.Errorf("failed to write umu database: %w", err)
	}
	return true, nil
}

// Read parses the cached database.
func (c *Client) Read() ([]Entry, error) {
	file, err := c.fs.Open(c.cachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open umu database: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	return parse(file)
}

func parse(r io.Reader) ([]Entry, error) {
	entries := make([]Entry, 0)
	if err := gocsv.Unmarshal(r, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal umu database CSV: %w", err)
	}
	return entries, nil
}

// Entries returns the database, refreshing the cache when it is stale.
// A failed refresh falls back to the cached copy. The result is kept in
// memory for the life of the client.
func (c *Client) Entries(ctx context.Context) ([]Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries != nil {
		return c.entries, nil
	}

	if updated, err := c.Update(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to update umu database, using cached copy")
	} else if updated {
		log.Info().Msg("downloaded umu database")
	}

	entries, err := c.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoDatabase, err)
	}
	c.entries = entries
	return entries, nil
}
