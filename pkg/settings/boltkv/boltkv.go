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

// Package boltkv persists settings in a bbolt database file.
//
// The file is opened for each operation and closed right after, so a
// long-running watcher and short-lived commands can share it. bbolt holds
// a file lock while the database is open.
package boltkv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nonsteamlaunchers/nsl-core/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
)

const (
	// DBFile is the database file name inside the data directory.
	DBFile = "settings.db"
	// Bucket holds one JSON document per key.
	Bucket = "settings"
	// LockTimeout is how long an operation waits for another process to
	// release the file.
	LockTimeout = 2 * time.Second
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("settings database is closed")

type Store struct {
	path   string
	mu     syncutil.Mutex
	closed bool
}

// Open creates the database at path if needed and returns a Store for it.
// The file is not held open.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}

	s := &Store{path: path}
	err := s.with(context.Background(), false, func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(Bucket))
		return err //nolint:wrapcheck // wrapped below
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create settings bucket: %w", err)
	}

	log.Debug().Str("path", path).Msg("opened settings database")
	return s, nil
}

// Close stops further use of the store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// with opens the database, runs fn in a transaction and closes it again.
func (s *Store) with(ctx context.Context, readOnly bool, fn func(*bolt.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("settings access cancelled: %w", err)
	}

	db, err := bolt.Open(s.path, 0o600, &bolt.Options{
		Timeout:  LockTimeout,
		ReadOnly: readOnly,
	})
	if err != nil {
		return fmt.Errorf("failed to open bolt database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Str("path", s.path).Msg("failed to close settings database")
		}
	}()

	if readOnly {
		return db.View(fn) //nolint:wrapcheck // wrapped by callers
	}
	return db.Update(fn) //nolint:wrapcheck // wrapped by callers
}

// Get returns the JSON document stored under key, or def.
func (s *Store) Get(ctx context.Context, key string, def map[string]any) (map[string]any, error) {
	var raw []byte
	err := s.with(ctx, true, func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(Bucket))
		if b == nil {
			return fmt.Errorf("bucket %q does not exist", Bucket)
		}
		if v := b.Get([]byte(key)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if raw == nil {
		return def, nil
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return out, nil
}

// Set replaces the document stored under key.
func (s *Store) Set(ctx context.Context, key string, value map[string]any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	err = s.with(ctx, false, func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(Bucket))
		if b == nil {
			return fmt.Errorf("bucket %q does not exist", Bucket)
		}
		return b.Put([]byte(key), data) //nolint:wrapcheck // wrapped below
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
