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

// Package settings keeps the user's plugin preferences in memory and
// mirrors them to a key/value persistence service.
//
// The store is optimistic: Update changes the in-memory snapshot at once and
// persists in the background. Concurrent updates are last-writer-wins and
// there is no read-after-write guarantee against the backing store.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/nonsteamlaunchers/nsl-core/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
)

// PersistenceKey is the key the whole settings object is stored under.
const PersistenceKey = "settings"

// Key names a recognised setting.
type Key string

const (
	KeyAutoscan    Key = "autoscan"
	KeyCustomSites Key = "customSites"
)

// ErrUnknownKey is returned by Update for keys outside the settings schema.
var ErrUnknownKey = errors.New("unknown settings key")

// ErrInvalidValue is returned by Update when a value has the wrong type.
var ErrInvalidValue = errors.New("invalid settings value")

// Settings holds the user's preferences.
type Settings struct {
	CustomSites string `mapstructure:"customSites" json:"customSites"`
	Autoscan    bool   `mapstructure:"autoscan" json:"autoscan"`
}

// Defaults returns the settings used before anything was persisted.
func Defaults() Settings {
	return Settings{
		Autoscan:    false,
		CustomSites: "",
	}
}

// Map returns the flat key/value form handed to persistence.
func (s Settings) Map() map[string]any {
	return map[string]any{
		string(KeyAutoscan):    s.Autoscan,
		string(KeyCustomSites): s.CustomSites,
	}
}

// CustomSiteList splits CustomSites on commas and newlines.
func (s Settings) CustomSiteList() []string {
	fields := strings.FieldsFunc(s.CustomSites, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	sites := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			sites = append(sites, f)
		}
	}
	return sites
}

// Decode builds Settings from a persisted bag, starting from base so any
// key missing from bag keeps base's value. Unrecognised keys are ignored.
func Decode(bag map[string]any, base Settings) (Settings, error) {
	out := base
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return base, fmt.Errorf("failed to create settings decoder: %w", err)
	}
	if err := dec.Decode(bag); err != nil {
		return base, fmt.Errorf("failed to decode settings: %w", err)
	}
	return out, nil
}

// Persistence is the backing key/value service.
type Persistence interface {
	// Get returns the value stored under key, or def when nothing is stored.
	Get(ctx context.Context, key string, def map[string]any) (map[string]any, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value map[string]any) error
}

// Store caches Settings in memory.
type Store struct {
	persist  Persistence
	inflight sync.WaitGroup
	current  Settings
	mu       syncutil.RWMutex
	// seq counts accepted updates; guarded by mu
	seq uint64
	// writeMu serialises persists; persisted is the seq last written
	writeMu   syncutil.Mutex
	persisted uint64
}

// NewStore returns a Store holding Defaults until Load is called.
func NewStore(p Persistence) *Store {
	return &Store{
		persist: p,
		current: Defaults(),
	}
}

// Load fetches persisted settings, using the in-memory values as the
// fallback. Errors are logged and leave the in-memory state unchanged.
func (s *Store) Load(ctx context.Context) Settings {
	fallback := s.Snapshot()

	bag, err := s.persist.Get(ctx, PersistenceKey, fallback.Map())
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch settings")
		return fallback
	}

	loaded, err := Decode(bag, Defaults())
	if err != nil {
		log.Error().Err(err).Msg("failed to decode persisted settings")
		return fallback
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()

	log.Debug().Bool("autoscan", loaded.Autoscan).Msg("settings loaded")
	return loaded
}

// Snapshot returns the in-memory settings.
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update merges one key into the in-memory settings and persists the full
// merged object in the background. Only an unknown key or a value of the
// wrong type is reported; persistence errors are logged.
func (s *Store) Update(ctx context.Context, key Key, value any) error {
	s.mu.Lock()
	next := s.current
	switch key {
	case KeyAutoscan:
		v, ok := value.(bool)
		if !ok {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s must be a bool, got %T", ErrInvalidValue, key, value)
		}
		next.Autoscan = v
	case KeyCustomSites:
		v, ok := value.(string)
		if !ok {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidValue, key, value)
		}
		next.CustomSites = v
	default:
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	s.current = next
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		// the caller's cancellation must not drop an already accepted change
		s.flush(context.WithoutCancel(ctx), seq, key)
	}()

	return nil
}

// flush writes the newest in-memory settings unless an update at or after
// seq has already been written, so a slow earlier write can never land
// after a later one.
func (s *Store) flush(ctx context.Context, seq uint64, key Key) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if seq <= s.persisted {
		return
	}

	s.mu.RLock()
	latest, latestSeq := s.current, s.seq
	s.mu.RUnlock()

	if err := s.persist.Set(ctx, PersistenceKey, latest.Map()); err != nil {
		log.Error().Err(err).Str("key", string(key)).Msg("failed to persist settings")
		return
	}
	s.persisted = latestSeq
}

// SetAutoscan updates the autoscan setting.
func (s *Store) SetAutoscan(ctx context.Context, v bool) {
	_ = s.Update(ctx, KeyAutoscan, v)
}

// SetCustomSites updates the custom sites setting.
func (s *Store) SetCustomSites(ctx context.Context, v string) {
	_ = s.Update(ctx, KeyCustomSites, v)
}

// Wait blocks until every background persist started so far has finished.
func (s *Store) Wait() {
	s.inflight.Wait()
}

// ParseValue converts the text form of a setting, as typed on a command
// line, into the type Update expects for key.
func ParseValue(key Key, raw string) (any, error) {
	switch key {
	case KeyAutoscan:
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a bool: %w", ErrInvalidValue, key, err)
		}
		return v, nil
	case KeyCustomSites:
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}
