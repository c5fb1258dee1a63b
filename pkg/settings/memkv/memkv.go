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

// Package memkv is an in-memory settings.Persistence used for dry runs and
// tests.
package memkv

import (
	"context"
	"maps"

	"github.com/nonsteamlaunchers/nsl-core/pkg/helpers/syncutil"
)

type Store struct {
	data map[string]map[string]any
	mu   syncutil.Mutex
}

func New() *Store {
	return &Store{data: make(map[string]map[string]any)}
}

func (s *Store) Get(_ context.Context, key string, def map[string]any) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return maps.Clone(def), nil
	}
	return maps.Clone(v), nil
}

func (s *Store) Set(_ context.Context, key string, value map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = maps.Clone(value)
	return nil
}
