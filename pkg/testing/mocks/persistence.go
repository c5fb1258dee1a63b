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

package mocks

import (
	"context"

	"github.com/nonsteamlaunchers/nsl-core/pkg/settings"
	"github.com/stretchr/testify/mock"
)

// MockPersistence is a testify mock for settings.Persistence.
type MockPersistence struct {
	mock.Mock
}

var _ settings.Persistence = (*MockPersistence)(nil)

func (m *MockPersistence) Get(ctx context.Context, key string, def map[string]any) (map[string]any, error) {
	args := m.Called(ctx, key, def)
	v, _ := args.Get(0).(map[string]any)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return v, args.Error(1)
}

func (m *MockPersistence) Set(ctx context.Context, key string, value map[string]any) error {
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return m.Called(ctx, key, value).Error(0)
}
