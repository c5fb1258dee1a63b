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
	"github.com/nonsteamlaunchers/nsl-core/pkg/platforms"
	"github.com/nonsteamlaunchers/nsl-core/pkg/platforms/shared/steam"
	"github.com/stretchr/testify/mock"
)

// MockPlatform is a mock implementation of the Platform interface using testify/mock
type MockPlatform struct {
	mock.Mock
}

var _ platforms.Platform = (*MockPlatform)(nil)

// ID returns the unique ID of this platform
func (m *MockPlatform) ID() string {
	args := m.Called()
	return args.String(0)
}

// Settings returns the platform's directories
func (m *MockPlatform) Settings() platforms.Settings {
	args := m.Called()
	if s, ok := args.Get(0).(platforms.Settings); ok {
		return s
	}
	return platforms.Settings{}
}

// SteamOptions returns how Steam is detected
func (m *MockPlatform) SteamOptions() steam.Options {
	args := m.Called()
	if o, ok := args.Get(0).(steam.Options); ok {
		return o
	}
	return steam.Options{}
}

// NewMockPlatform creates a new MockPlatform instance
func NewMockPlatform() *MockPlatform {
	return &MockPlatform{}
}

// SetupBasicMock configures the mock with settings rooted at dir
func (m *MockPlatform) SetupBasicMock(dir string) {
	m.On("ID").Return(platforms.PlatformIDSteamOS).Maybe()
	m.On("Settings").Return(platforms.Settings{
		DataDir:   dir + "/data",
		ConfigDir: dir + "/config",
		TempDir:   dir + "/tmp",
		LogDir:    dir + "/logs",
	}).Maybe()
	m.On("SteamOptions").Return(steam.Options{FallbackPath: dir + "/steam"}).Maybe()
}
