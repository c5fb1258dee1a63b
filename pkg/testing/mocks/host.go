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

	"github.com/nonsteamlaunchers/nsl-core/pkg/shortcuts"
	"github.com/stretchr/testify/mock"
)

// MockHost is a testify mock for shortcuts.Host.
type MockHost struct {
	mock.Mock
}

var _ shortcuts.Host = (*MockHost)(nil)

func (m *MockHost) AddShortcut(ctx context.Context, name, exe, startDir, launchOptions string) (uint32, error) {
	args := m.Called(ctx, name, exe, startDir, launchOptions)
	id, _ := args.Get(0).(uint32)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return id, args.Error(1)
}

func (m *MockHost) SetShortcutName(ctx context.Context, appID uint32, name string) error {
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return m.Called(ctx, appID, name).Error(0)
}

func (m *MockHost) SetLaunchOptions(ctx context.Context, appID uint32, options string) error {
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return m.Called(ctx, appID, options).Error(0)
}

func (m *MockHost) SetShortcutExe(ctx context.Context, appID uint32, exe string) error {
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return m.Called(ctx, appID, exe).Error(0)
}

func (m *MockHost) SetShortcutStartDir(ctx context.Context, appID uint32, dir string) error {
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return m.Called(ctx, appID, dir).Error(0)
}

func (m *MockHost) SpecifyCompatTool(ctx context.Context, appID uint32, tool string) error {
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return m.Called(ctx, appID, tool).Error(0)
}

func (m *MockHost) SetCustomArtwork(
	ctx context.Context,
	appID uint32,
	path, format string,
	slot shortcuts.ArtworkSlot,
) error {
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return m.Called(ctx, appID, path, format, slot).Error(0)
}

func (m *MockHost) AddUserTag(ctx context.Context, appIDs []uint32, tag string) error {
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return m.Called(ctx, appIDs, tag).Error(0)
}

// ExpectFollowUps registers successful expectations for every follow-up
// call a registration of d makes after AddShortcut returned appID.
func (m *MockHost) ExpectFollowUps(appID uint32, d *shortcuts.GameDescriptor, launchOptions string) {
	m.On("SetShortcutName", mock.Anything, appID, d.AppName).Return(nil).Once()
	m.On("SetLaunchOptions", mock.Anything, appID, launchOptions).Return(nil).Once()
	m.On("SetShortcutExe", mock.Anything, appID, d.Exe).Return(nil).Once()
	m.On("SetShortcutStartDir", mock.Anything, appID, d.StartDir).Return(nil).Once()
	if d.CompatTool.Set() {
		m.On("SpecifyCompatTool", mock.Anything, appID, string(d.CompatTool)).Return(nil).Once()
	}
	for _, art := range d.Artwork() {
		m.On("SetCustomArtwork", mock.Anything, appID, art.Path, shortcuts.ArtworkFormat, art.Slot).
			Return(nil).Once()
	}
	m.On("AddUserTag", mock.Anything, []uint32{appID}, shortcuts.ProvenanceTag).Return(nil).Once()
}

// MockNotifier is a testify mock for shortcuts.Notifier.
type MockNotifier struct {
	mock.Mock
}

var _ shortcuts.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Toast(ctx context.Context, title, body string) error {
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return m.Called(ctx, title, body).Error(0)
}
