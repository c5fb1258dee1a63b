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

package cli

import (
	"errors"
	"testing"

	"github.com/nonsteamlaunchers/nsl-core/pkg/testing/mocks"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const unitDir = "/home/deck/.config/systemd/user"

func TestUserServiceInstall(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	exec := &mocks.MockCommandExecutor{}
	exec.On("Run", mock.Anything, "systemctl", []string{"--user", "daemon-reload"}).Return(nil).Once()
	exec.On("Run", mock.Anything, "systemctl", []string{"--user", "enable", "--now", unitName}).Return(nil).Once()

	u := NewUserService(fs, exec, unitDir, "/home/deck/nsl/nonsteamlaunchers")
	require.NoError(t, u.Install())

	data, err := afero.ReadFile(fs, unitDir+"/"+unitName)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ExecStart=/home/deck/nsl/nonsteamlaunchers -watch")
	assert.Contains(t, string(data), "WorkingDirectory=/home/deck/nsl\n")
	exec.AssertExpectations(t)

	// already installed, no more systemctl calls
	require.NoError(t, u.Install())
	exec.AssertNumberOfCalls(t, "Run", 2)
}

func TestUserServiceInstallSystemctlFails(t *testing.T) {
	t.Parallel()

	exec := &mocks.MockCommandExecutor{}
	exec.On("Run", mock.Anything, "systemctl", mock.Anything).Return(errors.New("no user bus"))

	u := NewUserService(afero.NewMemMapFs(), exec, unitDir, "/opt/nsl")
	err := HandleService(u, "install")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no user bus")
}

func TestUserServiceUninstall(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, unitDir+"/"+unitName, []byte("[Unit]"), 0o644))

	exec := &mocks.MockCommandExecutor{}
	exec.On("Run", mock.Anything, "systemctl", []string{"--user", "disable", "--now", unitName}).Return(nil).Once()
	exec.On("Run", mock.Anything, "systemctl", []string{"--user", "daemon-reload"}).Return(nil).Once()

	u := NewUserService(fs, exec, unitDir, "/opt/nsl")
	require.NoError(t, u.Uninstall())

	exists, err := afero.Exists(fs, unitDir+"/"+unitName)
	require.NoError(t, err)
	assert.False(t, exists)
	exec.AssertExpectations(t)
}

func TestUserServiceUninstallMissing(t *testing.T) {
	t.Parallel()

	exec := &mocks.MockCommandExecutor{}
	u := NewUserService(afero.NewMemMapFs(), exec, unitDir, "/opt/nsl")
	require.NoError(t, u.Uninstall())
	exec.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleServiceUnknown(t *testing.T) {
	t.Parallel()

	u := NewUserService(afero.NewMemMapFs(), &mocks.MockCommandExecutor{}, unitDir, "/opt/nsl")
	require.Error(t, HandleService(u, "restart"))
}
