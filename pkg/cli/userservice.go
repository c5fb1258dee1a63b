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
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nonsteamlaunchers/nsl-core/pkg/config"
	"github.com/nonsteamlaunchers/nsl-core/pkg/helpers/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

//go:embed conf/nonsteamlaunchers.service
var serviceFile string

const unitName = config.AppName + ".service"

// UserService installs the autoscan watcher as a systemd user unit.
type UserService struct {
	fs      afero.Fs
	exec    command.Executor
	unitDir string
	exe     string
}

// NewUserService returns a UserService writing units to unitDir, usually
// ~/.config/systemd/user, and starting exe.
func NewUserService(fs afero.Fs, exec command.Executor, unitDir, exe string) *UserService {
	return &UserService{fs: fs, exec: exec, unitDir: unitDir, exe: exe}
}

func (u *UserService) unitPath() string {
	return filepath.Join(u.unitDir, unitName)
}

func (u *UserService) systemctl(args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	args = append([]string{"--user"}, args...)
	if err := u.exec.Run(ctx, "systemctl", args...); err != nil {
		return fmt.Errorf("systemctl %s failed: %w", strings.Join(args, " "), err)
	}
	return nil
}

// Install writes the unit and enables it. An existing unit is left alone.
func (u *UserService) Install() error {
	if exists, _ := afero.Exists(u.fs, u.unitPath()); exists {
		log.Info().Str("path", u.unitPath()).Msg("user service already installed")
		return nil
	}

	unit := strings.ReplaceAll(serviceFile, "%%EXEC%%", u.exe)
	unit = strings.ReplaceAll(unit, "%%WORKING%%", filepath.Dir(u.exe))

	if err := u.fs.MkdirAll(u.unitDir, 0o750); err != nil {
		return fmt.Errorf("failed to create unit directory: %w", err)
	}
	if err := afero.WriteFile(u.fs, u.unitPath(), []byte(unit), 0o644); err != nil { //nolint:gosec // unit read by systemd
		return fmt.Errorf("failed to write service file: %w", err)
	}
	if err := u.systemctl("daemon-reload"); err != nil {
		return err
	}
	return u.systemctl("enable", "--now", unitName)
}

// Uninstall stops, disables and removes the unit if present.
func (u *UserService) Uninstall() error {
	if exists, _ := afero.Exists(u.fs, u.unitPath()); !exists {
		return nil
	}
	if err := u.systemctl("disable", "--now", unitName); err != nil {
		return err
	}
	if err := u.fs.Remove(u.unitPath()); err != nil {
		return fmt.Errorf("failed to remove service file: %w", err)
	}
	return u.systemctl("daemon-reload")
}

// HandleService actions the -service flag.
func HandleService(u *UserService, action string) error {
	switch action {
	case "install":
		if err := u.Install(); err != nil {
			return fmt.Errorf("user service installation failed: %w", err)
		}
		_, _ = fmt.Println("User service installation complete")
	case "uninstall":
		if err := u.Uninstall(); err != nil {
			return fmt.Errorf("user service uninstallation failed: %w", err)
		}
		_, _ = fmt.Println("User service uninstallation complete")
	default:
		return fmt.Errorf("unknown service action: %s", action)
	}
	return nil
}

// DefaultUserService returns a UserService for the running binary.
func DefaultUserService(configHome string) *UserService {
	exe, err := os.Executable()
	if err != nil {
		exe = filepath.Join("/home/deck", config.AppName, config.AppName)
	}
	return NewUserService(
		afero.NewOsFs(),
		&command.RealExecutor{},
		filepath.Join(configHome, "systemd", "user"),
		exe,
	)
}
