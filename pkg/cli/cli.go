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

// Package cli holds the command line handling shared by every platform
// binary.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/nonsteamlaunchers/nsl-core/pkg/config"
	"github.com/nonsteamlaunchers/nsl-core/pkg/helpers"
	"github.com/nonsteamlaunchers/nsl-core/pkg/platforms"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrVersionShown is returned by Pre after printing the version.
var ErrVersionShown = errors.New("version shown")

type Flags struct {
	Install   *string
	Register  *string
	Set       *string
	Service   *string
	Get       *bool
	Watch     *bool
	DryRun    *bool
	List      *bool
	Tools     *bool
	UpdateUMU *bool
	Version   *bool
	fs        *flag.FlagSet
}

// SetupFlags defines all common CLI flags between platforms on fs.
func SetupFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs: fs,
		Install: fs.String(
			"install",
			"",
			"comma separated launchers to install, e.g. epicGames,gogGalaxy",
		),
		Register: fs.String(
			"register",
			"",
			"register the games in a descriptor file without running the installer",
		),
		Set: fs.String(
			"set",
			"",
			"change a setting, e.g. autoscan=true",
		),
		Service: fs.String(
			"service",
			"",
			"install or uninstall the autoscan user service",
		),
		Get: fs.Bool(
			"get",
			false,
			"print current settings as JSON",
		),
		Watch: fs.Bool(
			"watch",
			false,
			"register descriptor files dropped by the installer while autoscan is on",
		),
		DryRun: fs.Bool(
			"dry-run",
			false,
			"do not write to Steam or the settings database",
		),
		List: fs.Bool(
			"list",
			false,
			"list shortcuts created by NonSteamLaunchers",
		),
		Tools: fs.Bool(
			"tools",
			false,
			"list installed compatibility tools",
		),
		UpdateUMU: fs.Bool(
			"update-umu",
			false,
			"refresh the cached UMU database",
		),
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
	}
}

func (f *Flags) isFlagPassed(name string) bool {
	found := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// Pre parses args and actions any immediate flags that don't require
// environment setup. Add any custom flags before running this.
func (f *Flags) Pre(pl platforms.Platform, args []string, out io.Writer) error {
	if err := f.fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	if *f.Version {
		_, _ = fmt.Fprintf(out, "NonSteamLaunchers v%s (%s)\n", config.AppVersion, pl.ID())
		return ErrVersionShown
	}
	return nil
}

// Setup initializes logging and the user config.
//
//nolint:gocritic // config struct copied for immutability
func Setup(
	pl platforms.Platform,
	defaultConfig config.Values,
	writers []io.Writer,
) (*config.Instance, error) {
	if err := helpers.EnsureDirectories(pl); err != nil {
		return nil, fmt.Errorf("error creating directories: %w", err)
	}

	if err := helpers.InitLogging(pl, writers); err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	cfg, err := config.NewConfig(pl.Settings().ConfigDir, defaultConfig)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Info().Str("version", config.AppVersion).Str("platform", pl.ID()).Msg("starting NonSteamLaunchers")

	return cfg, nil
}
