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

// Package installer runs the external routine that installs the selected
// launchers and reports the games it found.
package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"
	"github.com/nonsteamlaunchers/nsl-core/pkg/helpers/command"
	"github.com/nonsteamlaunchers/nsl-core/pkg/shortcuts"
	"github.com/rs/zerolog/log"
)

// DefaultCommand is run when no installer command is configured.
const DefaultCommand = "python3 main.py"

var ErrNoCommand = errors.New("installer command is empty")

// Config describes how the installer is invoked.
type Config struct {
	// Command is a shell-style command line, e.g. `python3 main.py`.
	Command string
	// Dir is the working directory of the installer.
	Dir string
	Env []string
}

// Installer invokes the external installer.
type Installer struct {
	exec command.Executor
	cfg  Config
}

// New returns an Installer running through exec.
func New(exec command.Executor, cfg Config) *Installer {
	if strings.TrimSpace(cfg.Command) == "" {
		cfg.Command = DefaultCommand
	}
	return &Installer{exec: exec, cfg: cfg}
}

// CommandLine returns the program and arguments for a run. Each selected
// option's words and each custom site become separate arguments.
func (i *Installer) CommandLine(selected []Option, customSites []string) (string, []string, error) {
	argv, err := shlex.Split(i.cfg.Command)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse installer command: %w", err)
	}
	if len(argv) == 0 {
		return "", nil, ErrNoCommand
	}

	for _, a := range Args(selected) {
		argv = append(argv, strings.Fields(a)...)
	}
	for _, site := range customSites {
		if site = strings.TrimSpace(site); site != "" {
			argv = append(argv, site)
		}
	}
	return argv[0], argv[1:], nil
}

// Run executes the installer and returns the games it reported on
// stdout.
func (i *Installer) Run(
	ctx context.Context,
	selected []Option,
	customSites []string,
) ([]shortcuts.GameDescriptor, error) {
	name, args, err := i.CommandLine(selected, customSites)
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", name).Strs("args", args).Msg("running installer")

	stderr := log.With().Str("stream", "installer").Logger()
	out, err := i.exec.Output(ctx, command.RunOptions{
		Dir:    i.cfg.Dir,
		Env:    i.cfg.Env,
		Stderr: stderr,
	}, name, args...)
	if err != nil {
		return nil, fmt.Errorf("installer failed: %w", err)
	}

	games, err := DecodeLines(bytes.NewReader(out))
	if err != nil {
		return games, err
	}
	log.Info().Int("games", len(games)).Msg("installer finished")
	return games, nil
}
