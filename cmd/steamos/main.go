//go:build linux

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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/nonsteamlaunchers/nsl-core/pkg/cli"
	"github.com/nonsteamlaunchers/nsl-core/pkg/config"
	"github.com/nonsteamlaunchers/nsl-core/pkg/platforms"
	"github.com/nonsteamlaunchers/nsl-core/pkg/platforms/steamos"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pl := steamos.NewPlatform()
	flags := cli.SetupFlags(flag.CommandLine)

	if err := flags.Pre(pl, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, cli.ErrVersionShown) {
			return nil
		}
		return err
	}

	// Steam's files belong to the deck user
	if os.Getuid() == 0 {
		return errors.New("must not be run as root")
	}

	if *flags.Service != "" {
		return cli.HandleService(cli.DefaultUserService(xdg.ConfigHome), *flags.Service)
	}

	cfg, err := cli.Setup(pl, config.BaseDefaults, []io.Writer{os.Stderr})
	if err != nil {
		return err
	}

	if id := platforms.Detect(); id != pl.ID() {
		log.Warn().Str("detected", id).Msg("not running on SteamOS, Steam paths may be wrong")
	}

	app, err := cli.Open(ctx, pl, cfg, cli.OpenOptions{DryRun: *flags.DryRun})
	if err != nil {
		log.Error().Err(err).Msg("error starting")
		return fmt.Errorf("error starting: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error().Err(err).Msg("error shutting down")
		}
	}()

	err = flags.Post(ctx, app, os.Stdout)
	if errors.Is(err, cli.ErrNoAction) {
		flag.Usage()
		return nil
	}
	return err
}
