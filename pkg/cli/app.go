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
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/nonsteamlaunchers/nsl-core/pkg/config"
	"github.com/nonsteamlaunchers/nsl-core/pkg/helpers"
	"github.com/nonsteamlaunchers/nsl-core/pkg/helpers/command"
	"github.com/nonsteamlaunchers/nsl-core/pkg/installer"
	"github.com/nonsteamlaunchers/nsl-core/pkg/notify"
	"github.com/nonsteamlaunchers/nsl-core/pkg/platforms"
	"github.com/nonsteamlaunchers/nsl-core/pkg/platforms/shared/steam"
	"github.com/nonsteamlaunchers/nsl-core/pkg/service"
	"github.com/nonsteamlaunchers/nsl-core/pkg/settings"
	"github.com/nonsteamlaunchers/nsl-core/pkg/settings/boltkv"
	"github.com/nonsteamlaunchers/nsl-core/pkg/settings/memkv"
	"github.com/nonsteamlaunchers/nsl-core/pkg/shared/httpclient"
	"github.com/nonsteamlaunchers/nsl-core/pkg/shortcuts"
	"github.com/nonsteamlaunchers/nsl-core/pkg/umu"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var ErrSteamNotFound = errors.New("steam installation not found")

// OpenOptions controls how Open builds an App. Zero values use the real
// system.
type OpenOptions struct {
	Fs         afero.Fs
	Exec       command.Executor
	HTTPClient *http.Client
	Notifier   notify.Notifier
	Home       string
	// DryRun keeps every write in memory: Steam files go to an overlay
	// filesystem and settings to an in-memory store.
	DryRun bool
}

// App is a fully wired NonSteamLaunchers instance.
type App struct {
	Platform platforms.Platform
	notifier notify.Notifier
	osFs     afero.Fs
	Config   *config.Instance
	Settings *settings.Store
	Host     *steam.Host
	Service  *service.Service
	UMU      *umu.Client
	dataDir  string
	closers  []io.Closer
}

// Open wires every component from the platform and config.
func Open(ctx context.Context, pl platforms.Platform, cfg *config.Instance, opts OpenOptions) (*App, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Exec == nil {
		opts.Exec = &command.RealExecutor{}
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = httpclient.NewClient(config.DefaultTimeout)
	}
	if opts.Home == "" {
		opts.Home = cfg.SteamHome()
	}
	if opts.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		opts.Home = home
	}

	app := &App{
		Platform: pl,
		Config:   cfg,
		osFs:     opts.Fs,
		dataDir:  pl.Settings().DataDir,
	}

	steamFs := opts.Fs
	var persist settings.Persistence
	if opts.DryRun {
		log.Info().Msg("dry run: Steam and settings changes are kept in memory")
		steamFs = afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(opts.Fs), afero.NewMemMapFs())
		persist = memkv.New()
	} else {
		db, err := boltkv.Open(filepath.Join(app.dataDir, config.SettingsDbFile))
		if err != nil {
			return nil, fmt.Errorf("failed to open settings: %w", err)
		}
		app.closers = append(app.closers, db)
		persist = db
	}

	app.Settings = settings.NewStore(persist)
	app.Settings.Load(ctx)

	sc := steam.NewClientWithFs(opts.Fs, opts.Home, pl.SteamOptions())
	steamDir := sc.FindSteamDir(cfg.SteamDir())
	if steamDir == "" {
		_ = app.Close()
		return nil, ErrSteamNotFound
	}
	userID := cfg.SteamUserID()
	if userID == "" {
		id, err := sc.FindUserID(steamDir)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("failed to find Steam user: %w", err)
		}
		userID = id
	}
	app.Host = steam.NewHost(steamDir, userID,
		steam.WithFs(steamFs),
		steam.WithHTTPClient(opts.HTTPClient),
	)
	log.Info().Str("steamDir", steamDir).Str("userId", userID).Msg("using Steam installation")
	if !opts.DryRun && helpers.ProcessRunning(ctx, "steam") {
		log.Warn().Msg("Steam is running and may overwrite shortcut changes when it exits")
	}

	app.notifier = opts.Notifier
	if app.notifier == nil {
		app.notifier = notify.New()
	}
	app.closers = append(app.closers, app.notifier)

	launchOpts := shortcuts.LaunchOptionsOriginal
	if cfg.StoreTrimmedLaunchOptions() {
		launchOpts = shortcuts.LaunchOptionsTail
	}
	registrar := shortcuts.NewRegistrar(app.Host, app.notifier, shortcuts.Options{
		CallTimeout:    cfg.CallTimeout(),
		Concurrency:    cfg.ShortcutConcurrency(),
		LaunchOptions:  launchOpts,
		Quiet:          !cfg.Notify(),
		NotifyFailures: cfg.NotifyFailures(),
	})

	runner := installer.New(opts.Exec, installer.Config{
		Command: cfg.InstallerCommand(),
		Dir:     cfg.InstallerDir(),
	})

	app.UMU = umu.NewClient(opts.HTTPClient, opts.Fs, cfg.UMUDatabaseURL(), umu.DefaultCachePath(app.dataDir))

	svcOpts := []service.Option{service.WithSiteFilter(cfg.IsSiteAllowed)}
	if cfg.UMUEnabled() {
		svcOpts = append(svcOpts, service.WithRewriter(umu.NewRewriter(app.UMU, opts.Home, cfg.UMUDefaultTool())))
	}
	app.Service = service.New(runner, registrar, app.Settings, svcOpts...)

	return app, nil
}

// DropDir is the directory watched for descriptor files.
func (a *App) DropDir() string {
	return a.Config.InstallerDropDir(a.dataDir)
}

// NewWatcher returns a watcher on the drop directory.
func (a *App) NewWatcher() *installer.Watcher {
	w := installer.NewWatcher(a.osFs, nil, a.DropDir(), 0)
	w.Remove = true
	return w
}

// Close waits for pending settings writes and releases resources.
func (a *App) Close() error {
	if a.Settings != nil {
		a.Settings.Wait()
	}
	var merr *multierror.Error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}
