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

// Package service ties the installer, the UMU rewrite and the shortcut
// registrar together.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nonsteamlaunchers/nsl-core/pkg/installer"
	"github.com/nonsteamlaunchers/nsl-core/pkg/settings"
	"github.com/nonsteamlaunchers/nsl-core/pkg/shortcuts"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// AutoscanPoll is how often Autoscan reloads the settings to check
// whether autoscan is still on.
const AutoscanPoll = 5 * time.Second

var ErrAutoscanDisabled = errors.New("autoscan is disabled")

// Runner runs the external installer.
type Runner interface {
	Run(ctx context.Context, selected []installer.Option, customSites []string) ([]shortcuts.GameDescriptor, error)
}

// Rewriter adjusts descriptors before they are registered.
type Rewriter interface {
	RewriteAll(ctx context.Context, ds []shortcuts.GameDescriptor) ([]shortcuts.GameDescriptor, error)
}

// Watcher delivers descriptor files dropped by the installer.
type Watcher interface {
	Run(ctx context.Context) error
	Batches() <-chan installer.Batch
}

// Registrar registers descriptors with the host.
type Registrar interface {
	RegisterAll(ctx context.Context, ds []shortcuts.GameDescriptor) []shortcuts.Outcome
}

// Report summarises a batch registration.
type Report struct {
	// Registered lists every game that got a shortcut, including partial
	// ones.
	Registered []shortcuts.Outcome
	Partial    []shortcuts.Outcome
	Failed     []shortcuts.Outcome
}

// Total is the number of descriptors processed.
func (r *Report) Total() int {
	return len(r.Registered) + len(r.Failed)
}

func newReport(outcomes []shortcuts.Outcome) Report {
	var r Report
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			r.Failed = append(r.Failed, o)
		case o.Result.Partial():
			r.Registered = append(r.Registered, o)
			r.Partial = append(r.Partial, o)
		default:
			r.Registered = append(r.Registered, o)
		}
	}
	return r
}

// SiteFilter reports whether a custom site may be passed to the installer.
type SiteFilter func(site string) bool

type Service struct {
	runner    Runner
	registrar Registrar
	settings  *settings.Store
	rewriter  Rewriter
	allowSite SiteFilter
	clock     clockwork.Clock
}

// Option configures a Service.
type Option func(*Service)

// WithRewriter rewrites descriptors before registration.
func WithRewriter(r Rewriter) Option {
	return func(s *Service) {
		s.rewriter = r
	}
}

// WithSiteFilter drops custom sites the filter rejects.
func WithSiteFilter(f SiteFilter) Option {
	return func(s *Service) {
		s.allowSite = f
	}
}

// WithClock sets the clock used by Autoscan.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

func New(runner Runner, registrar Registrar, store *settings.Store, opts ...Option) *Service {
	s := &Service{
		runner:    runner,
		registrar: registrar,
		settings:  store,
		clock:     clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) customSites() []string {
	sites := s.settings.Snapshot().CustomSiteList()
	if s.allowSite == nil {
		return sites
	}
	allowed := sites[:0]
	for _, site := range sites {
		if s.allowSite(site) {
			allowed = append(allowed, site)
		} else {
			log.Warn().Str("site", site).Msg("custom site not allowed by config")
		}
	}
	return allowed
}

// Install runs the installer for the selected launchers and registers
// every game it reports.
func (s *Service) Install(ctx context.Context, selected []installer.Option) (Report, error) {
	games, err := s.runner.Run(ctx, selected, s.customSites())
	if err != nil {
		return Report{}, fmt.Errorf("failed to run installer: %w", err)
	}
	return s.Register(ctx, games), nil
}

// Register registers a batch of games. A failing game never stops the
// others.
func (s *Service) Register(ctx context.Context, games []shortcuts.GameDescriptor) Report {
	if len(games) == 0 {
		log.Info().Msg("no games to register")
		return Report{}
	}

	if s.rewriter != nil {
		rewritten, err := s.rewriter.RewriteAll(ctx, games)
		if err != nil {
			log.Warn().Err(err).Msg("skipping descriptor rewrite")
		} else {
			games = rewritten
		}
	}

	report := newReport(s.registrar.RegisterAll(ctx, games))
	log.Info().
		Int("registered", len(report.Registered)).
		Int("partial", len(report.Partial)).
		Int("failed", len(report.Failed)).
		Msg("registration finished")
	return report
}

// Autoscan registers the games in every descriptor file the watcher
// delivers, for as long as the autoscan setting stays on. onReport, if
// set, is called after each batch.
func (s *Service) Autoscan(ctx context.Context, w Watcher, onReport func(installer.Batch, Report)) error {
	if !s.settings.Snapshot().Autoscan {
		return ErrAutoscanDisabled
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Run(gctx)
	})
	g.Go(func() error {
		ticker := s.clock.NewTicker(AutoscanPoll)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.Chan():
				// another process may have changed the setting
				if !s.settings.Load(gctx).Autoscan {
					log.Info().Msg("autoscan turned off, stopping")
					cancel()
					return nil
				}
			}
		}
	})
	g.Go(func() error {
		for batch := range w.Batches() {
			log.Info().Str("path", batch.Path).Int("games", len(batch.Games)).Msg("autoscan found games")
			report := s.Register(gctx, batch.Games)
			if onReport != nil {
				onReport(batch, report)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("autoscan failed: %w", err)
	}
	return nil
}
