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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nonsteamlaunchers/nsl-core/pkg/installer"
	"github.com/nonsteamlaunchers/nsl-core/pkg/service"
	"github.com/nonsteamlaunchers/nsl-core/pkg/settings"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrNoAction is returned by Post when no action flag was given.
var ErrNoAction = errors.New("no action given")

// Post actions all flags that require a wired App. Logging is allowed.
func (f *Flags) Post(ctx context.Context, app *App, out io.Writer) error {
	switch {
	case f.isFlagPassed("set"):
		return setFlag(ctx, app, out, *f.Set)
	case *f.Get:
		return printSettings(app, out)
	case f.isFlagPassed("install"):
		selected, err := installer.ParseOptions(*f.Install)
		if err != nil {
			return err
		}
		report, err := app.Service.Install(ctx, selected)
		if err != nil {
			return err
		}
		printReport(out, report)
		return nil
	case f.isFlagPassed("register"):
		if *f.Register == "" {
			return errors.New("register flag requires a file")
		}
		data, err := afero.ReadFile(app.osFs, *f.Register)
		if err != nil {
			return fmt.Errorf("failed to read descriptor file: %w", err)
		}
		games, err := installer.DecodeFile(data)
		if err != nil {
			return err
		}
		printReport(out, app.Service.Register(ctx, games))
		return nil
	case *f.Watch:
		log.Info().Str("dir", app.DropDir()).Msg("watching for descriptor files")
		err := app.Service.Autoscan(ctx, app.NewWatcher(), func(b installer.Batch, r service.Report) {
			_, _ = fmt.Fprintf(out, "%s: ", b.Path)
			printReport(out, r)
		})
		if errors.Is(err, service.ErrAutoscanDisabled) {
			return fmt.Errorf("%w, enable it with -set autoscan=true", err)
		}
		return err
	case *f.List:
		return listShortcuts(ctx, app, out)
	case *f.Tools:
		tools, err := app.Host.ListCompatTools()
		if err != nil {
			return err
		}
		for _, t := range tools {
			_, _ = fmt.Fprintln(out, t)
		}
		return nil
	case *f.UpdateUMU:
		updated, err := app.UMU.Update(ctx)
		if err != nil {
			return fmt.Errorf("failed to update umu database: %w", err)
		}
		if updated {
			_, _ = fmt.Fprintln(out, "UMU database updated")
		} else {
			_, _ = fmt.Fprintln(out, "UMU database is up to date")
		}
		return nil
	}
	return ErrNoAction
}

func setFlag(ctx context.Context, app *App, out io.Writer, value string) error {
	k, v, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("set flag must be key=value, got %q", value)
	}
	key := settings.Key(strings.TrimSpace(k))
	parsed, err := settings.ParseValue(key, v)
	if err != nil {
		return err
	}
	if err := app.Settings.Update(ctx, key, parsed); err != nil {
		return err
	}
	return printSettings(app, out)
}

func printSettings(app *App, out io.Writer) error {
	data, err := json.MarshalIndent(app.Settings.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	_, _ = fmt.Fprintln(out, string(data))
	return nil
}

func printReport(out io.Writer, r service.Report) {
	_, _ = fmt.Fprintf(out, "%d of %d games added", len(r.Registered), r.Total())
	if len(r.Partial) > 0 {
		_, _ = fmt.Fprintf(out, ", %d with missing details", len(r.Partial))
	}
	_, _ = fmt.Fprintln(out)
	for _, o := range r.Failed {
		_, _ = fmt.Fprintf(out, "  failed: %s: %v\n", o.Descriptor.AppName, o.Err)
	}
	for _, o := range r.Partial {
		for _, ce := range o.Result.FailedCalls() {
			_, _ = fmt.Fprintf(out, "  incomplete: %s: %v\n", o.Descriptor.AppName, ce)
		}
	}
}

func listShortcuts(ctx context.Context, app *App, out io.Writer) error {
	owned, err := app.Host.ScanOwned(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "APP ID\tNAME\tCOMPAT TOOL\tURL")
	for i := range owned {
		s := &owned[i]
		tool := s.CompatTool
		if tool == "" {
			tool = "-"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.AppID, s.AppName, tool, s.RunURL)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write shortcut list: %w", err)
	}
	return nil
}
