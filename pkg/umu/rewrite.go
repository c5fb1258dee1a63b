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

package umu

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/nonsteamlaunchers/nsl-core/pkg/shortcuts"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const compatDataVar = "STEAM_COMPAT_DATA_PATH="

var (
	ErrNoDatabase    = errors.New("umu database unavailable")
	ErrNoCompatData  = errors.New("STEAM_COMPAT_DATA_PATH not found in launch options")
	reEAOffer        = regexp.MustCompile(`offerIds=(\d+)`)
	reAmazonProduct  = regexp.MustCompile(`(amzn1\.adg\.product\.\S+)`)
	reEpicApp        = regexp.MustCompile(`com\.epicgames\.launcher://apps/(\w+)[?&]`)
	reUbisoftLaunch  = regexp.MustCompile(`uplay://launch/(\d+)/\d+`)
	reGOGGame        = regexp.MustCompile(`/gameId=(\d+)`)
	reCompatDataPath = regexp.MustCompile(`STEAM_COMPAT_DATA_PATH="([^"]+)"`)
	reAllDigits      = regexp.MustCompile(`^\d+$`)
)

func trimUMUPrefix(id string) string {
	return strings.ReplaceAll(id, "umu-", "")
}

// ExtractCodename finds the store's game identifier in launch options
// that run through a compat data prefix. It returns "" when there is
// none.
func ExtractCodename(launchOptions string) string {
	if !strings.Contains(launchOptions, compatDataVar) {
		return ""
	}
	if m := reEAOffer.FindStringSubmatch(launchOptions); m != nil {
		return m[1]
	}
	if m := reAmazonProduct.FindStringSubmatch(launchOptions); m != nil {
		return strings.TrimRight(m[1], "'")
	}
	if m := reEpicApp.FindStringSubmatch(launchOptions); m != nil {
		if reAllDigits.MatchString(m[1]) {
			return m[1]
		}
		return strings.ToLower(m[1])
	}
	if m := reUbisoftLaunch.FindStringSubmatch(launchOptions); m != nil {
		return m[1]
	}
	if m := reGOGGame.FindStringSubmatch(launchOptions); m != nil {
		return m[1]
	}
	return ""
}

// CompatDataPath returns the quoted STEAM_COMPAT_DATA_PATH value.
func CompatDataPath(launchOptions string) (string, error) {
	m := reCompatDataPath.FindStringSubmatch(launchOptions)
	if m == nil {
		return "", ErrNoCompatData
	}
	return m[1], nil
}

// foldTitle makes titles comparable regardless of case and accents.
func foldTitle(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	return cases.Fold().String(strings.TrimSpace(s))
}

// FindEntry looks a game up by codename, falling back to a title match
// that ignores case and accents when the codename is empty.
func FindEntry(entries []Entry, codename, title string) (Entry, bool) {
	if codename == "" {
		want := foldTitle(title)
		for i := range entries {
			if entries[i].Title != "" && foldTitle(entries[i].Title) == want {
				codename = entries[i].Codename
				break
			}
		}
	}
	if codename == "" {
		return Entry{}, false
	}
	for i := range entries {
		if entries[i].Codename == codename {
			return entries[i], true
		}
	}
	return Entry{}, false
}

// storeLaunch returns the store-specific part of the rewritten launch
// options.
func storeLaunch(launchOptions, codename string) string {
	switch {
	case strings.Contains(launchOptions, "origin2://game/launch?offerIds="):
		return "origin2://game/launch?offerIds=" + codename
	case strings.Contains(launchOptions, "amazon-games://play/amzn1.adg.product."):
		return "amazon-games://play/" + codename
	case strings.Contains(launchOptions, "com.epicgames.launcher://apps/"):
		return "-com.epicgames.launcher://apps/" + codename + "?action=launch&silent=true"
	case strings.Contains(launchOptions, "uplay://launch/"):
		return "uplay://launch/" + codename + "/0"
	case strings.Contains(launchOptions, "/command=runGame /gameId="):
		_, path, ok := strings.Cut(launchOptions, "/path=")
		if !ok {
			return launchOptions
		}
		return "/command=runGame /gameId=" + codename + " /path=" + path
	default:
		return launchOptions
	}
}

// Apply rewrites d to launch through umu-run when the game is in the
// database. home is the Steam user's home directory and tool the
// compatibility tool installed in compatibilitytools.d. The descriptor is
// returned unchanged, with false, when it does not qualify.
func Apply(entries []Entry, d shortcuts.GameDescriptor, home, tool string) (shortcuts.GameDescriptor, bool, error) {
	if !strings.Contains(d.LaunchOptions, compatDataVar) {
		log.Debug().Str("appName", d.AppName).Msg("no compat data path, skipping umu rewrite")
		return d, false, nil
	}

	codename := ExtractCodename(d.LaunchOptions)
	entry, ok := FindEntry(entries, codename, d.AppName)
	if !ok {
		log.Debug().Str("appName", d.AppName).Str("codename", codename).
			Msg("no matching umu database entry")
		return d, false, nil
	}

	basePath, err := CompatDataPath(d.LaunchOptions)
	if err != nil {
		return d, false, fmt.Errorf("%s: %w", d.AppName, err)
	}

	launch := storeLaunch(d.LaunchOptions, entry.Codename)
	d.Exe = fmt.Sprintf(`"%s/bin/umu-run" %s`, home, d.Exe)
	d.StartDir = fmt.Sprintf(`"%s/bin/"`, home)
	d.LaunchOptions = fmt.Sprintf(
		`STEAM_COMPAT_DATA_PATH="%s" WINEPREFIX="%spfx" GAMEID="%s" `+
			`PROTONPATH="%s/.steam/root/compatibilitytools.d/%s" %%command%% %s`,
		basePath, basePath, entry.GameID(), home, tool, launch,
	)

	log.Info().Str("appName", d.AppName).Str("umuId", entry.UMUID).Msg("rewrote shortcut for umu")
	return d, true, nil
}

// Rewriter applies the database to descriptors.
type Rewriter struct {
	client *Client
	// Home is the home directory umu-run and compat tools live under.
	Home string
	// DefaultTool is used for games that do not name a compat tool.
	DefaultTool string
}

// NewRewriter returns a Rewriter using client's database.
func NewRewriter(client *Client, home, defaultTool string) *Rewriter {
	return &Rewriter{client: client, Home: home, DefaultTool: defaultTool}
}

// RewriteAll applies the database to every descriptor. Descriptors that
// cannot be rewritten are returned unchanged; the error is only non-nil
// when the database is unavailable.
func (r *Rewriter) RewriteAll(ctx context.Context, ds []shortcuts.GameDescriptor) ([]shortcuts.GameDescriptor, error) {
	entries, err := r.client.Entries(ctx)
	if err != nil {
		return ds, err
	}
	if len(entries) == 0 {
		log.Info().Msg("umu database is empty, skipping rewrite")
		return ds, nil
	}

	out := make([]shortcuts.GameDescriptor, len(ds))
	for i, d := range ds {
		tool := r.DefaultTool
		if d.CompatTool.Set() {
			tool = string(d.CompatTool)
		}
		rewritten, _, err := Apply(entries, d, r.Home, tool)
		if err != nil {
			log.Warn().Err(err).Msg("umu rewrite failed")
		}
		out[i] = rewritten
	}
	return out, nil
}
