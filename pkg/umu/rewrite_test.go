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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nonsteamlaunchers/nsl-core/pkg/shortcuts"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const compatPrefix = `STEAM_COMPAT_DATA_PATH="/home/deck/.local/share/Steam/steamapps/compatdata/NSL/" %command% `

var testEntries = []Entry{
	{Title: "Fortnite", Store: "egs", Codename: "fn", UMUID: "umu-fortnite"},
	{Title: "Battlefield 1", Store: "ea", Codename: "1234", UMUID: "umu-1238840"},
	{Title: "Anno 1800", Store: "uplay", Codename: "4553", UMUID: "umu-916440"},
	{Title: "Pokémon Legends", Store: "none", Codename: "pkmn", UMUID: "umu-pkmn"},
}

func TestExtractCodename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts string
		want string
	}{
		{name: "no compat data", opts: `"origin2://game/launch?offerIds=1234"`, want: ""},
		{name: "ea", opts: compatPrefix + `"origin2://game/launch?offerIds=1234"`, want: "1234"},
		{
			name: "amazon",
			opts: compatPrefix + `'amazon-games://play/amzn1.adg.product.abc-123'`,
			want: "amzn1.adg.product.abc-123",
		},
		{
			name: "epic lowercased",
			opts: compatPrefix + `-com.epicgames.launcher://apps/Fn?action=launch&silent=true`,
			want: "fn",
		},
		{
			name: "epic numeric",
			opts: compatPrefix + `-com.epicgames.launcher://apps/12345?action=launch`,
			want: "12345",
		},
		{name: "ubisoft", opts: compatPrefix + `uplay://launch/4553/0`, want: "4553"},
		{name: "gog", opts: compatPrefix + `/command=runGame /gameId=1207658924 /path="C:\\GOG"`, want: "1207658924"},
		{name: "unknown store", opts: compatPrefix + `-launch`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractCodename(tt.opts))
		})
	}
}

func TestFindEntry(t *testing.T) {
	t.Parallel()

	e, ok := FindEntry(testEntries, "4553", "whatever")
	require.True(t, ok)
	assert.Equal(t, "Anno 1800", e.Title)

	e, ok = FindEntry(testEntries, "", "fortNITE")
	require.True(t, ok)
	assert.Equal(t, "fortnite", e.GameID())

	e, ok = FindEntry(testEntries, "", "  ANNO 1800 ")
	require.True(t, ok)
	assert.Equal(t, "4553", e.Codename)

	_, ok = FindEntry(testEntries, "", "Unknown")
	assert.False(t, ok)

	_, ok = FindEntry(testEntries, "999", "Fortnite")
	assert.False(t, ok, "codename wins over title")
}

func TestFindEntryIgnoresAccents(t *testing.T) {
	t.Parallel()

	e, ok := FindEntry(testEntries, "", "pokemon legends")
	require.True(t, ok)
	assert.Equal(t, "pkmn", e.Codename)
}

func TestApplyEpic(t *testing.T) {
	t.Parallel()

	d := shortcuts.GameDescriptor{
		AppName:       "Fortnite",
		Exe:           `"/home/deck/.local/share/Steam/steamapps/compatdata/NSL/pfx/drive_c/Epic/launcher.exe"`,
		StartDir:      `"/home/deck/.local/share/Steam/steamapps/compatdata/NSL/pfx/drive_c/Epic/"`,
		LaunchOptions: compatPrefix + `-com.epicgames.launcher://apps/Fn?action=launch&silent=true`,
	}

	got, ok, err := Apply(testEntries, d, "/home/deck", "GE-Proton9-20")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, `"/home/deck/bin/umu-run" `+d.Exe, got.Exe)
	assert.Equal(t, `"/home/deck/bin/"`, got.StartDir)
	assert.Equal(t,
		`STEAM_COMPAT_DATA_PATH="/home/deck/.local/share/Steam/steamapps/compatdata/NSL/" `+
			`WINEPREFIX="/home/deck/.local/share/Steam/steamapps/compatdata/NSL/pfx" `+
			`GAMEID="fortnite" `+
			`PROTONPATH="/home/deck/.steam/root/compatibilitytools.d/GE-Proton9-20" `+
			`%command% -com.epicgames.launcher://apps/fn?action=launch&silent=true`,
		got.LaunchOptions)

	exe, err := shortcuts.ParseExe(got.Exe)
	require.NoError(t, err)
	assert.Equal(t, "/home/deck/bin/umu-run", exe)
}

func TestApplyStores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts string
		want string
	}{
		{name: "ea", opts: `"origin2://game/launch?offerIds=1234"`, want: "origin2://game/launch?offerIds=1234"},
		{name: "ubisoft", opts: `uplay://launch/4553/0`, want: "uplay://launch/4553/0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := shortcuts.GameDescriptor{AppName: "x", Exe: `"/x.exe"`, LaunchOptions: compatPrefix + tt.opts}
			got, ok, err := Apply(testEntries, d, "/home/deck", "proton")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Contains(t, got.LaunchOptions, "%command% "+tt.want)
		})
	}
}

func TestStoreLaunchGOG(t *testing.T) {
	t.Parallel()

	got := storeLaunch(`/command=runGame /gameId=1 /path="C:\GOG\Game"`, "2")
	assert.Equal(t, `/command=runGame /gameId=2 /path="C:\GOG\Game"`, got)

	assert.Equal(t, "/command=runGame /gameId=1", storeLaunch("/command=runGame /gameId=1", "2"))
}

func TestApplySkips(t *testing.T) {
	t.Parallel()

	plain := shortcuts.GameDescriptor{AppName: "Fortnite", Exe: `"/x"`, LaunchOptions: "-fullscreen"}
	got, ok, err := Apply(testEntries, plain, "/home/deck", "proton")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, plain, got)

	unknown := shortcuts.GameDescriptor{AppName: "Unknown", Exe: `"/x"`, LaunchOptions: compatPrefix + "-x"}
	got, ok, err = Apply(testEntries, unknown, "/home/deck", "proton")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, unknown, got)

	unquoted := shortcuts.GameDescriptor{
		AppName:       "Fortnite",
		Exe:           `"/x"`,
		LaunchOptions: "STEAM_COMPAT_DATA_PATH=/unquoted %command%",
	}
	_, ok, err = Apply(testEntries, unquoted, "/home/deck", "proton")
	require.ErrorIs(t, err, ErrNoCompatData)
	assert.False(t, ok)
}

func TestRewriterRewriteAll(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testCSV))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), afero.NewMemMapFs(), srv.URL, "/data/umu.csv")
	r := NewRewriter(client, "/home/deck", "GE-Proton9-20")

	in := []shortcuts.GameDescriptor{
		{AppName: "Anno 1800", Exe: `"/a.exe"`, LaunchOptions: compatPrefix + "uplay://launch/4553/0", CompatTool: "proton_9"},
		{AppName: "Plain", Exe: `"/p.exe"`},
	}
	out, err := r.RewriteAll(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Contains(t, out[0].LaunchOptions, "compatibilitytools.d/proton_9")
	assert.Contains(t, out[0].LaunchOptions, `GAMEID="916440"`)
	assert.Equal(t, in[1], out[1])
}
