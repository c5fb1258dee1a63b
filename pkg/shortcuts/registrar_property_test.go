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

package shortcuts_test

import (
	"context"
	"strings"
	"testing"

	"github.com/nonsteamlaunchers/nsl-core/pkg/shortcuts"
	"github.com/nonsteamlaunchers/nsl-core/pkg/testing/mocks"
	"github.com/stretchr/testify/mock"
	"pgregory.net/rapid"
)

// pathGen generates unquoted absolute paths.
func pathGen() *rapid.Generator[string] {
	segment := rapid.StringMatching(`[A-Za-z0-9 ._-]{1,12}`)
	return rapid.Custom(func(t *rapid.T) string {
		parts := rapid.SliceOfN(segment, 1, 5).Draw(t, "parts")
		return "/" + strings.Join(parts, "/")
	})
}

func tokenGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z0-9=%/:._-]{1,10}`)
}

// TestPropertyParseExeExtractsQuotedPath verifies the single quoted segment
// is returned verbatim.
func TestPropertyParseExeExtractsQuotedPath(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		path := pathGen().Draw(t, "path")
		args := rapid.SliceOfN(tokenGen(), 0, 4).Draw(t, "args")

		exe := `"` + path + `"`
		if len(args) > 0 {
			exe += " " + strings.Join(args, " ")
		}

		got, err := shortcuts.ParseExe(exe)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", exe, err)
		}
		if got != path {
			t.Fatalf("ParseExe(%q) = %q, want %q", exe, got, path)
		}
	})
}

// TestPropertyUnquotedExeMakesNoHostCalls verifies descriptors without a
// quoted exe never reach the host.
func TestPropertyUnquotedExeMakesNoHostCalls(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		exe := rapid.StringMatching(`[^"]{0,40}`).Draw(t, "exe")

		host := &mocks.MockHost{}
		r := shortcuts.NewRegistrar(host, nil, shortcuts.Options{})
		_, err := r.Register(context.Background(), shortcuts.GameDescriptor{AppName: "Game", Exe: exe})

		if err == nil {
			t.Fatalf("expected error for %q", exe)
		}
		if len(host.Calls) != 0 {
			t.Fatalf("expected no host calls, got %d", len(host.Calls))
		}
	})
}

// TestPropertyNormalizeStartDirHasNoQuotes verifies every quote is removed.
func TestPropertyNormalizeStartDirHasNoQuotes(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		dir := rapid.String().Draw(t, "dir")

		got := shortcuts.NormalizeStartDir(dir)
		if strings.Contains(got, `"`) {
			t.Fatalf("NormalizeStartDir(%q) = %q still has quotes", dir, got)
		}
		if got != strings.ReplaceAll(dir, `"`, "") {
			t.Fatalf("NormalizeStartDir(%q) = %q dropped other characters", dir, got)
		}
	})
}

// TestPropertyLaunchTailDropsFirstToken verifies the tail equals the input
// without its first token.
func TestPropertyLaunchTailDropsFirstToken(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		tokens := rapid.SliceOfN(tokenGen(), 1, 6).Draw(t, "tokens")

		got := shortcuts.LaunchTail(strings.Join(tokens, " "))
		want := strings.Join(tokens[1:], " ")
		if got != want {
			t.Fatalf("LaunchTail(%q) = %q, want %q", tokens, got, want)
		}
	})
}

// TestPropertyFollowUpCallCounts verifies each follow-up is issued exactly
// once and the compat tool only when one is set.
func TestPropertyFollowUpCallCounts(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		d := shortcuts.GameDescriptor{
			AppName:       rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ]{0,20}`).Draw(t, "name"),
			Exe:           `"` + pathGen().Draw(t, "exe") + `"`,
			StartDir:      `"` + pathGen().Draw(t, "startDir") + `"`,
			LaunchOptions: strings.Join(rapid.SliceOfN(tokenGen(), 0, 4).Draw(t, "opts"), " "),
			CompatTool:    shortcuts.CompatTool(rapid.SampledFrom([]string{"", "proton_9", "GE-Proton9-20"}).Draw(t, "tool")),
			Hero:          "h.png",
			Logo:          "l.png",
			Grid:          "g.png",
			WideGrid:      "w.png",
		}
		appID := rapid.Uint32Range(1, 1<<31).Draw(t, "appID")

		host := &mocks.MockHost{}
		host.On("AddShortcut", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(appID, nil)
		host.ExpectFollowUps(appID, &d, d.LaunchOptions)

		r := shortcuts.NewRegistrar(host, nil, shortcuts.Options{})
		res, err := r.Register(context.Background(), d)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.AppID != appID {
			t.Fatalf("got app ID %d, want %d", res.AppID, appID)
		}

		counts := map[string]int{}
		for _, c := range host.Calls {
			counts[c.Method]++
		}
		wantCompat := 0
		if d.CompatTool.Set() {
			wantCompat = 1
		}
		want := map[string]int{
			"AddShortcut":         1,
			"SetShortcutName":     1,
			"SetLaunchOptions":    1,
			"SetShortcutExe":      1,
			"SetShortcutStartDir": 1,
			"SetCustomArtwork":    4,
			"AddUserTag":          1,
		}
		if wantCompat > 0 {
			want["SpecifyCompatTool"] = wantCompat
		}
		for method, n := range want {
			if counts[method] != n {
				t.Fatalf("%s called %d times, want %d", method, counts[method], n)
			}
		}
		if counts["SpecifyCompatTool"] != wantCompat {
			t.Fatalf("SpecifyCompatTool called %d times, want %d", counts["SpecifyCompatTool"], wantCompat)
		}
	})
}
