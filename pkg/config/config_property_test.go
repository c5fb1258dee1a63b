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

package config

import (
	"regexp"
	"testing"

	"pgregory.net/rapid"
)

// TestPropertyCheckAllowEmptyListDenies verifies no pattern allows nothing.
func TestPropertyCheckAllowEmptyListDenies(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "site")
		if checkAllow(nil, nil, s) {
			t.Fatalf("empty allow list accepted %q", s)
		}
	})
}

// TestPropertyCheckAllowQuotedMatchesItself verifies an escaped literal
// pattern always allows the literal.
func TestPropertyCheckAllowQuotedMatchesItself(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[a-z0-9.\-]{1,20}`).Draw(t, "site")
		pattern := "^" + regexp.QuoteMeta(s) + "$"
		if !checkAllow([]string{pattern}, []*regexp.Regexp{regexp.MustCompile(pattern)}, s) {
			t.Fatalf("pattern %q did not allow %q", pattern, s)
		}
	})
}
