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

package installer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWords(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"epicGames": "epic Games",
		"gogGalaxy": "gog Galaxy",
		"origin":    "origin",
		"uplay":     "uplay",
		"aBC":       "a B C",
		"":          "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Words(in), in)
	}
}

func TestArgsFixedOrder(t *testing.T) {
	t.Parallel()

	args := Args([]Option{Uplay, EpicGames, Uplay})
	assert.Equal(t, []string{"epic Games", "uplay"}, args)
	assert.Empty(t, Args(nil))
}

func TestParseOptions(t *testing.T) {
	t.Parallel()

	opts, err := ParseOptions("EpicGames, origin,,")
	require.NoError(t, err)
	assert.Equal(t, []Option{EpicGames, Origin}, opts)

	_, err = ParseOptions("steam")
	require.ErrorIs(t, err, ErrUnknownOption)
}
