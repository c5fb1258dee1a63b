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
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
)

var ErrUnknownOption = errors.New("unknown installer option")

// Option is a launcher the installer can set up.
type Option string

const (
	EpicGames Option = "epicGames"
	GOGGalaxy Option = "gogGalaxy"
	Origin    Option = "origin"
	Uplay     Option = "uplay"
)

// AllOptions lists the options in the order they are passed to the
// installer.
var AllOptions = []Option{EpicGames, GOGGalaxy, Origin, Uplay}

// ParseOption returns the option named s, ignoring case.
func ParseOption(s string) (Option, error) {
	for _, o := range AllOptions {
		if strings.EqualFold(string(o), strings.TrimSpace(s)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownOption, s)
}

// ParseOptions parses a comma separated option list.
func ParseOptions(s string) ([]Option, error) {
	var opts []Option
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		o, err := ParseOption(part)
		if err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, nil
}

// Words splits a camelCase name before every capital letter and joins
// the parts with a space: "epicGames" becomes "epic Games".
func Words(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Args returns the installer arguments for the selected options, in
// AllOptions order. Duplicates are ignored.
func Args(selected []Option) []string {
	args := make([]string, 0, len(selected))
	for _, o := range AllOptions {
		if slices.Contains(selected, o) {
			args = append(args, Words(string(o)))
		}
	}
	return args
}
