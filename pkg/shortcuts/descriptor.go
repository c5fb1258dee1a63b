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

package shortcuts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMalformedInput is returned when a descriptor cannot be turned into a
	// shortcut. No host call is made for such descriptors.
	ErrMalformedInput = errors.New("malformed game descriptor")
	// ErrHostRegistrationFailed is returned when the host did not assign an
	// app ID to a new shortcut.
	ErrHostRegistrationFailed = errors.New("host did not create shortcut")
)

var reQuotedPath = regexp.MustCompile(`"([^"]+)"`)

var descriptorValidator = validator.New(validator.WithRequiredStructEnabled())

// CompatTool is the compatibility tool requested for a shortcut. The zero
// value leaves the host default untouched. The installer reports it either
// as a tool name or as the boolean false.
type CompatTool string

// Set reports whether a tool should be assigned to the shortcut.
func (c CompatTool) Set() bool {
	return c != ""
}

func (c *CompatTool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "false", "null":
		*c = ""
		return nil
	case "true":
		return fmt.Errorf("%w: compat tool must be a name or false", ErrMalformedInput)
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to decode compat tool: %w", err)
	}
	*c = CompatTool(s)
	return nil
}

func (c CompatTool) MarshalJSON() ([]byte, error) {
	if !c.Set() {
		return []byte("false"), nil
	}
	b, err := json.Marshal(string(c))
	if err != nil {
		return nil, fmt.Errorf("failed to encode compat tool: %w", err)
	}
	return b, nil
}

// GameDescriptor describes one game found by the installer. Field names
// match the installer's JSON output.
type GameDescriptor struct {
	AppName       string     `json:"appname" validate:"required"`
	Exe           string     `json:"exe" validate:"required"`
	StartDir      string     `json:"StartDir"`
	LaunchOptions string     `json:"LaunchOptions"`
	CompatTool    CompatTool `json:"CompatTool"`
	Grid          string     `json:"Grid"`
	WideGrid      string     `json:"WideGrid"`
	Hero          string     `json:"Hero"`
	Logo          string     `json:"Logo"`
}

// Validate checks the descriptor shape and that its exe carries a quoted
// path.
func (d *GameDescriptor) Validate() error {
	if err := descriptorValidator.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s is %s", ErrMalformedInput, verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	if _, err := ParseExe(d.Exe); err != nil {
		return err
	}
	return nil
}

// Artwork returns the artwork path for each slot, in the order they are
// applied.
func (d *GameDescriptor) Artwork() []Artwork {
	return []Artwork{
		{Slot: SlotHero, Path: d.Hero},
		{Slot: SlotLogo, Path: d.Logo},
		{Slot: SlotGrid, Path: d.Grid},
		{Slot: SlotWideGrid, Path: d.WideGrid},
	}
}

// ParseExe returns the first double-quoted segment of exe. A wrapped exe
// such as `"/bin/umu-run" "/games/x.exe"` yields the wrapper path.
func ParseExe(exe string) (string, error) {
	match := reQuotedPath.FindStringSubmatch(exe)
	if match == nil {
		return "", fmt.Errorf("%w: invalid exe format: %s", ErrMalformedInput, exe)
	}
	return match[1], nil
}

// NormalizeStartDir strips every double quote from dir.
func NormalizeStartDir(dir string) string {
	return strings.ReplaceAll(dir, `"`, "")
}

// LaunchTail drops the first whitespace-separated token of opts, which
// belongs to the launcher shim, and joins the rest with single spaces.
func LaunchTail(opts string) string {
	fields := strings.Fields(opts)
	if len(fields) <= 1 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}
