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
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/nonsteamlaunchers/nsl-core/pkg/shortcuts"
	"github.com/rs/zerolog/log"
)

const maxLineBytes = 1 << 20

// DecodeLines reads one game descriptor per line. Blank lines are
// skipped, as is any line that is not a JSON object; the installer
// interleaves descriptors with its progress output.
func DecodeLines(r io.Reader) ([]shortcuts.GameDescriptor, error) {
	var games []shortcuts.GameDescriptor

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] != '{' {
			log.Debug().Str("line", string(line)).Msg("installer output")
			continue
		}

		var g shortcuts.GameDescriptor
		if err := json.Unmarshal(line, &g); err != nil {
			log.Warn().Err(err).Int("line", lineNo).Msg("skipping invalid game descriptor")
			continue
		}
		games = append(games, g)
	}
	if err := scanner.Err(); err != nil {
		return games, fmt.Errorf("failed to read installer output: %w", err)
	}
	return games, nil
}

// DecodeFile decodes a descriptor file. The file may hold a JSON array of
// descriptors, a single descriptor or one descriptor per line.
func DecodeFile(data []byte) ([]shortcuts.GameDescriptor, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var games []shortcuts.GameDescriptor
		if err := json.Unmarshal(trimmed, &games); err != nil {
			return nil, fmt.Errorf("failed to decode descriptor list: %w", err)
		}
		return games, nil
	}

	var g shortcuts.GameDescriptor
	if err := json.Unmarshal(trimmed, &g); err == nil {
		return []shortcuts.GameDescriptor{g}, nil
	}

	return DecodeLines(bytes.NewReader(trimmed))
}
