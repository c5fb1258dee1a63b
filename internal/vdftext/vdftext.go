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

// Package vdftext writes Valve's text KeyValues (VDF) format. Reading is
// done with github.com/andygrunwald/vdf, whose map output this package
// accepts.
package vdftext

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/andygrunwald/vdf"
	"github.com/spf13/afero"
)

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)

// Encode writes m as text VDF. Keys are written in sorted order so output
// is stable; values must be strings or nested maps.
func Encode(w io.Writer, m map[string]any) error {
	bw := bufio.NewWriter(w)
	if err := encodeMap(bw, m, 0); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush error: %w", err)
	}
	return nil
}

func encodeMap(w *bufio.Writer, m map[string]any, depth int) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	indent := strings.Repeat("\t", depth)
	for _, k := range keys {
		switch v := m[k].(type) {
		case map[string]any:
			_, _ = fmt.Fprintf(w, "%s\"%s\"\n%s{\n", indent, escaper.Replace(k), indent)
			if err := encodeMap(w, v, depth+1); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(w, "%s}\n", indent)
		case string:
			_, _ = fmt.Fprintf(w, "%s\"%s\"\t\t\"%s\"\n", indent, escaper.Replace(k), escaper.Replace(v))
		default:
			return fmt.Errorf("unsupported value type %T for key %q", v, k)
		}
	}
	return nil
}

// ReadFile parses the text VDF file at path. A missing file yields an
// empty map.
func ReadFile(fs afero.Fs, path string) (map[string]any, error) {
	f, err := fs.Open(path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	m, err := vdf.NewParser(f).Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}

// WriteFile encodes m to path, replacing it atomically.
func WriteFile(fs afero.Fs, path string, m map[string]any) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	tmp := path + ".tmp"
	f, err := fs.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	if err := Encode(f, m); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Child returns m[key] as a map, creating it when missing or of another
// type. Lookup ignores key case, as Steam does.
func Child(m map[string]any, key string) map[string]any {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			if child, ok := v.(map[string]any); ok {
				return child
			}
			delete(m, k)
			break
		}
	}
	child := map[string]any{}
	m[key] = child
	return child
}

// Path walks keys from m with Child and returns the innermost map.
func Path(m map[string]any, keys ...string) map[string]any {
	for _, k := range keys {
		m = Child(m, k)
	}
	return m
}
