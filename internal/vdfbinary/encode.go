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

package vdfbinary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// Encode writes m as a binary VDF document, the inverse of Parse.
func Encode(w io.Writer, m *Map) error {
	bw := bufio.NewWriter(w)
	if err := encodeMap(bw, m); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush error: %w", err)
	}
	return nil
}

func encodeMap(w *bufio.Writer, m *Map) error {
	for _, e := range m.entries {
		if strings.IndexByte(e.Key, 0) >= 0 {
			return fmt.Errorf("key %q contains a NUL byte", e.Key)
		}
		switch e.Value.kind {
		case KindMap:
			writeHeader(w, vdfMarkerMap, e.Key)
			child := e.Value.m
			if child == nil {
				child = NewMap()
			}
			if err := encodeMap(w, child); err != nil {
				return err
			}
		case KindString:
			if strings.IndexByte(e.Value.str, 0) >= 0 {
				return fmt.Errorf("value of %q contains a NUL byte", e.Key)
			}
			writeHeader(w, vdfMarkerString, e.Key)
			_, _ = w.WriteString(e.Value.str)
			_ = w.WriteByte(vdfMarkerEndOfString)
		case KindNumber:
			writeHeader(w, vdfMarkerNumber, e.Key)
			var bf [4]byte
			binary.LittleEndian.PutUint32(bf[:], e.Value.num)
			_, _ = w.Write(bf[:])
		default:
			return fmt.Errorf("unknown value kind %d for %q", e.Value.kind, e.Key)
		}
	}
	_ = w.WriteByte(vdfMarkerEndOfMap)
	return nil
}

// bufio.Writer keeps the first write error and reports it from Flush.
func writeHeader(w *bufio.Writer, marker byte, key string) {
	_ = w.WriteByte(marker)
	_, _ = w.WriteString(key)
	_ = w.WriteByte(vdfMarkerEndOfString)
}
