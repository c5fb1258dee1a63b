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

// Package vdfbinary reads and writes Valve's binary VDF format.
//
// This is a vendored and modified version of github.com/TimDeve/valve-vdf-binary
// Licensed under MIT. See LICENSE file in this directory.
package vdfbinary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	vdfMarkerMap         byte = 0x00
	vdfMarkerString      byte = 0x01
	vdfMarkerNumber      byte = 0x02
	vdfMarkerEndOfMap    byte = 0x08
	vdfMarkerEndOfString byte = 0x00
)

var (
	ErrEmptyVDF     = errors.New("the vdf you are trying to parse appears empty")
	ErrNotBinaryVDF = errors.New("the vdf appears not to be binary, are you sure it is not a text vdf?")
	ErrCorruptedVDF = errors.New("reached the end of the file earlier than expected, your file might be corrupted")
)

// Kind is the type of a Value.
type Kind int

const (
	KindMap Kind = iota
	KindString
	KindNumber
)

// Value is a node of a binary VDF document.
type Value struct {
	m    *Map
	str  string
	num  uint32
	kind Kind
}

func String(s string) Value { return Value{kind: KindString, str: s} }

func Number(n uint32) Value { return Value{kind: KindNumber, num: n} }

func Bool(b bool) Value {
	if b {
		return Number(1)
	}
	return Number(0)
}

func MapValue(m *Map) Value { return Value{kind: KindMap, m: m} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

func (v Value) AsUint() (uint32, bool) {
	return v.num, v.kind == KindNumber
}

func (v Value) AsBool() (bool, bool) {
	return v.num != 0, v.kind == KindNumber
}

func (v Value) AsMap() (*Map, bool) {
	return v.m, v.kind == KindMap && v.m != nil
}

// Entry is a key/value pair of a Map.
type Entry struct {
	Key   string
	Value Value
}

// Map is an ordered VDF map. Lookups ignore key case but the original key
// spelling is kept when the map is written back.
type Map struct {
	entries []Entry
}

func NewMap() *Map {
	return &Map{}
}

func (m *Map) index(key string) int {
	for i, e := range m.entries {
		if strings.EqualFold(e.Key, key) {
			return i
		}
	}
	return -1
}

func (m *Map) Len() int { return len(m.entries) }

// Entries returns the map's entries in document order.
func (m *Map) Entries() []Entry {
	return m.entries
}

func (m *Map) Get(key string) (Value, bool) {
	if i := m.index(key); i >= 0 {
		return m.entries[i].Value, true
	}
	return Value{}, false
}

// Set replaces the value under key, keeping its position and spelling, or
// appends a new entry.
func (m *Map) Set(key string, v Value) {
	if i := m.index(key); i >= 0 {
		m.entries[i].Value = v
		return
	}
	m.entries = append(m.entries, Entry{Key: key, Value: v})
}

func (m *Map) Delete(key string) {
	if i := m.index(key); i >= 0 {
		m.entries = append(m.entries[:i], m.entries[i+1:]...)
	}
}

func (m *Map) GetMap(key string) (*Map, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	return v.AsMap()
}

func (m *Map) GetString(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	return v.AsString()
}

func (m *Map) GetUint(key string) (uint32, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	return v.AsUint()
}

func (m *Map) GetBool(key string) (bool, bool) {
	v, ok := m.Get(key)
	if !ok {
		return false, false
	}
	return v.AsBool()
}

// Parse reads a whole binary VDF document.
func Parse(r io.Reader) (*Map, error) {
	buf := bufio.NewReader(r)

	byteArr, err := buf.Peek(1)
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyVDF
	}
	if err != nil {
		return nil, fmt.Errorf("peek error: %w", err)
	}

	b := byteArr[0]
	if b != vdfMarkerMap && b != vdfMarkerString && b != vdfMarkerNumber && b != vdfMarkerEndOfMap {
		return nil, ErrNotBinaryVDF
	}

	m, err := parseMap(buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, ErrCorruptedVDF
	}
	return m, err
}

func parseMap(buf *bufio.Reader) (*Map, error) {
	m := NewMap()

	for {
		b, err := buf.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("read byte error: %w", err)
		}

		if b == vdfMarkerEndOfMap {
			break
		}

		key, err := parseString(buf)
		if err != nil {
			return nil, err
		}

		var value Value
		switch b {
		case vdfMarkerMap:
			var child *Map
			child, err = parseMap(buf)
			value = MapValue(child)
		case vdfMarkerNumber:
			value, err = parseNumber(buf)
		case vdfMarkerString:
			var s string
			s, err = parseString(buf)
			value = String(s)
		default:
			err = fmt.Errorf("unexpected byte: 0x%02x, your file might be corrupted", b)
		}

		if err != nil {
			return nil, err
		}

		m.entries = append(m.entries, Entry{Key: key, Value: value})
	}

	return m, nil
}

func parseNumber(buf *bufio.Reader) (Value, error) {
	bf := make([]byte, 4)

	if _, err := io.ReadFull(buf, bf); err != nil {
		return Value{}, fmt.Errorf("read number error: %w", err)
	}

	return Number(binary.LittleEndian.Uint32(bf)), nil
}

func parseString(buf *bufio.Reader) (string, error) {
	s, err := buf.ReadString(vdfMarkerEndOfString)
	if err == nil {
		return s[:len(s)-1], nil
	}
	return "", fmt.Errorf("read string error: %w", err)
}
