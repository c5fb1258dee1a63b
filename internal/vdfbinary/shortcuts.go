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
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"slices"
	"strconv"
)

// ErrShortcutNotFound is returned when no shortcut has the requested app ID.
var ErrShortcutNotFound = errors.New("shortcut not found")

// Shortcut is one entry of a Steam shortcuts.vdf file.
type Shortcut struct {
	AppName             string
	Exe                 string
	Icon                string
	StartDir            string
	ShortcutPath        string
	LaunchOptions       string
	DevkitGameID        string
	FlatpakAppID        string
	Tags                []string
	AppID               uint32
	LastPlayTime        uint32
	DevkitOverrideAppID uint32
	IsHidden            bool
	AllowDesktopConfig  bool
	AllowOverlay        bool
	OpenVR              bool
	Devkit              bool
}

// ShortcutAppID returns the app ID Steam derives for a shortcut from its
// exe and name.
func ShortcutAppID(exe, appName string) uint32 {
	return crc32.ChecksumIEEE([]byte(exe+appName)) | 0x80000000
}

// NewShortcut returns a shortcut with Steam's defaults for a new entry.
func NewShortcut(appName, exe, startDir, launchOptions string) Shortcut {
	return Shortcut{
		AppID:              ShortcutAppID(exe, appName),
		AppName:            appName,
		Exe:                exe,
		StartDir:           startDir,
		LaunchOptions:      launchOptions,
		AllowDesktopConfig: true,
		AllowOverlay:       true,
	}
}

// HasTag reports whether the shortcut carries tag.
func (s *Shortcut) HasTag(tag string) bool {
	return slices.Contains(s.Tags, tag)
}

func shortcutFromMap(s *Map) (Shortcut, error) {
	appID, ok := s.GetUint("appid")
	if !ok {
		return Shortcut{}, errors.New("could not get key 'appid' for one of the shortcuts")
	}

	appName, ok := s.GetString("AppName")
	if !ok {
		return Shortcut{}, errors.New("could not get key 'AppName' for one of the shortcuts")
	}

	exe, ok := s.GetString("Exe")
	if !ok {
		return Shortcut{}, errors.New("could not get key 'Exe' for one of the shortcuts")
	}

	startDir, ok := s.GetString("StartDir")
	if !ok {
		return Shortcut{}, errors.New("could not get key 'StartDir' for one of the shortcuts")
	}

	sc := Shortcut{
		AppID:    appID,
		AppName:  appName,
		Exe:      exe,
		StartDir: startDir,
	}

	// everything below is optional; EmuDeck/Lutris entries often lack it
	sc.Icon, _ = s.GetString("icon")
	sc.ShortcutPath, _ = s.GetString("ShortcutPath")
	sc.LaunchOptions, _ = s.GetString("LaunchOptions")
	sc.DevkitGameID, _ = s.GetString("DevkitGameID")
	sc.FlatpakAppID, _ = s.GetString("FlatpakAppID")
	sc.LastPlayTime, _ = s.GetUint("LastPlayTime")
	sc.DevkitOverrideAppID, _ = s.GetUint("DevkitOverrideAppID")
	sc.IsHidden, _ = s.GetBool("IsHidden")
	sc.AllowDesktopConfig, _ = s.GetBool("AllowDesktopConfig")
	sc.AllowOverlay, _ = s.GetBool("AllowOverlay")
	sc.OpenVR, _ = s.GetBool("OpenVR")
	sc.Devkit, _ = s.GetBool("Devkit")

	if tagsMap, ok := s.GetMap("tags"); ok {
		for j := range tagsMap.Len() {
			t, ok := tagsMap.Get(strconv.Itoa(j))
			if !ok {
				break
			}
			ts, ok := t.AsString()
			if !ok {
				continue
			}
			sc.Tags = append(sc.Tags, ts)
		}
	}

	return sc, nil
}

// applyTo writes the shortcut's fields into m, keeping keys it does not
// know about.
func (s *Shortcut) applyTo(m *Map) {
	m.Set("appid", Number(s.AppID))
	m.Set("AppName", String(s.AppName))
	m.Set("Exe", String(s.Exe))
	m.Set("StartDir", String(s.StartDir))
	m.Set("icon", String(s.Icon))
	m.Set("ShortcutPath", String(s.ShortcutPath))
	m.Set("LaunchOptions", String(s.LaunchOptions))
	m.Set("IsHidden", Bool(s.IsHidden))
	m.Set("AllowDesktopConfig", Bool(s.AllowDesktopConfig))
	m.Set("AllowOverlay", Bool(s.AllowOverlay))
	m.Set("OpenVR", Bool(s.OpenVR))
	m.Set("Devkit", Bool(s.Devkit))
	m.Set("DevkitGameID", String(s.DevkitGameID))
	m.Set("DevkitOverrideAppID", Number(s.DevkitOverrideAppID))
	m.Set("LastPlayTime", Number(s.LastPlayTime))
	m.Set("FlatpakAppID", String(s.FlatpakAppID))

	tags := NewMap()
	for i, t := range s.Tags {
		tags.Set(strconv.Itoa(i), String(t))
	}
	m.Set("tags", MapValue(tags))
}

// ParseShortcuts reads every shortcut from a shortcuts.vdf document.
func ParseShortcuts(buf io.Reader) ([]Shortcut, error) {
	c, err := ReadCatalog(buf)
	if err != nil {
		return []Shortcut{}, err
	}
	return c.Shortcuts()
}

// Catalog is an editable shortcuts.vdf document.
type Catalog struct {
	root *Map
	list *Map
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	root := NewMap()
	list := NewMap()
	root.Set("shortcuts", MapValue(list))
	return &Catalog{root: root, list: list}
}

// ReadCatalog parses a shortcuts.vdf document.
func ReadCatalog(r io.Reader) (*Catalog, error) {
	root, err := Parse(r)
	if err != nil {
		return nil, err
	}

	list, ok := root.GetMap("shortcuts")
	if !ok {
		return nil, errors.New("could not find 'shortcuts' in parsed vdf")
	}

	return &Catalog{root: root, list: list}, nil
}

// Len returns the number of shortcuts.
func (c *Catalog) Len() int {
	return c.list.Len()
}

func (c *Catalog) entry(i int) (*Map, error) {
	s, ok := c.list.GetMap(strconv.Itoa(i))
	if !ok {
		return nil, errors.New("vdf that should be an array does not have the corresponding index")
	}
	return s, nil
}

// Shortcuts decodes every entry in index order.
func (c *Catalog) Shortcuts() ([]Shortcut, error) {
	shortcuts := make([]Shortcut, c.list.Len())
	for i := range shortcuts {
		m, err := c.entry(i)
		if err != nil {
			return []Shortcut{}, err
		}
		s, err := shortcutFromMap(m)
		if err != nil {
			return []Shortcut{}, err
		}
		shortcuts[i] = s
	}
	return shortcuts, nil
}

func (c *Catalog) find(appID uint32) (*Map, error) {
	for i := range c.list.Len() {
		m, err := c.entry(i)
		if err != nil {
			return nil, err
		}
		if id, ok := m.GetUint("appid"); ok && id == appID {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrShortcutNotFound, appID)
}

// Find returns the shortcut with appID.
func (c *Catalog) Find(appID uint32) (Shortcut, error) {
	m, err := c.find(appID)
	if err != nil {
		return Shortcut{}, err
	}
	return shortcutFromMap(m)
}

// Add appends s as a new entry.
func (c *Catalog) Add(s *Shortcut) {
	m := NewMap()
	s.applyTo(m)
	c.list.Set(strconv.Itoa(c.list.Len()), MapValue(m))
}

// Update loads the shortcut with appID, applies fn and stores the result.
func (c *Catalog) Update(appID uint32, fn func(*Shortcut)) error {
	m, err := c.find(appID)
	if err != nil {
		return err
	}
	s, err := shortcutFromMap(m)
	if err != nil {
		return err
	}
	fn(&s)
	s.applyTo(m)
	return nil
}

// Encode writes the catalog as a shortcuts.vdf document.
func (c *Catalog) Encode(w io.Writer) error {
	return Encode(w, c.root)
}
