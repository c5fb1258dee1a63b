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
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
	"github.com/nonsteamlaunchers/nsl-core/pkg/helpers/syncutil"
	"github.com/nonsteamlaunchers/nsl-core/pkg/shortcuts"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// DefaultDebounce is how long a descriptor file must stay unchanged
// before it is read.
const DefaultDebounce = 500 * time.Millisecond

// Batch is the content of one descriptor file.
type Batch struct {
	Path  string
	Games []shortcuts.GameDescriptor
}

// Watcher reports descriptor files (*.json) written to a drop directory.
type Watcher struct {
	fs       afero.Fs
	clock    clockwork.Clock
	pending  map[string]clockwork.Timer
	out      chan Batch
	dir      string
	debounce time.Duration
	wg       sync.WaitGroup
	mu       syncutil.Mutex
	closed   bool
	// Remove deletes a file once its batch has been delivered.
	Remove bool
}

// NewWatcher returns a watcher for dir. Files are read through fs, which
// must be backed by the OS filesystem for change events to arrive.
func NewWatcher(fs afero.Fs, clock clockwork.Clock, dir string, debounce time.Duration) *Watcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fs:       fs,
		clock:    clock,
		dir:      dir,
		debounce: debounce,
		pending:  make(map[string]clockwork.Timer),
		out:      make(chan Batch),
	}
}

// Batches delivers decoded files. It is closed when Run returns.
func (w *Watcher) Batches() <-chan Batch {
	return w.out
}

// Run watches the directory until ctx is done. Files already present when
// it starts are reported too.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.shutdown()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := w.fs.MkdirAll(w.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create watch directory: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := fw.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing file watcher")
		}
	}()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	log.Info().Str("dir", w.dir).Msg("watching for game descriptors")

	existing, err := afero.Glob(w.fs, filepath.Join(w.dir, "*.json"))
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", w.dir, err)
	}
	for _, path := range existing {
		w.schedule(ctx, path)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !isDescriptorFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				w.schedule(ctx, event.Name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("error in file watcher")
		}
	}
}

func isDescriptorFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// schedule (re)starts the debounce timer of path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = w.clock.AfterFunc(w.debounce, func() {
		w.fire(ctx, path)
	})
}

func (w *Watcher) fire(ctx context.Context, path string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	delete(w.pending, path)
	w.wg.Add(1)
	w.mu.Unlock()
	defer w.wg.Done()

	data, err := afero.ReadFile(w.fs, path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to read descriptor file")
		return
	}
	games, err := DecodeFile(data)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to decode descriptor file")
		return
	}
	if len(games) == 0 {
		return
	}

	select {
	case w.out <- Batch{Path: path, Games: games}:
	case <-ctx.Done():
		return
	}

	if w.Remove {
		if err := w.fs.Remove(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to remove descriptor file")
		}
	}
}

func (w *Watcher) shutdown() {
	w.mu.Lock()
	w.closed = true
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	w.wg.Wait()
	close(w.out)
}
