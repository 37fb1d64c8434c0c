// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce coalesces the burst of events editors emit on save.
const DefaultWatchDebounce = 200 * time.Millisecond

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// Watcher reloads a config file when it changes on disk.
//
// The parent directory is watched rather than the file itself, since most
// editors save by writing a temp file and renaming it over the original.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration

	onChange func(*Config)
	onError  func(error)
}

// NewWatcher creates a watcher for path. onChange receives every config that
// loads and validates; onError, if set, receives load failures.
func NewWatcher(path string, onChange func(*Config)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		watcher:  fw,
		debounce: DefaultWatchDebounce,
		onChange: onChange,
	}, nil
}

// WithDebounce sets the quiet period before a reload.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// WithErrorHandler sets the callback for reload and watch errors.
func (w *Watcher) WithErrorHandler(fn func(error)) *Watcher {
	w.onError = fn
	return w
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.reportError(err)

		case <-timer.C:
			w.reload()
		}
	}
}

// Close stops the watcher. Run returns once its channels drain.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) reload() {
	cfg, err := LoadFromPath(w.path)
	if err != nil {
		w.reportError(err)
		return
	}
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
