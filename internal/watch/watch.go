// CLASSIFICATION: COMMUNITY
// Filename: watch.go v0.3
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package watch reports filesystem changes beneath the served root folder.
// It only logs; responses are always read fresh from disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Logger is satisfied by *log.Logger.
type Logger interface {
	Printf(format string, v ...any)
}

// Watcher follows every directory under a root.
type Watcher struct {
	root string
	log  Logger
	w    *fsnotify.Watcher
}

// New creates a watcher and registers root and all of its subdirectories.
func New(root string, log Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}
	w := &Watcher{root: root, log: log, w: fw}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Run logs events until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.w.Close()
	w.log.Printf("watch: following %s", w.root)
	for {
		select {
		case <-ctx.Done():
			w.log.Printf("watch: stopped following %s", w.root)
			return nil
		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			w.log.Printf("watch: %s %s", ev.Name, ev.Op.String())
			if ev.Has(fsnotify.Create) {
				// New directories are not covered by the original Add calls.
				if err := w.addTree(ev.Name); err != nil {
					w.log.Printf("watch: error %v", err)
				}
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			w.log.Printf("watch: error %v", err)
		}
	}
}
