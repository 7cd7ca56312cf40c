package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/splat"
)

// Watch reloads the settings file whenever it changes and delivers each
// valid result on the returned channel. Invalid edits are logged and
// skipped, so the receiver always holds the last good settings.
//
// The parent directory is watched rather than the file itself so that
// editors which save by rename are picked up. The channel is closed when
// ctx is done.
//
// Settings arrive from a separate goroutine; apply them from the goroutine
// that drives the paint session.
func Watch(ctx context.Context, path string) (<-chan *Settings, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("config: watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan *Settings, 1)
	go func() {
		defer close(out)
		defer func() { _ = w.Close() }()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				s, err := Load(abs)
				if err != nil {
					splat.Logger().Warn("config: reload rejected", "path", abs, "err", err)
					continue
				}
				splat.Logger().Info("config: reloaded", "path", abs, "tool", s.Tool, "mode", s.Mode)
				select {
				case out <- s:
				case <-ctx.Done():
					return
				}

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				splat.Logger().Warn("config: watcher error", "err", err)
			}
		}
	}()
	return out, nil
}
