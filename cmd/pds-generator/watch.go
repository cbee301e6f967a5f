package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watcher calls run once the watched files stop changing for debounce.
type watcher struct {
	paths    []string
	debounce time.Duration
	log      *zap.Logger
	run      func() error

	// ready, when set, is closed once the watches are in place.
	ready chan struct{}
}

// watch blocks until ctx is done. Failed runs are logged and watching goes on.
func (w *watcher) watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		_ = fw.Close()
	}()

	files := make(map[string]bool, len(w.paths))
	dirs := make(map[string]bool)

	for _, p := range w.paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}

		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	// Editors often save by renaming a temporary file, which drops a watch
	// on the file itself; directories survive that.
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	if w.ready != nil {
		close(w.ready)
	}

	w.log.Info("watching schemas", zap.Strings("paths", w.paths), zap.Duration("debounce", w.debounce))

	fire := make(chan struct{}, 1)
	notify := func() {
		select {
		case fire <- struct{}{}:
		default:
		}
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			abs, err := filepath.Abs(ev.Name)
			if err != nil || !files[abs] {
				continue
			}

			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.log.Debug("schema changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))

			switch {
			case w.debounce <= 0:
				notify()
			case timer == nil:
				timer = time.AfterFunc(w.debounce, notify)
			default:
				timer.Reset(w.debounce)
			}
		case <-fire:
			if err := w.run(); err != nil {
				w.log.Error("regeneration failed", zap.Error(err))
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			w.log.Warn("watch error", zap.Error(err))
		}
	}
}
