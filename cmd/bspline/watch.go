package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is how long a file has to stay unchanged before it's
// rendered again.
const watchDebounce = 100 * time.Millisecond

// watchSpline calls render once, and again every time the file at path has
// been written to, until ctx is canceled. Errors returned by render are
// logged, not returned, since the file may be in an intermediate state.
func watchSpline(ctx context.Context, path string, render func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory so that replacing the file doesn't end the watch.
	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	renderLogged := func() {
		if err := render(); err != nil {
			slog.Error("rendering failed", "file", path, "err", err)
		} else {
			slog.Info("rendered", "file", path)
		}
	}
	renderLogged()

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			slog.Debug("file changed", "file", ev.Name, "op", ev.Op)
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			renderLogged()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "err", err)
		}
	}
}
