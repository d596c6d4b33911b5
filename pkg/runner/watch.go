package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"
	"github.com/retroenv/retrogolib/log"
)

// reloadDelay collapses the burst of events a single save produces.
const reloadDelay = 100 * time.Millisecond

// Watcher reloads a program into a runner whenever its file changes.
type Watcher struct {
	runner      *Runner
	path        string
	programBase uint16
	watcher     *fsnotify.Watcher
}

// Watch starts watching the directory of the program file. The returned
// watcher does nothing until Run is called.
func (r *Runner) Watch(path string, programBase uint16) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	path = filepath.Clean(path)
	if err := watcher.Watch(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{
		runner:      r,
		path:        path,
		programBase: programBase,
		watcher:     watcher,
	}, nil
}

// Run reloads the program on every change until the context is cancelled.
// Errors while reloading are logged, the previous program keeps running.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	logger := w.runner.logger
	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-w.watcher.Event:
			if filepath.Clean(ev.Name) == w.path && !ev.IsAttrib() && !ev.IsDelete() {
				reload = time.After(reloadDelay)
			}

		case err := <-w.watcher.Error:
			logger.Warn("File watcher failed", log.Err(err))

		case <-reload:
			reload = nil
			rom, err := ReadROM(w.path, w.programBase)
			if err == nil {
				err = w.runner.Swap(rom)
			}
			if err != nil {
				logger.Error("Reloading program failed", log.String("file", w.path), log.Err(err))
				continue
			}
			logger.Info("Program reloaded", log.String("file", w.path))
		}
	}
}
