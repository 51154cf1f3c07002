package engine

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/leapdl/internal/config"
)

// DefaultDebounce is how long Watch waits for writes to settle.
const DefaultDebounce = config.DefaultDebounce

// WatchOptions configures Watch.
type WatchOptions struct {
	// Debounce delays the re-check after the last change (DefaultDebounce if zero)
	Debounce time.Duration
	// OnCheck receives every check result, including the initial one
	OnCheck func(*CheckResult)
	// OnError receives check and watcher errors; Watch keeps running
	OnError func(error)
}

// Watch checks dir, then re-checks it whenever a source file under it is
// written or created. It blocks until ctx is done.
func (e *Engine) Watch(ctx context.Context, dir string, opts WatchOptions) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.OnCheck == nil {
		opts.OnCheck = func(*CheckResult) {}
	}
	if opts.OnError == nil {
		opts.OnError = func(err error) { e.logger.Error("watch error", "error", err) }
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	recheck := func() {
		result, err := e.Check(ctx, dir)
		if err != nil {
			if ctx.Err() == nil {
				opts.OnError(err)
			}
			return
		}
		opts.OnCheck(result)
	}
	recheck()

	// Re-checks run on this goroutine so callbacks never overlap.
	var debounce <-chan time.Time
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

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 && !isHidden(event.Name) {
				// New directories have to be added to keep the watch recursive.
				_ = watchDirRecursive(watcher, event.Name)
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !e.HasSourceExt(event.Name) {
				continue
			}

			e.logger.Debug("file changed", "file", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(opts.Debounce)
			debounce = timer.C

		case <-debounce:
			debounce = nil
			recheck()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			opts.OnError(err)
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
// A path that is not a directory is ignored.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
