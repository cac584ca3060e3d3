package halyard

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces bursts of filesystem events into one ChangeEvent.
const debounceDelay = 100 * time.Millisecond

// Watch monitors the dotenv file at path and emits a ChangeEvent whenever
// it is written, created, or replaced. The parent directory is watched
// rather than the file itself: editors and atomic writers replace the file
// via rename, which would silently kill a direct watch. Events are
// debounced. The channel closes when ctx is cancelled.
func Watch(ctx context.Context, path string) (<-chan ChangeEvent, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("halyard: resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("halyard: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("halyard: watch %s: %w", filepath.Dir(abs), err)
	}

	events := make(chan ChangeEvent, 1)
	go watchLoop(ctx, watcher, filepath.Base(abs), events)
	return events, nil
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, base string, events chan<- ChangeEvent) {
	defer close(events)
	defer watcher.Close()

	// The timer starts drained; it is armed on the first relevant event.
	timer := time.NewTimer(debounceDelay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var cause string

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			cause = "file-" + opLabel(ev.Op)
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounceDelay)

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}

		case <-timer.C:
			select {
			case events <- ChangeEvent{At: time.Now(), Cause: cause}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func opLabel(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Write):
		return "written"
	case op.Has(fsnotify.Create):
		return "created"
	case op.Has(fsnotify.Rename):
		return "renamed"
	case op.Has(fsnotify.Remove):
		return "removed"
	default:
		return "changed"
	}
}
