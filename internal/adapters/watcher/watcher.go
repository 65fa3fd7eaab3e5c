package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/lumenlang/lumen/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements ports.Watcher on top of fsnotify. fsnotify watches are
// per directory, so the whole source tree is registered up front and newly
// created directories are registered as their create events arrive.
type Watcher struct {
	inner  *fsnotify.Watcher
	events chan ports.WatchEvent
}

// NewWatcher opens the underlying fsnotify watcher.
func NewWatcher() (*Watcher, error) {
	inner, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		inner:  inner,
		events: make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start registers root and every directory below it, then begins translating
// events until ctx is cancelled or the watcher is stopped.
func (w *Watcher) Start(ctx context.Context, root string) error {
	if err := w.watchTree(root); err != nil {
		return err
	}
	go w.run(ctx)
	return nil
}

// Stop closes the underlying watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.inner.Close()
}

// Events returns an iterator of file system events. The stream ends when the
// watcher stops.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// watchTree registers every directory under root. Workspace directories are
// excluded so artifact writes never feed back into the watch pipeline.
func (w *Watcher) watchTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped rather than failing the watch.
			return nil //nolint:nilerr // This is intentional - we want to skip problematic directories
		}
		if !d.IsDir() {
			return nil
		}
		if skipDir(d.Name()) {
			return fs.SkipDir
		}
		return w.inner.Add(path)
	})
}

// skipDir reports whether a directory is excluded from watching.
func skipDir(name string) bool {
	switch name {
	case ".git", ".jj", "node_modules", domain.LumenDirName:
		return true
	}
	return false
}

// run translates raw fsnotify events onto the ports event channel.
func (w *Watcher) run(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.inner.Events:
			if !ok {
				return
			}
			op, ok := mapOp(event.Op)
			if !ok {
				continue
			}

			select {
			case w.events <- ports.WatchEvent{Path: event.Name, Operation: op}:
			case <-ctx.Done():
				return
			}

			if op == ports.OpCreate {
				w.watchNewDir(event.Name)
			}

		case err, ok := <-w.inner.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; report and keep draining.
			fmt.Fprintf(os.Stderr, "watcher: file system error: %v\n", err)
		}
	}
}

// watchNewDir registers a freshly created directory. Files may already exist
// below it without ever producing their own create events, so the whole
// subtree is walked.
func (w *Watcher) watchNewDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || skipDir(info.Name()) {
		return
	}
	_ = w.watchTree(path)
}

// mapOp translates an fsnotify operation. Chmod-only events carry no content
// change and are dropped.
func mapOp(op fsnotify.Op) (ports.WatchOp, bool) {
	switch {
	case op.Has(fsnotify.Write):
		return ports.OpWrite, true
	case op.Has(fsnotify.Create):
		return ports.OpCreate, true
	case op.Has(fsnotify.Remove):
		return ports.OpRemove, true
	case op.Has(fsnotify.Rename):
		return ports.OpRename, true
	}
	return 0, false
}
