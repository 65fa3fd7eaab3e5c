package ports

import (
	"context"
	"iter"
)

// WatchOp classifies a file system change.
type WatchOp uint8

const (
	// OpCreate marks a created file or directory.
	OpCreate WatchOp = iota
	// OpWrite marks a modified file.
	OpWrite
	// OpRemove marks a removed file or directory.
	OpRemove
	// OpRename marks a renamed file or directory.
	OpRename
)

// WatchEvent is one file system change reported by a Watcher.
type WatchEvent struct {
	// Path is the absolute path that changed.
	Path string
	// Operation classifies the change.
	Operation WatchOp
}

// Watcher observes a directory tree for changes.
type Watcher interface {
	// Start begins watching root recursively. Events flow until ctx is
	// cancelled or Stop is called.
	Start(ctx context.Context, root string) error
	// Stop ends the watch and releases all resources.
	Stop() error
	// Events returns the stream of observed changes.
	Events() iter.Seq[WatchEvent]
}
