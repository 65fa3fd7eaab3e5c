package ports

import "time"

// FileSystem defines the interface for file access used by the load pipeline.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Stat returns the modification time of the file at path.
	Stat(path string) (time.Time, error)

	// ReadText reads the file at path and returns its contents.
	ReadText(path string) (string, error)

	// WriteText writes text to path, creating parent directories as needed.
	// The write is atomic: a concurrent reader sees either the previous
	// content or the new content, never a partial file.
	WriteText(path, text string) error

	// Remove deletes the file at path. A missing file is not an error.
	Remove(path string) error
}
