// Package fs provides file system adapters for reading sources and
// persisting compiled artifacts.
package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/lumenlang/lumen/internal/core/ports"
	"go.trai.ch/zerr"
)

// FS implements ports.FileSystem on the local disk.
type FS struct{}

// New creates a new FS.
func New() *FS {
	return &FS{}
}

var _ ports.FileSystem = (*FS)(nil)

// Stat returns the modification time of the file at path.
func (f *FS) Stat(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// ReadText reads the file at path and returns its contents.
func (f *FS) ReadText(path string) (string, error) {
	// #nosec G304 -- paths come from resolved project sources
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteText writes text to path, creating parent directories as needed.
// The content lands in a temporary file first and is renamed into place,
// so a crash mid-write never leaves a partial file at the destination.
func (f *FS) WriteText(path, text string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrOutputDirCreateFailed.Error())
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
	}
	return nil
}

// Remove deletes the file at path. A missing file is not an error.
func (f *FS) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
