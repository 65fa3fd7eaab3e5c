package fs

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/lumenlang/lumen/internal/core/ports"
)

// Walker discovers Lumen source files on disk.
type Walker struct{}

// NewWalker returns a stateless Walker.
func NewWalker() *Walker {
	return &Walker{}
}

var _ ports.SourceWalker = (*Walker)(nil)

// Walk returns the absolute paths of all source files under root, sorted.
// Version control directories, node_modules, and the workspace directory
// are skipped. Sources never live under the output directory, so a custom
// output location needs no special casing here.
func (w *Walker) Walk(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var sources []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(d.Name(), domain.SourceExt) {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(sources)
	return sources, nil
}

func shouldSkipDir(name string) bool {
	switch name {
	case ".git", ".jj", "node_modules", domain.LumenDirName:
		return true
	}
	return false
}
