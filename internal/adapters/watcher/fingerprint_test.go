package watcher_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lumenlang/lumen/internal/adapters/watcher"
	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func TestFingerprints_Changed_FirstObservation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.lum")
	writeSource(t, path, "import './lib'")

	f := watcher.NewFingerprints()

	assert.True(t, f.Changed(path), "first observation should report changed")
}

func TestFingerprints_Changed_IdenticalRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.lum")
	writeSource(t, path, "import './lib'")

	f := watcher.NewFingerprints()
	require.True(t, f.Changed(path))

	// Rewrite the same bytes, as editors do on save.
	writeSource(t, path, "import './lib'")

	assert.False(t, f.Changed(path), "identical content should not report changed")
}

func TestFingerprints_Changed_ContentChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.lum")
	writeSource(t, path, "import './lib'")

	f := watcher.NewFingerprints()
	require.True(t, f.Changed(path))

	writeSource(t, path, "import './lib'\nimport './other'")

	assert.True(t, f.Changed(path))
}

func TestFingerprints_Changed_MissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.lum")
	writeSource(t, path, "import './lib'")

	f := watcher.NewFingerprints()
	require.True(t, f.Changed(path))

	require.NoError(t, os.Remove(path))

	assert.True(t, f.Changed(path), "removed file should report changed")

	// Recreating with the original content must be observed again because
	// the stored hash was dropped on the failed read.
	writeSource(t, path, "import './lib'")
	assert.True(t, f.Changed(path))
}

func TestFingerprints_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 8)
	for i := range paths {
		paths[i] = filepath.Join(dir, "file"+string(rune('a'+i))+".lum")
		writeSource(t, paths[i], "content")
	}

	f := watcher.NewFingerprints()

	done := make(chan struct{})
	for _, path := range paths {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 16 {
				f.Changed(path)
			}
		}()
	}
	for range paths {
		<-done
	}

	// All files were observed; unchanged content now reports false.
	for _, path := range paths {
		assert.False(t, f.Changed(path))
	}
}
