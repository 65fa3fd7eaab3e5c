package watcher

import (
	"io"
	"os"
	"sync"
	"unique"

	"github.com/cespare/xxhash/v2"
)

// Fingerprints tracks the last observed content hash of each path so watch
// events that do not change file content (editor saves with identical bytes,
// touch) can be dropped before they reach invalidation.
type Fingerprints struct {
	mu     sync.Mutex
	hashes map[unique.Handle[string]]uint64
}

// NewFingerprints creates an empty fingerprint table.
func NewFingerprints() *Fingerprints {
	return &Fingerprints{
		hashes: make(map[unique.Handle[string]]uint64),
	}
}

// Changed reports whether the content at path differs from the last call.
// Unreadable paths, removed files included, report changed and lose their
// stored hash so a later recreate is observed again.
func (f *Fingerprints) Changed(path string) bool {
	sum, err := hashFile(path)
	handle := unique.Make(path)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		delete(f.hashes, handle)
		return true
	}

	if prev, ok := f.hashes[handle]; ok && prev == sum {
		return false
	}
	f.hashes[handle] = sum
	return true
}

// hashFile computes the XXHash of a file's content.
func hashFile(path string) (uint64, error) {
	file, err := os.Open(path) //nolint:gosec // Path comes from watch events inside the project
	if err != nil {
		return 0, err
	}
	defer file.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return 0, err
	}

	return hasher.Sum64(), nil
}
