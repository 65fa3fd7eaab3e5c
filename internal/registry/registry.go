// Package registry tracks every source file that has entered the
// compilation pipeline during a session.
package registry

import (
	"sync"
	"time"

	"github.com/lumenlang/lumen/internal/core/domain"
)

// Registry is the bidirectional index of known source files.
//
// The forward direction maps a source path to its record, the reverse
// direction maps a compiled output identity back to the source that
// produces it. Records live for the whole session; nothing is evicted,
// so output identities stay stable even when a source is deleted on disk.
type Registry struct {
	mu      sync.RWMutex
	forward map[domain.InternedString]*domain.SourceRecord
	reverse map[domain.InternedString]domain.InternedString
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		forward: make(map[domain.InternedString]*domain.SourceRecord),
		reverse: make(map[domain.InternedString]domain.InternedString),
	}
}

// Register adds a source file with its output identity and returns a
// snapshot of its record. Registration is idempotent: if the source is
// already known the existing record wins, so the output identity and the
// compile stamp survive repeated resolution of the same file.
func (r *Registry) Register(sourcePath, outputID string) domain.SourceRecord {
	srcKey := domain.NewInternedString(sourcePath)

	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.forward[srcKey]; ok {
		return *rec
	}

	outKey := domain.NewInternedString(outputID)
	rec := &domain.SourceRecord{
		SourcePath: srcKey,
		OutputID:   outKey,
	}
	r.forward[srcKey] = rec
	r.reverse[outKey] = srcKey
	return *rec
}

// BySource returns a snapshot of the record for the given source path.
func (r *Registry) BySource(sourcePath string) (domain.SourceRecord, bool) {
	srcKey := domain.NewInternedString(sourcePath)

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.forward[srcKey]
	if !ok {
		return domain.SourceRecord{}, false
	}
	return *rec, true
}

// ByOutput returns a snapshot of the record whose compiled module has the
// given output identity.
func (r *Registry) ByOutput(outputID string) (domain.SourceRecord, bool) {
	outKey := domain.NewInternedString(outputID)

	r.mu.RLock()
	defer r.mu.RUnlock()

	srcKey, ok := r.reverse[outKey]
	if !ok {
		return domain.SourceRecord{}, false
	}
	rec, ok := r.forward[srcKey]
	if !ok {
		return domain.SourceRecord{}, false
	}
	return *rec, true
}

// MarkCompiled advances the compile stamp for sourcePath to observedMTime,
// the source modification time seen when the compile started. The stamp
// never moves backwards; a stale observation is ignored. It reports
// whether the stamp advanced.
func (r *Registry) MarkCompiled(sourcePath string, observedMTime time.Time) bool {
	srcKey := domain.NewInternedString(sourcePath)

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.forward[srcKey]
	if !ok {
		return false
	}
	if !observedMTime.After(rec.LastCompiledAt) {
		return false
	}
	rec.LastCompiledAt = observedMTime
	return true
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.forward)
}
