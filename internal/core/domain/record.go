// Package domain defines the types shared across source tracking and compilation.
package domain

import "time"

// SourceRecord tracks one Lumen source file for the lifetime of the session.
type SourceRecord struct {
	// SourcePath is the absolute path of the source file. It is the record's identity.
	SourcePath InternedString
	// OutputID is the absolute virtual path of the compiled module. It is
	// assigned on first registration and never changes afterwards.
	OutputID InternedString
	// LastCompiledAt is the source modification time observed by the most
	// recent successful compile. The zero time means the source has never
	// been compiled.
	LastCompiledAt time.Time
}

// NeverCompiled reports whether the record has no successful compile yet.
func (r SourceRecord) NeverCompiled() bool {
	return r.LastCompiledAt.IsZero()
}
