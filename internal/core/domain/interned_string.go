package domain

import "unique"

// InternedString is a canonicalized string handle. Two values built from
// equal strings compare equal through a single pointer, which keeps the
// registry's path and identity keys cheap to hash and compare.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s and returns its handle.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the interned value.
func (is InternedString) String() string {
	return is.h.Value()
}

// Value exposes the underlying handle.
func (is InternedString) Value() unique.Handle[string] {
	return is.h
}
