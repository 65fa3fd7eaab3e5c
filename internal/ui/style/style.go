// Package style centralizes the CLI's color palette and status glyphs.
package style

import "github.com/charmbracelet/lipgloss"

// Log level colors. The pretty handler renders warnings Yellow, errors
// Red, and secondary text Slate.
var (
	Slate  = lipgloss.Color("#6B7280")
	Yellow = lipgloss.Color("#FBBF24")
	Red    = lipgloss.Color("#EF4444")
)

// Status glyphs.
const (
	Check   = "✓"
	Circle  = "○"
	Cross   = "✗"
	Warning = "!"
)
