package logger

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// messager is the single-link message accessor on zerr.Error. Errors
// without it render their full Error() text instead.
type messager interface {
	Message() string
}

// metadater matches the Metadata() accessor on zerr.Error.
type metadater interface {
	Metadata() map[string]any
}

// ChainEntry is one link of an error chain prepared for rendering.
// Metadata is nil for errors that carry none.
type ChainEntry struct {
	Message  string
	Metadata map[string]any
}

// collectChain walks the error chain and collects one entry per link.
// zerr errors contribute their bare message and metadata; the first
// non-zerr error contributes its full Error() text and ends the walk,
// since standard wrapping repeats the causes in every message.
func collectChain(err error) []ChainEntry {
	var entries []ChainEntry
	current := err

	for current != nil {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ChainEntry{Message: current.Error()})
			break
		}

		entry := ChainEntry{Message: m.Message()}
		if md, ok := current.(metadater); ok {
			entry.Metadata = md.Metadata()
		}
		entries = append(entries, entry)

		current = errors.Unwrap(current)
	}

	return entries
}

// renderChain renders collected entries hierarchically: the main error
// first, then its causes under a "Caused by:" header, each with its
// metadata keys in alphabetical order.
func renderChain(entries []ChainEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			// Indent continuation lines to align with "Error: "
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			lines = append(lines, metadataLines(entry.Metadata, "       ")...)
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		// Indent continuation lines to align with the arrow
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
		lines = append(lines, metadataLines(entry.Metadata, "      ")...)
	}

	return strings.Join(lines, "\n")
}

func metadataLines(metadata map[string]any, indent string) []string {
	if len(metadata) == 0 {
		return nil
	}

	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, metadata[key]))
	}

	return lines
}
