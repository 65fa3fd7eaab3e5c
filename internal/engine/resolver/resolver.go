// Package resolver maps import specifiers onto compiled module identities.
package resolver

import (
	"path/filepath"
	"strings"

	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/lumenlang/lumen/internal/core/ports"
	"github.com/lumenlang/lumen/internal/registry"
)

// Options control a single resolution request.
type Options struct {
	// DiscoveryPass marks the host's side-effect-free scan. During a
	// discovery pass resolution defers unconditionally: it must neither
	// probe the filesystem nor touch the registry.
	DiscoveryPass bool
}

// Resolver decides which imports name Lumen sources and assigns each
// compiled module a stable output identity under the project's output
// directory. Everything else falls through to the host's own resolution.
type Resolver struct {
	registry *registry.Registry
	fs       ports.FileSystem
	logger   ports.Logger
	root     string
	outDir   string
}

// New creates a Resolver for the project rooted at root. outDir is
// interpreted relative to root unless it is absolute.
func New(reg *registry.Registry, fsys ports.FileSystem, logger ports.Logger, root, outDir string) *Resolver {
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(root, outDir)
	}
	return &Resolver{
		registry: reg,
		fs:       fsys,
		logger:   logger,
		root:     filepath.Clean(root),
		outDir:   filepath.Clean(outDir),
	}
}

// Resolve maps specifier, imported from importerID, onto a resolved module
// id. The boolean is false when the import is not ours and the host's
// default resolution should proceed.
//
// Relative specifiers inside compiled modules are joined against the
// directory of the module's original source, never against the output
// tree. An extension-less specifier is probed for a sibling source file.
// Specifiers that end up naming a source file are registered and answer
// with the output identity; other path-like specifiers imported from
// compiled modules are rewritten back to the source tree; bare
// package-style specifiers always defer.
func (r *Resolver) Resolve(specifier, importerID string, opts Options) (string, bool) {
	if opts.DiscoveryPass || specifier == "" {
		return "", false
	}

	var source domain.SourceRecord
	fromOutput := false
	if importerID != "" {
		source, fromOutput = r.registry.ByOutput(importerID)
	}

	candidate := specifier
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(r.baseDir(importerID, source, fromOutput), specifier)
	}
	candidate = filepath.Clean(candidate)

	if filepath.Ext(candidate) == "" {
		if _, err := r.fs.Stat(candidate + domain.SourceExt); err == nil {
			candidate += domain.SourceExt
		}
	}

	if filepath.Ext(candidate) == domain.SourceExt {
		return r.registerSource(candidate, specifier)
	}

	if fromOutput && !isBare(specifier) {
		r.logger.Debug("rewrote import against source tree", "specifier", specifier, "path", candidate)
		return candidate, true
	}

	return "", false
}

// baseDir picks the directory relative specifiers are joined against.
// Imports inside a compiled module resolve against the directory of the
// module's source; other importers resolve against their own directory;
// importless requests resolve against the project root.
func (r *Resolver) baseDir(importerID string, source domain.SourceRecord, fromOutput bool) string {
	switch {
	case fromOutput:
		return filepath.Dir(source.SourcePath.String())
	case importerID != "":
		return filepath.Dir(importerID)
	default:
		return r.root
	}
}

func (r *Resolver) registerSource(sourcePath, specifier string) (string, bool) {
	rel, err := filepath.Rel(r.root, sourcePath)
	if err != nil || strings.HasPrefix(rel, "..") {
		// A source outside the project root has no place in the output
		// tree; leave it to the host.
		r.logger.Debug("source outside project root, deferring", "path", sourcePath)
		return "", false
	}

	rec := r.registry.Register(sourcePath, domain.OutputPathFor(r.outDir, rel))
	outputID := rec.OutputID.String()
	r.logger.Debug("resolved source import", "specifier", specifier, "source", sourcePath, "output_id", outputID)
	return outputID, true
}

// isBare reports whether specifier is a bare package-style name rather
// than a path. Bare specifiers belong to the host's package resolution.
func isBare(specifier string) bool {
	if filepath.IsAbs(specifier) {
		return false
	}
	if specifier == "." || specifier == ".." {
		return false
	}
	return !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../")
}
