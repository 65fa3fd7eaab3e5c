package domain

import "path/filepath"

const (
	// SourceExt is the extension of Lumen source files.
	SourceExt = ".lum"

	// OutputExt is the extension of compiled ES modules.
	OutputExt = ".mjs"

	// SourceMapExt is appended to an output path for its source map sidecar.
	SourceMapExt = ".map"

	// LumenDirName is the workspace directory Lumen owns inside a project.
	LumenDirName = ".lumen"

	// OutDirName holds compiled modules inside LumenDirName.
	OutDirName = "out"

	// ConfigFileName is the project configuration file.
	ConfigFileName = "lumen.yaml"

	// DebugEnvVar switches on verbose diagnostics when set to any
	// non-empty value.
	DebugEnvVar = "LUMEN_DEBUG"

	// SpanAttrOutput carries the output id of a load on its span.
	SpanAttrOutput = "lumen.output"

	// SpanAttrCached marks a load that was served from a fresh artifact.
	SpanAttrCached = "lumen.cached"

	// DirPerm is the mode for directories Lumen creates.
	DirPerm = 0o750

	// FilePerm is the mode for compiled artifacts.
	FilePerm = 0o644
)

// DefaultOutDir is the output directory used when the project does not
// configure one, relative to the project root.
func DefaultOutDir() string {
	return filepath.Join(LumenDirName, OutDirName)
}

// OutputPathFor maps a project-relative source path to its output path
// under outDir, swapping the source extension for the module extension.
// The caller guarantees relSource carries SourceExt.
func OutputPathFor(outDir, relSource string) string {
	rel := relSource[:len(relSource)-len(SourceExt)] + OutputExt
	return filepath.Join(outDir, rel)
}
