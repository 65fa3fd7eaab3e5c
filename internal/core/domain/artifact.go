package domain

// CompileResult is what the external compiler produces for one source file.
type CompileResult struct {
	// Code is the compiled ES module text.
	Code string
	// SourceMap is the JSON source map, or empty when the compiler emits none.
	SourceMap string
}

// Artifact is the persisted compiled module returned to the host's load hook.
type Artifact struct {
	// Code is the current content of the persisted module.
	Code string
	// SourceMap is the content of the map sidecar, or empty when none exists.
	SourceMap string
}
