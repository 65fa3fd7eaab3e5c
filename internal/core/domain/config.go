package domain

// ProjectConfig is the parsed project configuration plus the resolved root.
type ProjectConfig struct {
	// Root is the absolute directory containing the config file.
	Root string

	// OutDir is the output directory for compiled modules, relative to
	// Root unless absolute.
	OutDir string

	// CompilerCommand is the argv of the external compiler process.
	// Empty when the embedding host supplies its own compile function.
	CompilerCommand []string
}
