package config

// ProjectFile mirrors lumen.yaml.
type ProjectFile struct {
	Version  string      `yaml:"version"`
	Root     string      `yaml:"root"`
	Out      string      `yaml:"out"`
	Compiler CompilerDTO `yaml:"compiler"`
}

// CompilerDTO configures the external compiler invocation.
type CompilerDTO struct {
	// Command is the argv of the compiler process. It receives source
	// text on stdin and writes the compiled module to stdout.
	Command []string `yaml:"command"`
}
