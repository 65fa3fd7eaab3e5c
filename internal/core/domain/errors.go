package domain

import "go.trai.ch/zerr"

var (
	// ErrProjectRootRequired is returned when a plugin is constructed without a project root.
	ErrProjectRootRequired = zerr.New("project root is required")

	// ErrProjectRootNotAbsolute is returned when the configured project root is not an absolute path.
	ErrProjectRootNotAbsolute = zerr.New("project root must be an absolute path")

	// ErrCompilerRequired is returned when a plugin is constructed without a compiler.
	ErrCompilerRequired = zerr.New("compiler is required")

	// ErrCompileFailed is returned when the external compiler rejects a source file.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrSourceStatFailed is returned when a tracked source file cannot be stat'd.
	ErrSourceStatFailed = zerr.New("failed to stat source file")

	// ErrSourceReadFailed is returned when a tracked source file cannot be read.
	ErrSourceReadFailed = zerr.New("failed to read source file")

	// ErrArtifactWriteFailed is returned when a compiled module cannot be persisted.
	ErrArtifactWriteFailed = zerr.New("failed to write compiled module")

	// ErrArtifactReadFailed is returned when a persisted compiled module cannot be read back.
	ErrArtifactReadFailed = zerr.New("failed to read compiled module")

	// ErrOutputDirCreateFailed is returned when the output directory cannot be created.
	ErrOutputDirCreateFailed = zerr.New("failed to create output directory")

	// ErrConfigNotFound is returned when no lumen.yaml can be found from the working directory upward.
	ErrConfigNotFound = zerr.New("could not find lumen.yaml")

	// ErrConfigReadFailed is returned when lumen.yaml exists but cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when lumen.yaml is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrCompilerCommandEmpty is returned when lumen.yaml does not declare a compiler command.
	ErrCompilerCommandEmpty = zerr.New("no compiler command configured")

	// ErrOutDirInvalid is returned when the configured output directory does not resolve to a proper subdirectory of the project root.
	ErrOutDirInvalid = zerr.New("output directory must be a subdirectory of the project root")

	// ErrBuildFailed is returned when one or more sources fail to compile during a full build.
	ErrBuildFailed = zerr.New("build failed")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")
)
