// Package config locates and parses lumen.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/lumenlang/lumen/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader finds the project's lumen.yaml and turns it into a
// domain.ProjectConfig.
type Loader struct {
	Logger ports.Logger
}

// NewLoader returns a Loader that reports config oddities through logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration for the project containing cwd. The output
// directory defaults when the config does not set one; a configured
// directory must stay inside the project root.
func (l *Loader) Load(cwd string) (*domain.ProjectConfig, error) {
	configPath, err := locateConfig(cwd)
	if err != nil {
		return nil, err
	}

	file, err := parseProjectFile(configPath)
	if err != nil {
		return nil, err
	}
	if file.Version != "" && file.Version != "1" {
		l.Logger.Warn(fmt.Sprintf("unknown config version %q in %s, proceeding as version 1", file.Version, domain.ConfigFileName))
	}

	root := projectRoot(configPath, file.Root)
	outDir, err := resolveOutDir(root, file.Out)
	if err != nil {
		return nil, err
	}

	return &domain.ProjectConfig{
		Root:            root,
		OutDir:          outDir,
		CompilerCommand: file.Compiler.Command,
	}, nil
}

// DiscoverRoot walks up from cwd to the directory containing lumen.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, err := locateConfig(cwd)
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

// locateConfig scans from cwd toward the filesystem root for a lumen.yaml.
func locateConfig(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrConfigNotFound.Error())
	}

	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
		}
		dir = parent
	}
}

func parseProjectFile(configPath string) (*ProjectFile, error) {
	data, err := os.ReadFile(configPath) // #nosec G304 -- path comes from the upward lumen.yaml scan
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file ProjectFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return &file, nil
}

// projectRoot resolves the optional root field against the config file's
// directory.
func projectRoot(configPath, configured string) string {
	configDir := filepath.Dir(configPath)
	switch {
	case configured == "":
		return filepath.Clean(configDir)
	case filepath.IsAbs(configured):
		return filepath.Clean(configured)
	default:
		return filepath.Clean(filepath.Join(configDir, configured))
	}
}

// resolveOutDir absolutizes the configured output directory and rejects
// anything that is not a proper subdirectory of root.
func resolveOutDir(root, configured string) (string, error) {
	outDir := configured
	if outDir == "" {
		outDir = domain.DefaultOutDir()
	}
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(root, outDir)
	}
	outDir = filepath.Clean(outDir)

	rel, err := filepath.Rel(root, outDir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", zerr.With(domain.ErrOutDirInvalid, "out", configured)
	}
	return outDir, nil
}
