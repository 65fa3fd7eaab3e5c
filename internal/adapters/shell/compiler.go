// Package shell runs the external compiler as a stdin-to-stdout subprocess.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/lumenlang/lumen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Compiler)(nil)

// Compiler implements ports.Compiler by piping source text through an
// external command. The command receives the source on stdin and the origin
// path as its final argument, and must print the compiled module on stdout.
type Compiler struct {
	command []string
	dir     string
	logger  ports.Logger
}

// NewCompiler creates a compiler running the given argv with dir as its
// working directory.
func NewCompiler(command []string, dir string, logger ports.Logger) *Compiler {
	return &Compiler{
		command: command,
		dir:     dir,
		logger:  logger,
	}
}

// Compile runs one compilation and returns the compiled module text.
func (c *Compiler) Compile(ctx context.Context, source, originPath string) (domain.CompileResult, error) {
	if len(c.command) == 0 {
		return domain.CompileResult{}, domain.ErrCompilerCommandEmpty
	}

	name := c.command[0]
	args := append([]string{}, c.command[1:]...)
	args = append(args, originPath)

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // user provided command
	cmd.Dir = c.dir
	cmd.Stdin = strings.NewReader(source)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug("running compiler", "command", name, "path", originPath)

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		wrapped := zerr.With(zerr.Wrap(err, "compiler command failed"), "path", originPath)
		wrapped = zerr.With(wrapped, "exit_code", exitCode)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			wrapped = zerr.With(wrapped, "stderr", msg)
		}
		return domain.CompileResult{}, wrapped
	}

	return domain.CompileResult{Code: stdout.String()}, nil
}
