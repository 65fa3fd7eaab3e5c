package shell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lumenlang/lumen/internal/adapters/shell"
	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/lumenlang/lumen/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newTestCompiler(t *testing.T, command []string) *shell.Compiler {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	return shell.NewCompiler(command, t.TempDir(), log)
}

func TestCompiler_Compile_PipesSourceThroughCommand(t *testing.T) {
	compiler := newTestCompiler(t, []string{"cat"})

	result, err := compiler.Compile(context.Background(), "export const x = 1\n", "/project/src/a.lum")
	require.NoError(t, err)

	assert.Equal(t, "export const x = 1\n", result.Code)
	assert.Empty(t, result.SourceMap)
}

func TestCompiler_Compile_PassesOriginPathAsArgument(t *testing.T) {
	compiler := newTestCompiler(t, []string{"sh", "-c", `echo "origin: $0"`})

	result, err := compiler.Compile(context.Background(), "", "/project/src/a.lum")
	require.NoError(t, err)

	assert.Contains(t, result.Code, "origin: /project/src/a.lum")
}

func TestCompiler_Compile_NonZeroExit(t *testing.T) {
	compiler := newTestCompiler(t, []string{"sh", "-c", "echo 'syntax error' >&2; exit 42"})

	_, err := compiler.Compile(context.Background(), "broken", "/project/src/a.lum")

	require.Error(t, err)
	require.ErrorContains(t, err, "compiler command failed")

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr), "expected a zerr error in the chain, got %T", err)
	meta := zErr.Metadata()
	assert.Equal(t, 42, meta["exit_code"])
	assert.Equal(t, "syntax error", meta["stderr"])
	assert.Equal(t, "/project/src/a.lum", meta["path"])
}

func TestCompiler_Compile_CommandNotFound(t *testing.T) {
	compiler := newTestCompiler(t, []string{"nonexistent-compiler-xyz123"})

	_, err := compiler.Compile(context.Background(), "", "/project/src/a.lum")

	require.Error(t, err)
	require.ErrorContains(t, err, "compiler command failed")
}

func TestCompiler_Compile_EmptyCommand(t *testing.T) {
	compiler := newTestCompiler(t, nil)

	_, err := compiler.Compile(context.Background(), "", "/project/src/a.lum")

	assert.ErrorIs(t, err, domain.ErrCompilerCommandEmpty)
}

func TestCompiler_Compile_ContextCancellation(t *testing.T) {
	compiler := newTestCompiler(t, []string{"sleep", "10"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := compiler.Compile(ctx, "", "/project/src/a.lum")

	require.Error(t, err)
}
