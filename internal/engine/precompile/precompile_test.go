package precompile_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lumenlang/lumen/internal/adapters/fs"
	"github.com/lumenlang/lumen/internal/adapters/telemetry"
	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/lumenlang/lumen/internal/core/ports"
	"github.com/lumenlang/lumen/internal/core/ports/mocks"
	"github.com/lumenlang/lumen/internal/engine/loader"
	"github.com/lumenlang/lumen/internal/engine/precompile"
	"github.com/lumenlang/lumen/internal/engine/resolver"
	"github.com/lumenlang/lumen/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestPrecompiler wires a precompiler over the real filesystem with a
// mocked compiler, so tests control compile outcomes per file.
func newTestPrecompiler(t *testing.T, root string, jobs int) (*precompile.Precompiler, *mocks.MockCompiler) {
	t.Helper()
	ctrl := gomock.NewController(t)
	compiler := mocks.NewMockCompiler(ctrl)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	fsys := fs.New()
	reg := registry.New()
	res := resolver.New(reg, fsys, log, root, domain.DefaultOutDir())
	ldr := loader.New(reg, fsys, compiler, telemetry.NewNoOpTracer(), log)

	return precompile.New(res, ldr, telemetry.NewNoOpTracer(), log, jobs), compiler
}

func writeSource(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestPrecompiler_Run_CompilesAllSources(t *testing.T) {
	root := t.TempDir()
	sources := []string{
		writeSource(t, root, "src/a.lum", "let a = 1"),
		writeSource(t, root, "src/lib/b.lum", "let b = 2"),
		writeSource(t, root, "src/lib/c.lum", "let c = 3"),
	}

	p, compiler := newTestPrecompiler(t, root, 2)
	compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, source, _ string) (domain.CompileResult, error) {
			return domain.CompileResult{Code: "// compiled\n" + source}, nil
		}).Times(3)

	require.NoError(t, p.Run(context.Background(), sources))

	for _, rel := range []string{"src/a.mjs", "src/lib/b.mjs", "src/lib/c.mjs"} {
		out := filepath.Join(root, ".lumen", "out", rel)
		content, err := os.ReadFile(out)
		require.NoError(t, err, "expected artifact %s", out)
		assert.Contains(t, string(content), "// compiled")
	}
}

func TestPrecompiler_Run_JoinsFailuresAndKeepsGoing(t *testing.T) {
	root := t.TempDir()
	sources := []string{
		writeSource(t, root, "src/a.lum", "let a = 1"),
		writeSource(t, root, "src/broken.lum", "let b ="),
		writeSource(t, root, "src/c.lum", "let c = 3"),
	}

	p, compiler := newTestPrecompiler(t, root, 1)
	compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, source, originPath string) (domain.CompileResult, error) {
			if filepath.Base(originPath) == "broken.lum" {
				return domain.CompileResult{}, errors.New("unexpected end of input")
			}
			return domain.CompileResult{Code: "// compiled\n" + source}, nil
		}).Times(3)

	err := p.Run(context.Background(), sources)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.ErrorIs(t, err, domain.ErrCompileFailed)
	assert.ErrorContains(t, err, "unexpected end of input")

	// The healthy files still compiled.
	for _, rel := range []string{"src/a.mjs", "src/c.mjs"} {
		_, statErr := os.Stat(filepath.Join(root, ".lumen", "out", rel))
		assert.NoError(t, statErr)
	}
	_, statErr := os.Stat(filepath.Join(root, ".lumen", "out", "src", "broken.mjs"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPrecompiler_Run_EmptyListing(t *testing.T) {
	p, _ := newTestPrecompiler(t, t.TempDir(), 0)

	require.NoError(t, p.Run(context.Background(), nil))
}

func TestPrecompiler_Run_SecondRunSkipsFreshArtifacts(t *testing.T) {
	root := t.TempDir()
	sources := []string{writeSource(t, root, "src/a.lum", "let a = 1")}

	p, compiler := newTestPrecompiler(t, root, 1)
	compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.CompileResult{Code: "const a = 1;"}, nil).Times(1)

	require.NoError(t, p.Run(context.Background(), sources))

	// Nothing changed on disk, so the second run stays on the warm path.
	require.NoError(t, p.Run(context.Background(), sources))
}

func TestPrecompiler_Run_EmitsPlan(t *testing.T) {
	root := t.TempDir()
	sources := []string{writeSource(t, root, "src/a.lum", "let a = 1")}

	ctrl := gomock.NewController(t)
	compiler := mocks.NewMockCompiler(ctrl)
	compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.CompileResult{Code: "const a = 1;"}, nil)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().EmitPlan(gomock.Any(), sources).Times(1)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()

	fsys := fs.New()
	reg := registry.New()
	res := resolver.New(reg, fsys, log, root, domain.DefaultOutDir())
	ldr := loader.New(reg, fsys, compiler, tracer, log)

	p := precompile.New(res, ldr, tracer, log, 1)
	require.NoError(t, p.Run(context.Background(), sources))
}
