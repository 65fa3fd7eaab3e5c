package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumenlang/lumen/internal/adapters/fs"
	"github.com/lumenlang/lumen/internal/app"
	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/lumenlang/lumen/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func staticProvider(components *app.Components) ComponentProvider {
	return func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}
}

// A successful command exits 0.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	application := app.New(
		mocks.NewMockConfigLoader(ctrl),
		mocks.NewMockSourceWalker(ctrl),
		fs.New(),
		mockLogger,
	)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr,
		staticProvider(&app.Components{App: application, Logger: mockLogger}))

	assert.Equal(t, 0, exitCode)
}

// A provider failure exits 1 before any command runs.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_BuildFailure verifies that a failed build exits 1 without logging
// the joined error again: the reporter already printed the failures.
func TestRun_BuildFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	root := t.TempDir()
	srcPath := filepath.Join(root, "src", "app.lum")
	require.NoError(t, os.MkdirAll(filepath.Dir(srcPath), domain.DirPerm))
	require.NoError(t, os.WriteFile(srcPath, []byte("let x = 1"), 0o600))

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(root).Return(&domain.ProjectConfig{
		Root:            root,
		OutDir:          filepath.Join(root, domain.DefaultOutDir()),
		CompilerCommand: []string{"false"},
	}, nil)

	mockWalker := mocks.NewMockSourceWalker(ctrl)
	mockWalker.EXPECT().Walk(root).Return([]string{srcPath}, nil)

	// No Error expectation: logging the build failure would fail the test.
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	application := app.New(mockLoader, mockWalker, fs.New(), mockLogger)

	exitCode := run(context.Background(), []string{"build", root}, io.Discard,
		staticProvider(&app.Components{App: application, Logger: mockLogger}),
		func(a *app.App) {
			a.WithProgressOutput(io.Discard)
		})

	assert.Equal(t, 1, exitCode)
}

// TestRun_ExecutionError verifies that run returns 1 and logs the error when
// a command fails outside the build path.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(".").Return(nil, errors.New("load failed"))

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	application := app.New(mockLoader, mocks.NewMockSourceWalker(ctrl), fs.New(), mockLogger)

	exitCode := run(context.Background(), []string{"clean"}, io.Discard,
		staticProvider(&app.Components{App: application, Logger: mockLogger}))

	assert.Equal(t, 1, exitCode)
}

// An interrupt mid-command cancels the context handed to the CLI.
func TestRun_Signal(t *testing.T) {
	ctrl := gomock.NewController(t)

	blockCh := make(chan struct{})

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).DoAndReturn(func(_ string) (*domain.ProjectConfig, error) {
		select {
		case <-blockCh:
			return nil, context.Canceled
		case <-time.After(5 * time.Second):
			return nil, errors.New("timeout in mock")
		}
	})

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	application := app.New(mockLoader, mocks.NewMockSourceWalker(ctrl), fs.New(), mockLogger)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan int)

	go func() {
		errCh <- run(ctx, []string{"build"}, io.Discard,
			staticProvider(&app.Components{App: application, Logger: mockLogger}))
	}()

	// Give run() time to park inside Build's blocked config load.
	time.Sleep(100 * time.Millisecond)

	cancel()
	close(blockCh)

	select {
	case ret := <-errCh:
		assert.NotEqual(t, 0, ret)
	case <-time.After(2 * time.Second):
		t.Fatal("TestRun_Signal timed out waiting for run() to return")
	}
}
