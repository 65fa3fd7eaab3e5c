package reload_test

import (
	"testing"

	"github.com/lumenlang/lumen/internal/core/ports/mocks"
	"github.com/lumenlang/lumen/internal/engine/reload"
	"github.com/lumenlang/lumen/internal/registry"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestBridge(t *testing.T) (*reload.Bridge, *registry.Registry, *mocks.MockModuleGraph) {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	reg := registry.New()
	return reload.New(reg, log), reg, mocks.NewMockModuleGraph(ctrl)
}

func TestBridge_UntrackedPathUnchanged(t *testing.T) {
	b, _, graph := newTestBridge(t)
	pending := []string{"/p/out/src/other.mjs"}

	updated := b.OnSourceChanged("/p/README.md", graph, pending)

	assert.Equal(t, pending, updated)
}

func TestBridge_TrackedButNeverLoadedUnchanged(t *testing.T) {
	b, reg, graph := newTestBridge(t)
	reg.Register("/p/src/a.lum", "/p/out/src/a.mjs")

	graph.EXPECT().Lookup("/p/out/src/a.mjs").Return(false)

	updated := b.OnSourceChanged("/p/src/a.lum", graph, nil)

	assert.Empty(t, updated)
}

func TestBridge_TrackedAndLoadedInvalidates(t *testing.T) {
	b, reg, graph := newTestBridge(t)
	reg.Register("/p/src/a.lum", "/p/out/src/a.mjs")

	graph.EXPECT().Lookup("/p/out/src/a.mjs").Return(true)
	graph.EXPECT().Invalidate("/p/out/src/a.mjs")

	updated := b.OnSourceChanged("/p/src/a.lum", graph, []string{"/p/out/src/z.mjs"})

	assert.Equal(t, []string{"/p/out/src/z.mjs", "/p/out/src/a.mjs"}, updated)
}

func TestBridge_NilGraphUnchanged(t *testing.T) {
	b, reg, _ := newTestBridge(t)
	reg.Register("/p/src/a.lum", "/p/out/src/a.mjs")

	updated := b.OnSourceChanged("/p/src/a.lum", nil, nil)

	assert.Empty(t, updated)
}
