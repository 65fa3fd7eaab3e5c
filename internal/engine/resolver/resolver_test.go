package resolver_test

import (
	"os"
	"testing"
	"time"

	"github.com/lumenlang/lumen/internal/core/ports/mocks"
	"github.com/lumenlang/lumen/internal/engine/resolver"
	"github.com/lumenlang/lumen/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestResolver(t *testing.T) (*resolver.Resolver, *registry.Registry, *mocks.MockFileSystem) {
	t.Helper()
	ctrl := gomock.NewController(t)

	fsys := mocks.NewMockFileSystem(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	reg := registry.New()
	return resolver.New(reg, fsys, log, "/p", "out"), reg, fsys
}

func TestResolver_SourceImport(t *testing.T) {
	r, reg, _ := newTestResolver(t)

	id, ok := r.Resolve("/p/src/a.lum", "", resolver.Options{})

	require.True(t, ok)
	assert.Equal(t, "/p/out/src/a.mjs", id)

	rec, found := reg.BySource("/p/src/a.lum")
	require.True(t, found)
	assert.Equal(t, "/p/out/src/a.mjs", rec.OutputID.String())
}

func TestResolver_RelativeFromCompiledModule(t *testing.T) {
	r, _, fsys := newTestResolver(t)

	_, ok := r.Resolve("/p/src/a.lum", "", resolver.Options{})
	require.True(t, ok)

	// "./b" inside a's compiled module must resolve against /p/src, not
	// against the output tree the module physically lives in.
	fsys.EXPECT().Stat("/p/src/b.lum").Return(time.Now(), nil)

	id, ok := r.Resolve("./b", "/p/out/src/a.mjs", resolver.Options{})

	require.True(t, ok)
	assert.Equal(t, "/p/out/src/b.mjs", id)
}

func TestResolver_IdempotentMapping(t *testing.T) {
	r, reg, _ := newTestResolver(t)

	first, ok := r.Resolve("/p/src/a.lum", "", resolver.Options{})
	require.True(t, ok)

	second, ok := r.Resolve("/p/src/a.lum", "", resolver.Options{})
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, reg.Len())
}

func TestResolver_ExtensionlessEquivalence(t *testing.T) {
	r, _, fsys := newTestResolver(t)

	_, ok := r.Resolve("/p/src/a.lum", "", resolver.Options{})
	require.True(t, ok)

	fsys.EXPECT().Stat("/p/src/b.lum").Return(time.Now(), nil)
	bare, ok := r.Resolve("./b", "/p/out/src/a.mjs", resolver.Options{})
	require.True(t, ok)

	explicit, ok := r.Resolve("./b.lum", "/p/out/src/a.mjs", resolver.Options{})
	require.True(t, ok)

	assert.Equal(t, explicit, bare)
}

func TestResolver_DiscoveryPassDefers(t *testing.T) {
	// The filesystem mock has no expectations: a discovery pass that
	// probes the disk or registers anything fails the test.
	r, reg, _ := newTestResolver(t)

	id, ok := r.Resolve("/p/src/a.lum", "", resolver.Options{DiscoveryPass: true})

	assert.False(t, ok)
	assert.Empty(t, id)
	assert.Equal(t, 0, reg.Len())
}

func TestResolver_BareSpecifierDefers(t *testing.T) {
	r, _, fsys := newTestResolver(t)

	_, ok := r.Resolve("/p/src/a.lum", "", resolver.Options{})
	require.True(t, ok)

	fsys.EXPECT().Stat("/p/src/react.lum").Return(time.Time{}, os.ErrNotExist)

	id, ok := r.Resolve("react", "/p/out/src/a.mjs", resolver.Options{})

	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestResolver_RewritesAssetImportFromCompiledModule(t *testing.T) {
	r, _, _ := newTestResolver(t)

	_, ok := r.Resolve("/p/src/a.lum", "", resolver.Options{})
	require.True(t, ok)

	// A sibling asset import would resolve into the output directory if
	// taken literally; it has to be rewritten back into the source tree.
	id, ok := r.Resolve("./logo.svg", "/p/out/src/a.mjs", resolver.Options{})

	require.True(t, ok)
	assert.Equal(t, "/p/src/logo.svg", id)
}

func TestResolver_DefersAssetImportFromUnknownImporter(t *testing.T) {
	r, _, _ := newTestResolver(t)

	id, ok := r.Resolve("./logo.svg", "/p/site/main.mjs", resolver.Options{})

	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestResolver_SourceOutsideRootDefers(t *testing.T) {
	r, reg, _ := newTestResolver(t)

	id, ok := r.Resolve("/elsewhere/ext.lum", "", resolver.Options{})

	assert.False(t, ok)
	assert.Empty(t, id)
	assert.Equal(t, 0, reg.Len())
}

func TestResolver_RelativeToRootWithoutImporter(t *testing.T) {
	r, _, _ := newTestResolver(t)

	id, ok := r.Resolve("src/main.lum", "", resolver.Options{})

	require.True(t, ok)
	assert.Equal(t, "/p/out/src/main.mjs", id)
}

func TestResolver_ProbeMissFallsBackToRewrite(t *testing.T) {
	r, _, fsys := newTestResolver(t)

	_, ok := r.Resolve("/p/src/a.lum", "", resolver.Options{})
	require.True(t, ok)

	// "./b" with no b.lum sibling is a plain extension-less import; the
	// rewrite branch still applies because the importer is compiled.
	fsys.EXPECT().Stat("/p/src/b.lum").Return(time.Time{}, os.ErrNotExist)

	id, ok := r.Resolve("./b", "/p/out/src/a.mjs", resolver.Options{})

	require.True(t, ok)
	assert.Equal(t, "/p/src/b", id)
}
