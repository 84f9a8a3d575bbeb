package ai

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/decred/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModelFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestModelCacheRegisterAndMetadata(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewModelCache(filepath.Join(dir, "cache"), 3, slog.Disabled)
	require.NoError(t, err)

	path := writeModelFile(t, dir, "1-model.pt", "weights")
	name, err := cache.Register(path, "")
	require.NoError(t, err)
	assert.Equal(t, "1-model.pt", name)

	md, ok := cache.Metadata("1-model.pt")
	require.True(t, ok)
	assert.Equal(t, path, md.Path)
	assert.Equal(t, int64(len("weights")), md.FileSize)
	assert.NotEmpty(t, md.FileHash)
	assert.False(t, md.IsLoaded)
	assert.Equal(t, 0, md.UseCount)
}

func TestModelCacheRegisterMissingFile(t *testing.T) {
	cache, err := NewModelCache(filepath.Join(t.TempDir(), "cache"), 3, slog.Disabled)
	require.NoError(t, err)

	_, err = cache.Register("/nonexistent/model.pt", "")
	require.Error(t, err)
}

func TestModelCacheMetadataPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")

	cache, err := NewModelCache(cacheDir, 3, slog.Disabled)
	require.NoError(t, err)

	path := writeModelFile(t, dir, "ckpt.pt", "abc")
	_, err = cache.Register(path, "flagship")
	require.NoError(t, err)
	cache.Touch("flagship")
	cache.MarkLoaded("flagship")

	reopened, err := NewModelCache(cacheDir, 3, slog.Disabled)
	require.NoError(t, err)

	md, ok := reopened.Metadata("flagship")
	require.True(t, ok)
	assert.Equal(t, 1, md.UseCount)
	assert.True(t, md.IsLoaded)
	require.NotNil(t, md.LastUsedAt)
}

func TestModelCacheEvictsLeastUsed(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewModelCache(filepath.Join(dir, "cache"), 2, slog.Disabled)
	require.NoError(t, err)

	a := writeModelFile(t, dir, "a.pt", "aaa")
	b := writeModelFile(t, dir, "b.pt", "bbb")
	c := writeModelFile(t, dir, "c.pt", "ccc")

	_, err = cache.Register(a, "")
	require.NoError(t, err)
	_, err = cache.Register(b, "")
	require.NoError(t, err)

	// a.pt is used, b.pt is not; registering past the cap evicts b.pt.
	cache.Touch("a.pt")
	_, err = cache.Register(c, "")
	require.NoError(t, err)

	_, ok := cache.Metadata("b.pt")
	assert.False(t, ok, "least-used model should have been evicted")
	_, ok = cache.Metadata("a.pt")
	assert.True(t, ok)
	_, ok = cache.Metadata("c.pt")
	assert.True(t, ok)
}

func TestModelCacheStats(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewModelCache(filepath.Join(dir, "cache"), 5, slog.Disabled)
	require.NoError(t, err)

	_, err = cache.Register(writeModelFile(t, dir, "a.pt", "1234"), "")
	require.NoError(t, err)
	_, err = cache.Register(writeModelFile(t, dir, "b.pt", "12"), "")
	require.NoError(t, err)
	cache.MarkLoaded("a.pt")

	stats := cache.Stats()
	assert.Equal(t, 2, stats.TotalModels)
	assert.Equal(t, 1, stats.LoadedModels)
	assert.Equal(t, int64(6), stats.TotalCacheSize)
	assert.Equal(t, 5, stats.MaxModels)
}

func TestModelCacheList(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewModelCache(filepath.Join(dir, "cache"), 5, slog.Disabled)
	require.NoError(t, err)

	_, err = cache.Register(writeModelFile(t, dir, "b.pt", "x"), "")
	require.NoError(t, err)
	_, err = cache.Register(writeModelFile(t, dir, "a.pt", "y"), "")
	require.NoError(t, err)

	list := cache.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a.pt", list[0].Name)
	assert.Equal(t, "b.pt", list[1].Name)
}
