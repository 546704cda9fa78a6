package registry

import (
	"path/filepath"
	"testing"

	"github.com/expando-dev/expando/pkg/packagehub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordInstall_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSQLite(filepath.Join(dir, "registry.db"))
	require.NoError(t, err)
	defer store.Close()

	src := packagehub.GitHubRelease("acme", "snippets", "v1.2.0", "bundle.zip")
	require.NoError(t, store.RecordInstall("acme-snippets", src, "v1.2.0", "deadbeef"))

	rec, ok, err := store.Get("acme-snippets")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "acme", rec.SourceOwner)
	assert.Equal(t, "snippets", rec.SourceRepo)
	assert.Equal(t, "bundle.zip", rec.SourceAsset)
	assert.Equal(t, "deadbeef", rec.Checksum)
}

func TestRecordInstall_UpsertsOnConflict(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSQLite(filepath.Join(dir, "registry.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.RecordInstall("pkg", packagehub.Git("https://example.test/a.git", "main"), "abc123", "sum1"))
	require.NoError(t, store.RecordInstall("pkg", packagehub.Git("https://example.test/a.git", "main"), "def456", "sum2"))

	rec, ok, err := store.Get("pkg")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "def456", rec.Ref)
	assert.Equal(t, "sum2", rec.Checksum)

	list, err := store.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRecordRemoval_DeletesRow(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSQLite(filepath.Join(dir, "registry.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.RecordInstall("pkg", packagehub.Git("https://example.test/a.git", ""), "abc", "sum"))
	require.NoError(t, store.RecordRemoval("pkg"))

	_, ok, err := store.Get("pkg")
	require.NoError(t, err)
	assert.False(t, ok)
}
