package profilestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/expando-dev/expando/pkg/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_SelectsMatchingCustomProfile(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "default.yml"), "label: Default\n")
	write(t, filepath.Join(dir, "custom", "vscode.yml"), "filter_exec: \"^code$\"\n")

	store, errs := Load(filepath.Join(dir, "default.yml"), filepath.Join(dir, "custom"))
	assert.Empty(t, errs)
	require.Len(t, store.Custom, 1)

	active := store.Select(profile.AppProperties{Exec: "code"})
	assert.Equal(t, store.Custom[0].SourcePath, active.SourcePath)

	fallback := store.Select(profile.AppProperties{Exec: "firefox"})
	assert.Equal(t, store.Default.SourcePath, fallback.SourcePath)
}

func TestLoad_DropsFilterlessCustomProfile(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "default.yml"), "label: Default\n")
	write(t, filepath.Join(dir, "custom", "no-filter.yml"), "label: Orphan\n")

	store, errs := Load(filepath.Join(dir, "default.yml"), filepath.Join(dir, "custom"))
	assert.NotEmpty(t, errs)
	assert.Empty(t, store.Custom)
}

func TestLoad_NoCustomDirIsValid(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "default.yml"), "label: Default\n")

	store, errs := Load(filepath.Join(dir, "default.yml"), filepath.Join(dir, "missing"))
	assert.Empty(t, errs)
	assert.Empty(t, store.Custom)
	assert.Equal(t, "Default", store.Default.Label())
}
