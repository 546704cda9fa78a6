package packagehub

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyIgnoreFiltered_HonorsExpansoIgnore(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, ".expansoignore"), []byte("secret.yml\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "base.yml"), []byte("matches: []\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "secret.yml"), []byte("matches: []\n"), 0o644))

	dest := filepath.Join(t.TempDir(), "out")
	require.NoError(t, copyIgnoreFiltered(src, dest))

	_, err := os.Stat(filepath.Join(dest, "base.yml"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dest, "secret.yml"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractArchive_PlainFileFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, extractArchive("notes.yml", []byte("matches: []\n"), dir))

	data, err := os.ReadFile(filepath.Join(dir, "notes.yml"))
	require.NoError(t, err)
	assert.Equal(t, "matches: []\n", string(data))
}

func TestChecksumOf_IsDeterministic(t *testing.T) {
	a := checksumOf([]byte("hello"))
	b := checksumOf([]byte("hello"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, checksumOf([]byte("world")))
}
