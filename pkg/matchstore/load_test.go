package matchstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/expando-dev/expando/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_CircularImportCompletesOnce(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yml")
	b := filepath.Join(dir, "b.yml")
	write(t, a, "imports: [b.yml]\nmatches:\n  - trigger: \":a\"\n    replace: \"A\"\n")
	write(t, b, "imports: [a.yml]\nmatches:\n  - trigger: \":b\"\n    replace: \"B\"\n")

	store, refs, errSets := Load([]string{a})
	assert.Empty(t, errSets)
	require.Len(t, refs, 2)
	assert.Equal(t, 2, store.Len())

	collected := Collect(store, []model.MatchFileRef{refs[a]})
	assert.Len(t, collected.TriggerMatches, 2)
}

func TestLoad_MissingImportIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yml")
	write(t, a, "imports: [missing.yml]\nmatches:\n  - trigger: \":a\"\n    replace: \"A\"\n")

	store, refs, errSets := Load([]string{a})
	require.Len(t, refs, 1)
	assert.NotEmpty(t, errSets)
	assert.Equal(t, 1, store.Len())
}
