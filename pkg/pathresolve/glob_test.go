package pathresolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/expando-dev/expando/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("matches: []\n"), 0o644))
}

func TestGlob_Recursive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "match", "base.yml"))
	writeFile(t, filepath.Join(root, "match", "_skip.yml"))
	writeFile(t, filepath.Join(root, "match", "sub", "leaf.yml"))

	matches, err := Glob(filepath.Join(root, "config"), "../match/**/[!_]*.yml")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Contains(t, matches, filepath.Join(root, "match", "base.yml"))
	assert.Contains(t, matches, filepath.Join(root, "match", "sub", "leaf.yml"))
}

func TestExpandIncludes_GlobInheritanceScenario(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "match", "base.yml"))
	writeFile(t, filepath.Join(root, "match", "_skip.yml"))
	writeFile(t, filepath.Join(root, "match", "sub", "leaf.yml"))
	configDir := filepath.Join(root, "config")

	parent, err := ExpandIncludes(configDir, nil, []string{"../**/leaf.yml"}, nil, nil, true)
	require.NoError(t, err)
	require.Len(t, parent, 1)
	assert.Equal(t, filepath.Join(root, "match", "base.yml"), parent[0])

	child, err := ExpandIncludes(configDir, []string{"../match/**/*.yml"}, nil, nil, nil, false)
	require.NoError(t, err)
	assert.Len(t, child, 3)
}

func TestResolveImports_SkipsMissingFile(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "match", "base.yml")
	writeFile(t, base)
	writeFile(t, filepath.Join(root, "match", "other.yml"))

	errs := model.NonFatalErrorSet{File: base}
	paths := ResolveImports(base, []string{"other.yml", "missing.yml"}, &errs)
	require.Len(t, paths, 1)
	assert.False(t, errs.Empty())
}
