package inspector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/expando-dev/expando/pkg/config"
	"github.com/expando-dev/expando/pkg/extension"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadData_ListsDefaultProfileAndTriggers(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, "config")
	writeFile(t, filepath.Join(root, "match", "base.yml"),
		"global_vars:\n  - name: g\n    type: mock\n    params:\n      value: v\nmatches:\n  - trigger: \":hi\"\n    replace: \"hello\"\n")
	writeFile(t, filepath.Join(configDir, "default.yml"), "label: default\n")

	eng, _ := config.Load(filepath.Join(configDir, "default.yml"), "", extension.NewRegistry())
	m := New(eng)

	require.Len(t, m.data.profiles, 1)
	triggers := m.data.triggersFor(m.data.profiles[0])
	require.Len(t, triggers, 1)
	assert.Equal(t, ":hi", triggers[0].trigger)

	globals := m.data.globalVarsFor(m.data.profiles[0])
	require.Len(t, globals, 1)
	assert.Equal(t, "g", globals[0].name)
}

func TestModel_View_RendersWithoutPanicking(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, "config")
	writeFile(t, filepath.Join(root, "match", "base.yml"), "matches:\n  - trigger: \":hi\"\n    replace: \"hello\"\n")
	writeFile(t, filepath.Join(configDir, "default.yml"), "label: default\n")

	eng, _ := config.Load(filepath.Join(configDir, "default.yml"), "", extension.NewRegistry())
	m := New(eng)

	out := m.View()
	assert.Contains(t, out, "expando inspector")
	assert.Contains(t, out, ":hi")
}
