package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/expando-dev/expando/pkg/extension"
	"github.com/expando-dev/expando/pkg/profile"
	"github.com/expando-dev/expando/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// Profiles resolve their match files via includes/excludes glob patterns
// relative to the profile's own directory (pkg/pathresolve), defaulting to
// "../match/**/[!_]*.yml" — so fixtures below use a configDir/matchDir
// sibling layout rather than an explicit file list.

func TestLoad_ExpandsLiteralTrigger(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, "config")
	matchPath := filepath.Join(root, "match", "base.yml")
	writeFile(t, matchPath, "matches:\n  - trigger: \":hi\"\n    replace: \"hello {{name}}\"\n    vars:\n      - name: name\n        type: mock\n        params:\n          value: world\n")

	defaultPath := filepath.Join(configDir, "default.yml")
	writeFile(t, defaultPath, "label: default\n")

	registry := extension.NewRegistry(extension.Mock{})
	eng, errs := Load(defaultPath, "", registry)
	assert.Empty(t, errs)

	res := eng.Expand(context.Background(), ":hi", profile.AppProperties{})
	require.Equal(t, render.OutcomeSuccess, res.Outcome)
	assert.Equal(t, "hello world", res.Text)
}

func TestLoad_UnknownTriggerErrors(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, "config")
	matchPath := filepath.Join(root, "match", "base.yml")
	writeFile(t, matchPath, "matches:\n  - trigger: \":hi\"\n    replace: \"hello\"\n")

	defaultPath := filepath.Join(configDir, "default.yml")
	writeFile(t, defaultPath, "label: default\n")

	eng, _ := Load(defaultPath, "", extension.NewRegistry())
	res := eng.Expand(context.Background(), ":nope", profile.AppProperties{})
	assert.Equal(t, render.OutcomeError, res.Outcome)
}

func TestLoad_CustomProfileSelectedByFilter(t *testing.T) {
	// Each profile's includes resolve relative to its own directory, so the
	// default profile (root/config/default.yml) and the custom profile
	// (root/config/custom/editor.yml) each get their own "../match" sibling.
	root := t.TempDir()
	configDir := filepath.Join(root, "config")
	writeFile(t, filepath.Join(root, "match", "base.yml"),
		"matches:\n  - trigger: \":hi\"\n    replace: \"default-hello\"\n")

	defaultPath := filepath.Join(configDir, "default.yml")
	writeFile(t, defaultPath, "label: default\n")

	customDir := filepath.Join(configDir, "custom")
	writeFile(t, filepath.Join(configDir, "match", "override.yml"),
		"matches:\n  - trigger: \":hi\"\n    replace: \"custom-hello\"\n")
	writeFile(t, filepath.Join(customDir, "editor.yml"), "filter_title: \"Editor\"\n")

	eng, _ := Load(defaultPath, customDir, extension.NewRegistry())

	res := eng.Expand(context.Background(), ":hi", profile.AppProperties{Title: "My Editor"})
	require.Equal(t, render.OutcomeSuccess, res.Outcome)
	assert.Equal(t, "custom-hello", res.Text)

	res = eng.Expand(context.Background(), ":hi", profile.AppProperties{Title: "Something Else"})
	require.Equal(t, render.OutcomeSuccess, res.Outcome)
	assert.Equal(t, "default-hello", res.Text)
}
