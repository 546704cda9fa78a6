package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefault_AppliesBuiltinDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.yml")
	writeProfile(t, path, "label: Default\n")

	file, errs := LoadDefault(path)
	assert.True(t, errs.Empty())
	assert.Equal(t, "Default", file.Label())
	assert.True(t, file.IsEnabled())
	assert.Equal(t, 100, file.ClipboardThreshold())
	assert.Equal(t, "ALT+SPACE", file.SearchShortcut())
	assert.Len(t, file.WordSeparators(), len(DefaultWordSeparators))
}

func TestLoadCustom_InheritsUnsetFieldsFromDefault(t *testing.T) {
	dir := t.TempDir()
	defaultPath := filepath.Join(dir, "default.yml")
	writeProfile(t, defaultPath, "clipboard_threshold: 250\nbackend: inject\n")
	defaultFile, _ := LoadDefault(defaultPath)

	customPath := filepath.Join(dir, "custom.yml")
	writeProfile(t, customPath, "filter_title: \"^Visual Studio Code$\"\n")
	customFile, errs := LoadCustom(customPath, defaultFile.Config)
	require.True(t, errs.Empty())

	assert.Equal(t, 250, customFile.ClipboardThreshold())
	require.NotNil(t, customFile.Filters.Title)
	assert.True(t, customFile.Filters.Title.MatchString("Visual Studio Code"))
	assert.False(t, customFile.Filters.AllNil())
}

func TestLoadCustom_ChildOverridesParent(t *testing.T) {
	dir := t.TempDir()
	defaultPath := filepath.Join(dir, "default.yml")
	writeProfile(t, defaultPath, "clipboard_threshold: 250\n")
	defaultFile, _ := LoadDefault(defaultPath)

	customPath := filepath.Join(dir, "custom.yml")
	writeProfile(t, customPath, "clipboard_threshold: 10\n")
	customFile, _ := LoadCustom(customPath, defaultFile.Config)

	assert.Equal(t, 10, customFile.ClipboardThreshold())
}

func TestCompileFilters_InvalidRegexIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	writeProfile(t, path, "filter_title: \"(unclosed\"\n")

	file, errs := LoadCustom(path, ParsedConfig{})
	assert.False(t, errs.Empty())
	assert.Nil(t, file.Filters.Title)
}

func TestLoad_MatchFilePathsResolveViaStandardInclude(t *testing.T) {
	root := t.TempDir()
	writeProfile(t, filepath.Join(root, "match", "base.yml"), "matches: []\n")
	configDir := filepath.Join(root, "config")
	path := filepath.Join(configDir, "default.yml")
	writeProfile(t, path, "label: Default\n")

	file, errs := LoadDefault(path)
	assert.True(t, errs.Empty())
	assert.Contains(t, file.MatchFilePaths, filepath.Join(root, "match", "base.yml"))
}

func TestSearchShortcutOff_ClearsShortcut(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.yml")
	writeProfile(t, path, "search_shortcut: \"off\"\n")

	file, _ := LoadDefault(path)
	assert.Equal(t, "", file.SearchShortcut())
}
