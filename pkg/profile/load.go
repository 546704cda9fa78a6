package profile

import (
	"os"
	"path/filepath"

	"github.com/expando-dev/expando/pkg/model"
	"github.com/expando-dev/expando/pkg/pathresolve"
	"gopkg.in/yaml.v3"
)

// File is one fully processed profile: its inherited-and-defaulted scalar
// settings, its compiled window filters, and the match-file paths its
// include/exclude patterns resolve to (spec.md §4.3).
type File struct {
	SourcePath     string
	Config         ParsedConfig
	Filters        CompiledFilters
	MatchFilePaths []string
}

// LoadDefault reads the default profile at path. Its ParsedConfig is
// defaulted directly (it has no parent to inherit from).
func LoadDefault(path string) (File, model.NonFatalErrorSet) {
	return load(path, ParsedConfig{})
}

// LoadCustom reads a custom profile at path and inherits every field it
// leaves unset from defaultConfig — the fully defaulted config of the
// default profile, never a raw, not-yet-defaulted one (spec.md §4.3: custom
// profiles inherit from the default profile, not from each other).
func LoadCustom(path string, defaultConfig ParsedConfig) (File, model.NonFatalErrorSet) {
	return load(path, defaultConfig)
}

func load(path string, parent ParsedConfig) (File, model.NonFatalErrorSet) {
	errs := model.NonFatalErrorSet{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		errs.Errorf("reading profile: %w", err)
		return File{SourcePath: path, Config: withDefaults(Inherit(parent, ParsedConfig{}))}, errs
	}

	var raw ParsedConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		errs.Errorf("parsing profile yaml: %w", err)
		return File{SourcePath: path, Config: withDefaults(Inherit(parent, ParsedConfig{}))}, errs
	}

	merged := withDefaults(Inherit(parent, raw))
	filters := compileFilters(merged, &errs)

	baseDir := filepath.Dir(path)
	paths, err := pathresolve.ExpandIncludes(
		baseDir,
		merged.Includes,
		merged.Excludes,
		merged.ExtraIncludes,
		merged.ExtraExcludes,
		*merged.UseStandardIncludes,
	)
	if err != nil {
		errs.Errorf("expanding match_file_paths: %w", err)
	}
	paths = pathresolve.ApplyIgnoreFile(baseDir, paths)

	return File{
		SourcePath:     path,
		Config:         merged,
		Filters:        filters,
		MatchFilePaths: paths,
	}, errs
}
