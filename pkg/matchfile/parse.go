// Package matchfile implements C2: decoding one YAML match file into a
// model.LoadedMatchFile, per spec.md §4.1. It never resolves imports to
// paths or files — that is pkg/pathresolve's and pkg/matchstore's job.
package matchfile

import (
	"strings"

	"github.com/expando-dev/expando/pkg/model"
	"gopkg.in/yaml.v3"
)

// Parse decodes yamlBytes into a MatchFile plus the raw import strings it
// declares. Whitespace/comment-only input parses as an empty document
// (spec.md §4.1's "Empty input policy"). Per-match and per-variable problems
// are recorded in errs rather than aborting the whole file.
func Parse(yamlBytes []byte, sourcePath string) (model.LoadedMatchFile, model.NonFatalErrorSet) {
	errs := model.NonFatalErrorSet{File: sourcePath}

	if isBlank(yamlBytes) {
		return model.LoadedMatchFile{SourcePath: sourcePath}, errs
	}

	var doc yamlMatchFile
	if err := yaml.Unmarshal(yamlBytes, &doc); err != nil {
		errs.Errorf("parsing YAML: %w", err)
		return model.LoadedMatchFile{SourcePath: sourcePath}, errs
	}

	content := model.MatchFile{}
	for _, gv := range doc.GlobalVars {
		v, ok := convertVariable(gv, &errs)
		if ok {
			content.GlobalVars = append(content.GlobalVars, v)
		}
	}

	for _, ym := range doc.Matches {
		tm, rm, ok := convertMatch(ym, &errs)
		if !ok {
			continue
		}
		if tm != nil {
			content.TriggerMatches = append(content.TriggerMatches, *tm)
		}
		if rm != nil {
			content.RegexMatches = append(content.RegexMatches, *rm)
		}
	}

	return model.LoadedMatchFile{
		SourcePath:  sourcePath,
		ImportPaths: doc.Imports,
		Content:     content,
	}, errs
}

func isBlank(b []byte) bool {
	for _, line := range strings.Split(string(b), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return false
	}
	return true
}
