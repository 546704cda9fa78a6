// Package pathresolve implements C3: resolving match-file imports to
// canonical paths and expanding profile include/exclude glob patterns
// (spec.md §4.2).
package pathresolve

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Glob expands pattern (which may contain "**" path segments, unlike
// filepath.Glob) relative to baseDir and returns matching regular files.
// A pattern's leading "../" / "./" segments are resolved directly against
// baseDir before any directory walking begins.
func Glob(baseDir, pattern string) ([]string, error) {
	dir, segs := splitLeadingDots(baseDir, filepath.ToSlash(pattern))
	return globSegments(dir, segs)
}

func splitLeadingDots(baseDir, pattern string) (string, []string) {
	segs := strings.Split(pattern, "/")
	dir := baseDir
	i := 0
	for i < len(segs) && (segs[i] == ".." || segs[i] == ".") {
		dir = filepath.Join(dir, segs[i])
		i++
	}
	return dir, segs[i:]
}

func globSegments(dir string, segs []string) ([]string, error) {
	if len(segs) == 0 {
		return nil, nil
	}
	seg, rest := segs[0], segs[1:]

	entries, err := os.ReadDir(dir)
	if err != nil {
		// A missing directory yields zero matches; it is not an error at
		// this level (the caller may be globbing an include pattern whose
		// directory doesn't exist yet).
		return nil, nil
	}

	if seg == "**" {
		var out []string
		// "**" may consume zero directories.
		more, err := globSegments(dir, rest)
		if err != nil {
			return nil, err
		}
		out = append(out, more...)
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			sub, err := globSegments(filepath.Join(dir, e.Name()), segs)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil
	}

	matchSeg := translateBracketNegation(seg)
	var out []string
	for _, e := range entries {
		matched, err := filepath.Match(matchSeg, e.Name())
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}
		full := filepath.Join(dir, e.Name())
		if len(rest) == 0 {
			if !e.IsDir() {
				out = append(out, full)
			}
			continue
		}
		if e.IsDir() {
			sub, err := globSegments(full, rest)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
	}
	return out, nil
}

// translateBracketNegation rewrites a shell-style "[!...]" negated bracket
// class into Go's "[^...]" so filepath.Match interprets it as negation
// instead of a class literally containing "!". filepath.Match only ever
// recognizes "^" for this (see its doc comment's pattern grammar); a "!"
// right after an unescaped "[" is passed through unchanged by Match, which
// silently inverts the intended meaning of patterns like "[!_]*.yml".
func translateBracketNegation(seg string) string {
	var b strings.Builder
	inClass := false
	classStart := false
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		if c == '\\' && i+1 < len(seg) {
			b.WriteByte(c)
			i++
			b.WriteByte(seg[i])
			continue
		}
		if !inClass && c == '[' {
			inClass = true
			classStart = true
			b.WriteByte(c)
			continue
		}
		if inClass && classStart {
			classStart = false
			if c == '!' {
				b.WriteByte('^')
				continue
			}
		}
		if inClass && c == ']' {
			inClass = false
		}
		b.WriteByte(c)
	}
	return b.String()
}

// DefaultIncludePattern is applied unless a profile sets
// use_standard_includes: false (spec.md §4.2).
const DefaultIncludePattern = "../match/**/[!_]*.yml"

// ExpandIncludes resolves includes/excludes/extraIncludes/extraExcludes
// (each a list of glob patterns, relative to baseDir unless absolute) into
// the final sorted, deduplicated set of match-file paths: (includes ∪
// extraIncludes) \ (excludes ∪ extraExcludes). When useStandardIncludes is
// true, DefaultIncludePattern is unioned into the include set.
func ExpandIncludes(baseDir string, includes, excludes, extraIncludes, extraExcludes []string, useStandardIncludes bool) ([]string, error) {
	includeSet := map[string]bool{}
	excludeSet := map[string]bool{}

	addAll := func(set map[string]bool, patterns []string) error {
		for _, p := range patterns {
			paths, err := resolveOnePattern(baseDir, p)
			if err != nil {
				return err
			}
			for _, path := range paths {
				set[path] = true
			}
		}
		return nil
	}

	if useStandardIncludes {
		if err := addAll(includeSet, []string{DefaultIncludePattern}); err != nil {
			return nil, err
		}
	}
	if err := addAll(includeSet, includes); err != nil {
		return nil, err
	}
	if err := addAll(includeSet, extraIncludes); err != nil {
		return nil, err
	}
	if err := addAll(excludeSet, excludes); err != nil {
		return nil, err
	}
	if err := addAll(excludeSet, extraExcludes); err != nil {
		return nil, err
	}

	var out []string
	for path := range includeSet {
		if !excludeSet[path] {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out, nil
}

func resolveOnePattern(baseDir, pattern string) ([]string, error) {
	if filepath.IsAbs(pattern) {
		if strings.Contains(pattern, "**") {
			return Glob("/", strings.TrimPrefix(pattern, "/"))
		}
		return globSegments(filepath.Dir(pattern), []string{filepath.Base(pattern)})
	}
	return Glob(baseDir, pattern)
}
