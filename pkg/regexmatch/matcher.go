// Package regexmatch implements C8: the regex matcher used for RegexMatch
// dispatch (spec.md §4.6). The default build is two-stage — a compiled-set
// prefilter that reports which patterns have any match in a candidate
// string, backed by per-pattern compiled regexes for capture-group
// extraction; the wasm build runs each regexp2 pattern in a single pass.
package regexmatch

// Source is one regex-backed match, identified by its position in the
// profile cache's RegexMatch slice.
type Source struct {
	Index   int
	Pattern string
}

// Detected is one match the matcher found in a candidate string: which
// source fired, the substring that matched as a whole, and every named
// capture group (spec.md §4.6).
type Detected struct {
	Index   int
	Trigger string
	Args    map[string]string
}

// Matcher finds every compiled pattern that matches somewhere in a
// candidate string. New (in matcher_default.go / matcher_wasm.go) compiles
// sources, dropping any that fail with a recorded error rather than
// aborting the whole set (spec.md §4.6).
type Matcher interface {
	Find(candidate string) []Detected
	Close() error
}
