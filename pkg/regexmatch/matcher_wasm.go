//go:build wasm

package regexmatch

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// regexp2Matcher is the WASM-build implementation: pattern matching and
// capture extraction happen in a single pass with regexp2, since Hyperscan
// is CGO-only and unavailable in WASM (mirrors the teacher's
// RegexpMatcher).
type regexp2Matcher struct {
	sources []Source
	regexes []*regexp2.Regexp
}

// New compiles sources with regexp2, preferring RE2 mode and falling back
// to full Perl-compatible mode for patterns RE2 rejects (e.g. those using
// lookaround). A pattern that fails under both is dropped and reported.
func New(sources []Source) (Matcher, []error) {
	var errs []error
	m := &regexp2Matcher{}

	for _, s := range sources {
		re, err := regexp2.Compile(s.Pattern, regexp2.RE2|regexp2.Multiline)
		if err != nil {
			re, err = regexp2.Compile(s.Pattern, regexp2.None)
			if err != nil {
				errs = append(errs, fmt.Errorf("pattern %d: %w", s.Index, err))
				continue
			}
		}
		re.MatchTimeout = 5 * time.Second
		m.sources = append(m.sources, s)
		m.regexes = append(m.regexes, re)
	}

	return m, errs
}

func (m *regexp2Matcher) Find(candidate string) []Detected {
	var out []Detected
	for i, re := range m.regexes {
		match, err := re.FindStringMatch(candidate)
		if err != nil || match == nil {
			continue
		}
		if match.Length == 0 {
			continue
		}
		args := map[string]string{}
		for _, g := range match.Groups() {
			if g.Name == "" || g.Name == "0" || len(g.Captures) == 0 {
				continue
			}
			args[g.Name] = g.Captures[0].String()
		}
		out = append(out, Detected{Index: m.sources[i].Index, Trigger: match.String(), Args: args})
	}
	return out
}

func (m *regexp2Matcher) Close() error { return nil }
