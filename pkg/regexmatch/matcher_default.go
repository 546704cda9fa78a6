//go:build !wasm

package regexmatch

import (
	"fmt"
	"regexp"

	"github.com/flier/gohs/hyperscan"
)

// hyperscanMatcher is the native two-stage implementation: Hyperscan
// reports which patterns have any match, stdlib regexp then extracts the
// whole match and named capture groups for each hit (mirrors the
// teacher's HyperscanMatcher).
type hyperscanMatcher struct {
	db      hyperscan.BlockDatabase
	scratch *hyperscan.Scratch
	sources []Source
	regexes []*regexp.Regexp
}

// New compiles sources into a hyperscanMatcher. A pattern that fails to
// compile under either Hyperscan or stdlib regexp is dropped, its error
// appended to the returned slice, leaving the rest of the matcher
// operational (spec.md §4.6).
func New(sources []Source) (Matcher, []error) {
	var errs []error
	var ok []Source
	var patterns []*hyperscan.Pattern
	var regexes []*regexp.Regexp

	for _, s := range sources {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			errs = append(errs, fmt.Errorf("pattern %d: %w", s.Index, err))
			continue
		}
		p := hyperscan.NewPattern(s.Pattern, hyperscan.DotAll|hyperscan.MultiLine)
		if _, err := p.Info(); err != nil {
			errs = append(errs, fmt.Errorf("pattern %d: %w", s.Index, err))
			continue
		}
		p.Id = len(ok)
		ok = append(ok, s)
		patterns = append(patterns, p)
		regexes = append(regexes, re)
	}

	if len(patterns) == 0 {
		return &hyperscanMatcher{}, errs
	}

	db, err := hyperscan.NewBlockDatabase(patterns...)
	if err != nil {
		errs = append(errs, fmt.Errorf("compiling hyperscan database: %w", err))
		return &hyperscanMatcher{}, errs
	}
	scratch, err := hyperscan.NewScratch(db)
	if err != nil {
		db.Close()
		errs = append(errs, fmt.Errorf("allocating hyperscan scratch: %w", err))
		return &hyperscanMatcher{}, errs
	}

	return &hyperscanMatcher{db: db, scratch: scratch, sources: ok, regexes: regexes}, errs
}

func (m *hyperscanMatcher) Find(candidate string) []Detected {
	if m.db == nil {
		return nil
	}
	content := []byte(candidate)

	hit := map[int]bool{}
	onMatch := func(id uint, from, to uint64, flags uint, context interface{}) error {
		hit[int(id)] = true
		return nil
	}
	if err := m.db.Scan(content, m.scratch, onMatch, nil); err != nil {
		return nil
	}

	var out []Detected
	for idx := range hit {
		re := m.regexes[idx]
		loc := re.FindStringSubmatchIndex(candidate)
		if loc == nil || loc[0] == loc[1] {
			continue
		}
		whole := candidate[loc[0]:loc[1]]
		args := namedGroups(re, candidate, loc)
		out = append(out, Detected{Index: m.sources[idx].Index, Trigger: whole, Args: args})
	}
	return out
}

func namedGroups(re *regexp.Regexp, candidate string, loc []int) map[string]string {
	names := re.SubexpNames()
	args := map[string]string{}
	for i, name := range names {
		if name == "" || 2*i+1 >= len(loc) || loc[2*i] < 0 {
			continue
		}
		args[name] = candidate[loc[2*i]:loc[2*i+1]]
	}
	return args
}

func (m *hyperscanMatcher) Close() error {
	if m.scratch != nil {
		if err := m.scratch.Free(); err != nil {
			return err
		}
		m.scratch = nil
	}
	if m.db != nil {
		if err := m.db.Close(); err != nil {
			return err
		}
		m.db = nil
	}
	return nil
}
