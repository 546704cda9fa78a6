package profile

import (
	"regexp"

	"github.com/expando-dev/expando/pkg/model"
)

// CompiledFilters holds the regexes a profile matches an active app window
// against (spec.md §4.3: filter_title/filter_class/filter_exec). A nil
// field means that dimension is unconstrained, matching any window.
type CompiledFilters struct {
	Title *regexp.Regexp
	Class *regexp.Regexp
	Exec  *regexp.Regexp
	OS    string
}

// AllNil reports whether every filter field is empty — the invariant
// spec.md §4.3/§7 forbids for a custom profile, since such a profile could
// never be distinguished from the default by AppProperties.
func (f CompiledFilters) AllNil() bool {
	return f.Title == nil && f.Class == nil && f.Exec == nil && f.OS == ""
}

// compileFilters compiles the three optional filter patterns, collecting
// invalid-regex failures into errs rather than aborting the whole profile
// load (mirrors the teacher's Filter(), which instead returns an error
// eagerly; here a malformed filter only disables matching on that one
// dimension, per spec.md §7's "non-fatal, profile excluded from its parent
// filter" guidance).
func compileFilters(c ParsedConfig, errs *model.NonFatalErrorSet) CompiledFilters {
	var out CompiledFilters
	if c.FilterTitle != nil {
		if re, err := regexp.Compile(*c.FilterTitle); err != nil {
			errs.Errorf("compiling filter_title %q: %w", *c.FilterTitle, err)
		} else {
			out.Title = re
		}
	}
	if c.FilterClass != nil {
		if re, err := regexp.Compile(*c.FilterClass); err != nil {
			errs.Errorf("compiling filter_class %q: %w", *c.FilterClass, err)
		} else {
			out.Class = re
		}
	}
	if c.FilterExec != nil {
		if re, err := regexp.Compile(*c.FilterExec); err != nil {
			errs.Errorf("compiling filter_exec %q: %w", *c.FilterExec, err)
		} else {
			out.Exec = re
		}
	}
	if c.FilterOS != nil {
		out.OS = *c.FilterOS
	}
	return out
}

// AppProperties describes the currently focused window, as reported by the
// platform-specific watcher (out of scope for this module — spec.md §5
// names this an external collaborator).
type AppProperties struct {
	Title string
	Class string
	Exec  string
	OS    string
}

// Matches reports whether every filter dimension f constrains is satisfied
// by app. An unconstrained dimension always matches.
func (f CompiledFilters) Matches(app AppProperties) bool {
	if f.Title != nil && !f.Title.MatchString(app.Title) {
		return false
	}
	if f.Class != nil && !f.Class.MatchString(app.Class) {
		return false
	}
	if f.Exec != nil && !f.Exec.MatchString(app.Exec) {
		return false
	}
	if f.OS != "" && f.OS != app.OS {
		return false
	}
	return true
}
