package model

import "fmt"

// Severity classifies a non-fatal error recorded during a load (spec.md §7).
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// ErrorRecord is one non-fatal diagnostic produced while loading a file.
type ErrorRecord struct {
	Severity Severity
	Err      error
}

func (r ErrorRecord) Error() string { return fmt.Sprintf("%s: %v", r.Severity, r.Err) }

// NonFatalErrorSet groups the ErrorRecords produced while processing one
// file, so a caller can report "3 problems in base.yml" instead of a flat
// list with no provenance.
type NonFatalErrorSet struct {
	File    string
	Records []ErrorRecord
}

func (s *NonFatalErrorSet) Warnf(format string, args ...any) {
	s.Records = append(s.Records, ErrorRecord{Severity: SeverityWarning, Err: fmt.Errorf(format, args...)})
}

func (s *NonFatalErrorSet) Errorf(format string, args ...any) {
	s.Records = append(s.Records, ErrorRecord{Severity: SeverityError, Err: fmt.Errorf(format, args...)})
}

func (s *NonFatalErrorSet) Empty() bool { return len(s.Records) == 0 }

// MergeErrorSets appends every record in add to sets, keyed by File, adding
// a fresh NonFatalErrorSet when file hasn't been seen yet.
func MergeErrorSets(sets []NonFatalErrorSet, add NonFatalErrorSet) []NonFatalErrorSet {
	if add.Empty() {
		return sets
	}
	for i := range sets {
		if sets[i].File == add.File {
			sets[i].Records = append(sets[i].Records, add.Records...)
			return sets
		}
	}
	return append(sets, add)
}
