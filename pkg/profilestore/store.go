// Package profilestore implements C6: holding exactly one default profile
// plus any number of custom profiles, and selecting which one is active for
// a given focused window (spec.md §3's ProfileStore, dataflow step C6).
package profilestore

import (
	"os"
	"path/filepath"

	"github.com/expando-dev/expando/pkg/model"
	"github.com/expando-dev/expando/pkg/profile"
)

// Store is exactly one default profile plus a list of custom profiles, each
// with compiled filters that determine whether it applies to the currently
// focused window.
type Store struct {
	Default profile.File
	Custom  []profile.File
}

// Load reads defaultPath as the default profile, then every "*.yml" file
// directly under customDir (if it exists) as a custom profile inheriting
// from the default's config. Each custom profile whose filters are all nil
// is dropped with a warning — such a profile could never be distinguished
// from the default during selection (spec.md §3 ProfileStore invariant).
func Load(defaultPath, customDir string) (Store, []model.NonFatalErrorSet) {
	var errSets []model.NonFatalErrorSet

	def, errs := profile.LoadDefault(defaultPath)
	errSets = model.MergeErrorSets(errSets, errs)

	entries, err := os.ReadDir(customDir)
	if err != nil {
		// No custom-profile directory is not an error: a store with only a
		// default profile is valid.
		return Store{Default: def}, errSets
	}

	var custom []profile.File
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yml" {
			continue
		}
		path := filepath.Join(customDir, e.Name())
		f, errs := profile.LoadCustom(path, def.Config)
		errSets = model.MergeErrorSets(errSets, errs)

		if f.Filters.AllNil() {
			warn := model.NonFatalErrorSet{File: path}
			warn.Warnf("custom profile has no filter; it can never be selected and is dropped")
			errSets = model.MergeErrorSets(errSets, warn)
			continue
		}
		custom = append(custom, f)
	}

	// Custom-profile ordering mirrors OS directory enumeration order and is
	// deliberately left as-is rather than sorted into some canonical order
	// ("tests must not assume a particular order").
	return Store{Default: def, Custom: custom}, errSets
}

// Select returns the first custom profile whose filters match app, in
// store order, or the default profile if none match (spec.md §3).
func (s Store) Select(app profile.AppProperties) profile.File {
	for _, c := range s.Custom {
		if c.Filters.Matches(app) {
			return c
		}
	}
	return s.Default
}
