// Package matchstore implements C4: recursively loading match files,
// breaking import cycles, and assigning stable MatchFileRefs (spec.md §4.4).
package matchstore

import (
	"os"

	"github.com/expando-dev/expando/pkg/matchfile"
	"github.com/expando-dev/expando/pkg/model"
	"github.com/expando-dev/expando/pkg/pathresolve"
)

// Load walks topPaths and everything they (transitively) import, parsing
// each file exactly once regardless of how many times it is imported —
// breaking cycles by skipping any path already in the path->ref map when it
// is taken off the worklist (spec.md §4.4 step 1-2).
func Load(topPaths []string) (*model.MatchFileStore, map[string]model.MatchFileRef, []model.NonFatalErrorSet) {
	store := model.NewMatchFileStore()
	refs := map[string]model.MatchFileRef{}
	loaded := map[model.MatchFileRef]model.LoadedMatchFile{}
	var errSets []model.NonFatalErrorSet

	worklist := append([]string{}, topPaths...)
	for len(worklist) > 0 {
		path := worklist[0]
		worklist = worklist[1:]

		if _, seen := refs[path]; seen {
			continue
		}

		lmf, errs := loadOne(path)
		if !errs.Empty() {
			errSets = append(errSets, errs)
		}

		ref := store.Add(model.ResolvedMatchFile{SourcePath: path, Content: lmf.Content})
		refs[path] = ref
		loaded[ref] = lmf

		worklist = append(worklist, lmf.ImportPaths...)
	}

	// Now that every reachable path has a ref, rewrite each file's import
	// paths into refs, silently dropping imports that failed to load
	// (spec.md §4.4 step 3).
	for ref, lmf := range loaded {
		resolved, _ := store.Get(ref)
		for _, p := range lmf.ImportPaths {
			if r, ok := refs[p]; ok {
				resolved.Imports = append(resolved.Imports, r)
			}
		}
		store.Replace(ref, resolved)
	}

	return store, refs, errSets
}

func loadOne(path string) (model.LoadedMatchFile, model.NonFatalErrorSet) {
	data, err := os.ReadFile(path)
	if err != nil {
		errs := model.NonFatalErrorSet{File: path}
		errs.Errorf("reading file: %w", err)
		return model.LoadedMatchFile{SourcePath: path}, errs
	}

	lmf, errs := matchfile.Parse(data, path)
	resolved := pathresolve.ResolveImports(path, lmf.ImportPaths, &errs)
	lmf.ImportPaths = resolved
	return lmf, errs
}

// Collect is a thin re-export so callers only need to import matchstore for
// the whole C4 surface (spec.md §4.4's collect() query).
func Collect(store *model.MatchFileStore, roots []model.MatchFileRef) model.Collected {
	return store.Collect(roots)
}
