package pathresolve

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/expando-dev/expando/pkg/model"
)

// ResolveImports expands the import strings declared by the match file at
// matchFilePath into canonical, existing regular-file paths. A failing
// import (missing file, canonicalization error) is skipped and recorded in
// errs; the rest of the imports still resolve (spec.md §4.1, §4.2).
func ResolveImports(matchFilePath string, imports []string, errs *model.NonFatalErrorSet) []string {
	baseDir := filepath.Dir(matchFilePath)
	var out []string
	for _, raw := range imports {
		path := raw
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		canon, err := canonicalize(path)
		if err != nil {
			errs.Errorf("import %q: %w", raw, err)
			continue
		}
		out = append(out, canon)
	}
	return out
}

// canonicalize resolves symlinks and ".." segments and verifies the result
// is an existing regular file.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolving symlinks: %w", err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("stat: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", resolved)
	}
	return resolved, nil
}
