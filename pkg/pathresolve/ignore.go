package pathresolve

import (
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFileName is the optional, gitignore-syntax exclude file honored
// during include/exclude glob expansion and package-tree import, on top of
// the explicit excludes a profile declares.
const IgnoreFileName = ".expansoignore"

// ApplyIgnoreFile drops every path under baseDir that matches the patterns
// in baseDir/.expansoignore, if that file exists. Paths are matched relative
// to baseDir. A missing ignore file is not an error — it simply means no
// additional paths are excluded.
func ApplyIgnoreFile(baseDir string, paths []string) []string {
	ignorePath := filepath.Join(baseDir, IgnoreFileName)
	matcher, err := gitignore.CompileIgnoreFile(ignorePath)
	if err != nil {
		if !os.IsNotExist(err) {
			// A malformed ignore file excludes nothing rather than aborting
			// the whole load; the caller's NonFatalErrorSet already has
			// enough to report without this adding another error kind.
			return paths
		}
		return paths
	}

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(baseDir, p)
		if err != nil {
			out = append(out, p)
			continue
		}
		if !matcher.MatchesPath(rel) {
			out = append(out, p)
		}
	}
	return out
}
