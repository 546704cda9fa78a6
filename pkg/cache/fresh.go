package cache

import (
	"os"
	"path/filepath"
	"time"

	"github.com/expando-dev/expando/pkg/pathresolve"
)

// GlobConfig is the subset of a profile's include/exclude settings needed
// to re-run §4.2's glob expansion during a freshness check, without
// needing the rest of the profile's ParsedConfig.
type GlobConfig struct {
	BaseDir             string
	Includes            []string
	Excludes            []string
	ExtraIncludes       []string
	ExtraExcludes       []string
	UseStandardIncludes bool
}

// Header is the self-describing, cheap-to-read portion of an archive: the
// full set of source paths the Snapshot was built from, enough for the
// freshness check below to run without touching Payload.
type Header struct {
	ProfilePaths     []string
	MatchFilePaths   []string
	ProfileGlobs     map[string]GlobConfig // profile source path -> its glob inputs
	ProfileMatchSets map[string][]string   // profile source path -> its archived match_file_paths
}

// IsFresh runs spec.md §4.9's freshness check against an already-validated
// Header (callers must have passed it through ReadHeader first, which
// performs step 1's magic/version validation). cacheModTime is the
// persisted archive's own mtime; configDir is the directory containing the
// profile YAML files.
func IsFresh(header Header, cacheModTime time.Time, configDir string) bool {
	allSources := append(append([]string{}, header.ProfilePaths...), header.MatchFilePaths...)

	// Step 3: any source newer than the cache file itself makes it stale.
	for _, path := range allSources {
		info, err := os.Stat(path)
		if err != nil {
			// A source that vanished is itself staleness: the archive
			// references a file that no longer exists.
			return false
		}
		if info.ModTime().After(cacheModTime) {
			return false
		}
	}

	// Step 4: a YAML file in configDir that the archive never saw at all.
	entries, err := os.ReadDir(configDir)
	if err != nil {
		return false
	}
	known := make(map[string]bool, len(allSources))
	for _, p := range allSources {
		known[p] = true
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yml" {
			continue
		}
		full := filepath.Join(configDir, e.Name())
		if !known[full] {
			return false
		}
	}

	// Step 5: each archived profile's include/exclude set, re-expanded now,
	// must still be a subset of what the archive recorded for it.
	for profilePath, glob := range header.ProfileGlobs {
		fresh, err := pathresolve.ExpandIncludes(glob.BaseDir, glob.Includes, glob.Excludes, glob.ExtraIncludes, glob.ExtraExcludes, glob.UseStandardIncludes)
		if err != nil {
			return false
		}
		fresh = pathresolve.ApplyIgnoreFile(glob.BaseDir, fresh)
		archived := make(map[string]bool, len(header.ProfileMatchSets[profilePath]))
		for _, p := range header.ProfileMatchSets[profilePath] {
			archived[p] = true
		}
		for _, p := range fresh {
			if !archived[p] {
				return false
			}
		}
	}

	return true
}

// BuildHeader assembles a Header for Write from a loaded set of profiles
// and match file paths.
func BuildHeader(profilePaths, matchFilePaths []string, profileGlobs map[string]GlobConfig, profileMatchSets map[string][]string) Header {
	return Header{
		ProfilePaths:     profilePaths,
		MatchFilePaths:   matchFilePaths,
		ProfileGlobs:     profileGlobs,
		ProfileMatchSets: profileMatchSets,
	}
}
