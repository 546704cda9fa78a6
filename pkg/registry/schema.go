// Package registry implements C13: a small local index of installed
// packages — independent of the zero-copy Configuration cache (C11)
// because it is mutated incrementally, one package at a time, rather than
// rebuilt wholesale (spec.md §6).
package registry

import "time"

// PackageRecord is one row of the registry: everything needed to show
// "what's installed" and to re-run an Update without re-deriving the
// original source.
type PackageRecord struct {
	Name          string
	SourceKind    int // mirrors packagehub.SourceKind; kept as a plain int so this package never imports packagehub
	SourceGitURL  string
	SourceGitRef  string
	SourceOwner   string // GitHub owner or GitLab project path
	SourceRepo    string // GitHub repo name; unused for GitLab
	SourceTag     string
	SourceAsset   string
	Ref           string // resolved commit hash or release tag
	Checksum      string
	InstalledAt   time.Time
	LastSyncedAt  time.Time
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS packages (
	name           TEXT PRIMARY KEY,
	source_kind    INTEGER NOT NULL,
	source_git_url TEXT NOT NULL DEFAULT '',
	source_git_ref TEXT NOT NULL DEFAULT '',
	source_owner   TEXT NOT NULL DEFAULT '',
	source_repo    TEXT NOT NULL DEFAULT '',
	source_tag     TEXT NOT NULL DEFAULT '',
	source_asset   TEXT NOT NULL DEFAULT '',
	ref            TEXT NOT NULL DEFAULT '',
	checksum       TEXT NOT NULL DEFAULT '',
	installed_at   TEXT NOT NULL,
	last_synced_at TEXT NOT NULL
);
`
