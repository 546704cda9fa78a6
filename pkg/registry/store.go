package registry

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/expando-dev/expando/pkg/packagehub"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Store is the registry's local index, backed by either SQLite (the
// default, CGO-free per the teacher's pkg/store build path) or Postgres
// for teams that want a shared index.
type Store struct {
	db *sql.DB
}

// NewSQLite opens (creating if necessary) a SQLite-backed registry at path.
func NewSQLite(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening registry database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// NewPostgres opens a Postgres-backed registry for teams syncing package
// state across machines. It is a separate constructor: nothing picks
// between it and NewSQLite by a configured backend kind.
func NewPostgres(connString string) (*Store, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, fmt.Errorf("opening registry database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// RecordInstall upserts name's package row, satisfying packagehub.Registry.
func (s *Store) RecordInstall(name string, source packagehub.Source, ref, checksum string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`
		INSERT INTO packages (name, source_kind, source_git_url, source_git_ref, source_owner, source_repo, source_tag, source_asset, ref, checksum, installed_at, last_synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			source_kind=excluded.source_kind, source_git_url=excluded.source_git_url, source_git_ref=excluded.source_git_ref,
			source_owner=excluded.source_owner, source_repo=excluded.source_repo, source_tag=excluded.source_tag,
			source_asset=excluded.source_asset, ref=excluded.ref, checksum=excluded.checksum, last_synced_at=excluded.last_synced_at
	`, name, int(source.Kind), source.GitURL, source.GitRef, sourceOwner(source), sourceRepo(source), sourceTag(source), sourceAsset(source), ref, checksum, now, now)
	return err
}

// RecordRemoval deletes name's package row, satisfying packagehub.Registry.
func (s *Store) RecordRemoval(name string) error {
	_, err := s.db.Exec("DELETE FROM packages WHERE name = ?", name)
	return err
}

// Get returns the installed record for name, or ok=false if not installed.
func (s *Store) Get(name string) (PackageRecord, bool, error) {
	row := s.db.QueryRow(`SELECT name, source_kind, source_git_url, source_git_ref, source_owner, source_repo, source_tag, source_asset, ref, checksum, installed_at, last_synced_at FROM packages WHERE name = ?`, name)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return PackageRecord{}, false, nil
	}
	if err != nil {
		return PackageRecord{}, false, err
	}
	return rec, true, nil
}

// List returns every installed package, ordered by name.
func (s *Store) List() ([]PackageRecord, error) {
	rows, err := s.db.Query(`SELECT name, source_kind, source_git_url, source_git_ref, source_owner, source_repo, source_tag, source_asset, ref, checksum, installed_at, last_synced_at FROM packages ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PackageRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (PackageRecord, error) {
	var rec PackageRecord
	var installedAt, syncedAt string
	err := row.Scan(&rec.Name, &rec.SourceKind, &rec.SourceGitURL, &rec.SourceGitRef, &rec.SourceOwner, &rec.SourceRepo,
		&rec.SourceTag, &rec.SourceAsset, &rec.Ref, &rec.Checksum, &installedAt, &syncedAt)
	if err != nil {
		return rec, err
	}
	rec.InstalledAt, _ = time.Parse(time.RFC3339, installedAt)
	rec.LastSyncedAt, _ = time.Parse(time.RFC3339, syncedAt)
	return rec, nil
}

func sourceOwner(s packagehub.Source) string {
	if s.Kind == packagehub.SourceGitHubRelease {
		return s.GitHubOwner
	}
	if s.Kind == packagehub.SourceGitLabRelease {
		return s.GitLabProject
	}
	return ""
}

func sourceRepo(s packagehub.Source) string {
	if s.Kind == packagehub.SourceGitHubRelease {
		return s.GitHubRepo
	}
	return ""
}

func sourceTag(s packagehub.Source) string {
	switch s.Kind {
	case packagehub.SourceGitHubRelease:
		return s.GitHubTag
	case packagehub.SourceGitLabRelease:
		return s.GitLabTag
	default:
		return ""
	}
}

func sourceAsset(s packagehub.Source) string {
	switch s.Kind {
	case packagehub.SourceGitHubRelease:
		return s.GitHubAsset
	case packagehub.SourceGitLabRelease:
		return s.GitLabAsset
	default:
		return ""
	}
}
