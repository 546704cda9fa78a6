package packagehub

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/google/go-github/v57/github"
	gitignore "github.com/sabhiram/go-gitignore"
	gitlab "gitlab.com/gitlab-org/api/client-go"
	"golang.org/x/oauth2"

	"github.com/expando-dev/expando/pkg/model"
)

// Hub installs packages into packagesDir (normally
// <config_dir>/../match/packages, per spec.md §6), recording every install,
// update, or remove against a Registry (C13) so the package set survives
// between runs without re-scanning the filesystem.
type Hub struct {
	packagesDir string
	registry    Registry
	githubToken string
	gitlabToken string
}

// Registry is the subset of pkg/registry's store that packagehub needs —
// kept as an interface here so this package never imports pkg/registry
// directly (registry.Store already imports nothing from packagehub).
type Registry interface {
	RecordInstall(name string, source Source, ref, checksum string) error
	RecordRemoval(name string) error
}

// New creates a Hub rooted at packagesDir. githubToken/gitlabToken may be
// empty for public sources.
func New(packagesDir string, registry Registry, githubToken, gitlabToken string) *Hub {
	return &Hub{packagesDir: packagesDir, registry: registry, githubToken: githubToken, gitlabToken: gitlabToken}
}

// Install fetches source into a staging directory, extracts it if it is an
// archive, applies the staging tree's .expansoignore, and copies the result
// into packagesDir/name. A failure is returned as a model.NonFatalErrorSet
// with File set to "package:"+name rather than as a Go error; a failed
// registry write is recorded as a warning after the files are in place.
func (h *Hub) Install(ctx context.Context, source Source, name string) model.NonFatalErrorSet {
	errs := model.NonFatalErrorSet{File: "package:" + name}

	staging, err := os.MkdirTemp("", "expando-pkg-"+name+"-")
	if err != nil {
		errs.Errorf("creating staging directory: %w", err)
		return errs
	}
	defer os.RemoveAll(staging)

	ref, checksum, err := h.fetch(ctx, source, staging)
	if err != nil {
		errs.Errorf("fetching package %q: %w", name, err)
		return errs
	}

	dest := filepath.Join(h.packagesDir, name)
	if err := os.RemoveAll(dest); err != nil {
		errs.Errorf("clearing previous install of %q: %w", name, err)
		return errs
	}
	if err := copyIgnoreFiltered(staging, dest); err != nil {
		errs.Errorf("installing package %q: %w", name, err)
		return errs
	}

	if h.registry != nil {
		if err := h.registry.RecordInstall(name, source, ref, checksum); err != nil {
			errs.Warnf("recording install of %q in registry: %w", name, err)
		}
	}
	return errs
}

// Update re-installs name from the source the caller passes; it is Install
// under another name and does not look the source up in the Registry.
func (h *Hub) Update(ctx context.Context, source Source, name string) model.NonFatalErrorSet {
	return h.Install(ctx, source, name)
}

// Remove deletes packagesDir/name and its registry record.
func (h *Hub) Remove(name string) model.NonFatalErrorSet {
	errs := model.NonFatalErrorSet{File: "package:" + name}
	if err := os.RemoveAll(filepath.Join(h.packagesDir, name)); err != nil {
		errs.Errorf("removing package %q: %w", name, err)
		return errs
	}
	if h.registry != nil {
		if err := h.registry.RecordRemoval(name); err != nil {
			errs.Warnf("removing %q from registry: %w", name, err)
		}
	}
	return errs
}

// fetch populates dir with source's content and returns a ref (commit hash
// or tag) and a content checksum suitable for the registry.
func (h *Hub) fetch(ctx context.Context, source Source, dir string) (ref, checksum string, err error) {
	switch source.Kind {
	case SourceGit:
		return h.fetchGit(ctx, source, dir)
	case SourceGitHubRelease:
		return h.fetchGitHubRelease(ctx, source, dir)
	case SourceGitLabRelease:
		return h.fetchGitLabRelease(ctx, source, dir)
	default:
		return "", "", fmt.Errorf("unknown source kind %d", source.Kind)
	}
}

func (h *Hub) fetchGit(ctx context.Context, source Source, dir string) (string, string, error) {
	opts := &git.CloneOptions{URL: source.GitURL}
	if source.GitRef != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(source.GitRef)
		opts.SingleBranch = true
	}
	repo, err := git.PlainCloneContext(ctx, dir, false, opts)
	if err != nil {
		// The ref might be a tag rather than a branch; retry without pinning
		// a reference name and then checkout the tag explicitly.
		if source.GitRef == "" {
			return "", "", fmt.Errorf("cloning %s: %w", source.GitURL, err)
		}
		repo, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{URL: source.GitURL})
		if err != nil {
			return "", "", fmt.Errorf("cloning %s: %w", source.GitURL, err)
		}
		wt, wtErr := repo.Worktree()
		if wtErr != nil {
			return "", "", fmt.Errorf("opening worktree: %w", wtErr)
		}
		if err := wt.Checkout(&git.CheckoutOptions{Branch: plumbing.NewTagReferenceName(source.GitRef)}); err != nil {
			return "", "", fmt.Errorf("checking out ref %q: %w", source.GitRef, err)
		}
	}
	head, err := repo.Head()
	if err != nil {
		return "", "", fmt.Errorf("resolving HEAD: %w", err)
	}
	if err := os.RemoveAll(filepath.Join(dir, ".git")); err != nil {
		return "", "", fmt.Errorf("removing .git metadata: %w", err)
	}
	return head.Hash().String(), "", nil
}

func (h *Hub) fetchGitHubRelease(ctx context.Context, source Source, dir string) (string, string, error) {
	client := github.NewClient(nil)
	if h.githubToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: h.githubToken})
		client = github.NewClient(oauth2.NewClient(ctx, ts))
	}

	var release *github.RepositoryRelease
	var err error
	if source.GitHubTag != "" {
		release, _, err = client.Repositories.GetReleaseByTag(ctx, source.GitHubOwner, source.GitHubRepo, source.GitHubTag)
	} else {
		release, _, err = client.Repositories.GetLatestRelease(ctx, source.GitHubOwner, source.GitHubRepo)
	}
	if err != nil {
		return "", "", fmt.Errorf("fetching release: %w", err)
	}

	var asset *github.ReleaseAsset
	for _, a := range release.Assets {
		if a.GetName() == source.GitHubAsset {
			asset = a
			break
		}
	}
	if asset == nil {
		return "", "", fmt.Errorf("asset %q not found in release %s", source.GitHubAsset, release.GetTagName())
	}

	rc, _, err := client.Repositories.DownloadReleaseAsset(ctx, source.GitHubOwner, source.GitHubRepo, asset.GetID(), http.DefaultClient)
	if err != nil {
		return "", "", fmt.Errorf("downloading asset %q: %w", asset.GetName(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", "", fmt.Errorf("reading asset %q: %w", asset.GetName(), err)
	}
	if err := extractArchive(asset.GetName(), data, dir); err != nil {
		return "", "", err
	}
	return release.GetTagName(), checksumOf(data), nil
}

func (h *Hub) fetchGitLabRelease(ctx context.Context, source Source, dir string) (string, string, error) {
	opts := []gitlab.ClientOptionFunc{}
	client, err := gitlab.NewClient(h.gitlabToken, opts...)
	if err != nil {
		return "", "", fmt.Errorf("creating gitlab client: %w", err)
	}

	release, _, err := client.Releases.GetRelease(source.GitLabProject, source.GitLabTag, &gitlab.GetReleaseOptions{}, gitlab.WithContext(ctx))
	if err != nil {
		return "", "", fmt.Errorf("fetching release: %w", err)
	}

	var assetURL string
	for _, link := range release.Assets.Links {
		if link.Name == source.GitLabAsset {
			assetURL = link.DirectAssetURL
			break
		}
	}
	if assetURL == "" {
		return "", "", fmt.Errorf("asset %q not found in release %s", source.GitLabAsset, release.TagName)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("building asset request: %w", err)
	}
	if h.gitlabToken != "" {
		req.Header.Set("PRIVATE-TOKEN", h.gitlabToken)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("downloading asset %q: %w", source.GitLabAsset, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("reading asset %q: %w", source.GitLabAsset, err)
	}
	if err := extractArchive(source.GitLabAsset, data, dir); err != nil {
		return "", "", err
	}
	return release.TagName, checksumOf(data), nil
}

// extractArchive extracts a .zip or .7z asset into dir, based on its file
// extension; any other extension is written as a single file named after
// the asset.
func extractArchive(assetName string, data []byte, dir string) error {
	switch {
	case strings.HasSuffix(assetName, ".zip"):
		return extractZip(data, dir)
	case strings.HasSuffix(assetName, ".7z"):
		return extractSevenZip(data, dir)
	default:
		return os.WriteFile(filepath.Join(dir, assetName), data, 0o644)
	}
}

func extractZip(data []byte, dir string) error {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("opening zip archive: %w", err)
	}
	for _, f := range r.File {
		if err := extractZipEntry(f, dir); err != nil {
			return err
		}
	}
	return nil
}

func extractZipEntry(f *zip.File, dir string) error {
	target := filepath.Join(dir, f.Name)
	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	defer out.Close()
	_, err = io.Copy(out, rc)
	return err
}

func extractSevenZip(data []byte, dir string) error {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("opening 7z archive: %w", err)
	}
	for _, f := range r.File {
		target := filepath.Join(dir, f.Name)
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening %s: %w", f.Name, err)
		}
		out, createErr := os.Create(target)
		if createErr != nil {
			rc.Close()
			return createErr
		}
		_, copyErr := io.Copy(out, rc)
		rc.Close()
		out.Close()
		if copyErr != nil {
			return copyErr
		}
	}
	return nil
}

// copyIgnoreFiltered copies src into dest, skipping any path matched by
// src/.expansoignore (gitignore syntax, spec.md §6).
func copyIgnoreFiltered(src, dest string) error {
	var matcher *gitignore.GitIgnore
	ignorePath := filepath.Join(src, ".expansoignore")
	if _, err := os.Stat(ignorePath); err == nil {
		matcher, _ = gitignore.CompileIgnoreFile(ignorePath)
	}

	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return os.MkdirAll(dest, 0o755)
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		target := filepath.Join(dest, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, info.Mode())
	})
}
