package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/expando-dev/expando/pkg/model"
	"github.com/expando-dev/expando/pkg/packagehub"
	"github.com/expando-dev/expando/pkg/registry"
)

var (
	packageGitRef         string
	packageGitHubTag      string
	packageGitHubAsset    string
	packageGitLabTag      string
	packageGitLabAsset    string
	packageGitHubToken    string
	packageGitLabToken    string
)

var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Install, update, remove, and list match packages",
}

var packageInstallCmd = &cobra.Command{
	Use:   "install <git-url|owner/repo|project> <name>",
	Short: "Install a match package from a git remote or release asset",
	Args:  cobra.ExactArgs(2),
	RunE:  runPackageInstall,
}

var packageUpdateCmd = &cobra.Command{
	Use:   "update <git-url|owner/repo|project> <name>",
	Short: "Re-fetch an installed match package",
	Args:  cobra.ExactArgs(2),
	RunE:  runPackageUpdate,
}

var packageRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an installed match package",
	Args:  cobra.ExactArgs(1),
	RunE:  runPackageRemove,
}

var packageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed match packages",
	RunE:  runPackageList,
}

func init() {
	for _, c := range []*cobra.Command{packageInstallCmd, packageUpdateCmd} {
		c.Flags().StringVar(&packageGitRef, "git-ref", "", "branch or tag to clone (git sources)")
		c.Flags().StringVar(&packageGitHubTag, "github-tag", "", "release tag (github sources; empty means latest)")
		c.Flags().StringVar(&packageGitHubAsset, "github-asset", "", "release asset name (github sources)")
		c.Flags().StringVar(&packageGitLabTag, "gitlab-tag", "", "release tag (gitlab sources)")
		c.Flags().StringVar(&packageGitLabAsset, "gitlab-asset", "", "release asset name (gitlab sources)")
	}
	packageCmd.PersistentFlags().StringVar(&packageGitHubToken, "github-token", os.Getenv("EXPANDO_GITHUB_TOKEN"), "GitHub API token for private release sources")
	packageCmd.PersistentFlags().StringVar(&packageGitLabToken, "gitlab-token", os.Getenv("EXPANDO_GITLAB_TOKEN"), "GitLab API token for private release sources")

	packageCmd.AddCommand(packageInstallCmd)
	packageCmd.AddCommand(packageUpdateCmd)
	packageCmd.AddCommand(packageRemoveCmd)
	packageCmd.AddCommand(packageListCmd)
}

func packagesDir() string {
	return filepath.Join(configDir, "..", "match", "packages")
}

func registryPath() string {
	return filepath.Join(runtimeRootPath, "registry.db")
}

func openRegistry() (*registry.Store, error) {
	if err := os.MkdirAll(runtimeRootPath, 0o755); err != nil {
		return nil, fmt.Errorf("creating runtime root: %w", err)
	}
	return registry.NewSQLite(registryPath())
}

// resolveSource turns a CLI-supplied reference into a packagehub.Source.
// With --github-asset set, the reference is a GitHub owner/repo; with
// --gitlab-asset set, it is a GitLab project; otherwise it is a git remote
// URL checked out at --git-ref.
func resolveSource(ref string) packagehub.Source {
	if packageGitHubAsset != "" {
		return packagehub.GitHubRelease(ownerFromRef(ref), repoFromRef(ref), packageGitHubTag, packageGitHubAsset)
	}
	if packageGitLabAsset != "" {
		return packagehub.GitLabRelease(ref, packageGitLabTag, packageGitLabAsset)
	}
	return packagehub.Git(ref, packageGitRef)
}

func ownerFromRef(ref string) string {
	for i := 0; i < len(ref); i++ {
		if ref[i] == '/' {
			return ref[:i]
		}
	}
	return ref
}

func repoFromRef(ref string) string {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == '/' {
			return ref[i+1:]
		}
	}
	return ref
}

func runPackageInstall(cmd *cobra.Command, args []string) error {
	store, err := openRegistry()
	if err != nil {
		return err
	}
	defer store.Close()

	hub := packagehub.New(packagesDir(), store, packageGitHubToken, packageGitLabToken)
	errSet := hub.Install(context.Background(), resolveSource(args[0]), args[1])
	return reportNonFatal(cmd, errSet)
}

func runPackageUpdate(cmd *cobra.Command, args []string) error {
	store, err := openRegistry()
	if err != nil {
		return err
	}
	defer store.Close()

	hub := packagehub.New(packagesDir(), store, packageGitHubToken, packageGitLabToken)
	errSet := hub.Update(context.Background(), resolveSource(args[0]), args[1])
	return reportNonFatal(cmd, errSet)
}

func runPackageRemove(cmd *cobra.Command, args []string) error {
	store, err := openRegistry()
	if err != nil {
		return err
	}
	defer store.Close()

	hub := packagehub.New(packagesDir(), store, packageGitHubToken, packageGitLabToken)
	errSet := hub.Remove(args[0])
	return reportNonFatal(cmd, errSet)
}

func runPackageList(cmd *cobra.Command, args []string) error {
	store, err := openRegistry()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List()
	if err != nil {
		return fmt.Errorf("listing packages: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "no packages installed")
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(out, "%s\tref=%s\tinstalled=%s\n", r.Name, r.Ref, r.InstalledAt.Format("2006-01-02"))
	}
	return nil
}

func reportNonFatal(cmd *cobra.Command, errSet model.NonFatalErrorSet) error {
	if errSet.Empty() {
		return nil
	}
	out := cmd.OutOrStdout()
	for _, rec := range errSet.Records {
		fmt.Fprintf(out, "[%s] %v\n", rec.Severity, rec.Err)
	}
	for _, rec := range errSet.Records {
		if rec.Severity == model.SeverityError {
			return fmt.Errorf("%s", errSet.File)
		}
	}
	return nil
}
