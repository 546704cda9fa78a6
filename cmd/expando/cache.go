package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	xpcache "github.com/expando-dev/expando/pkg/cache"
	"github.com/expando-dev/expando/pkg/config"
	"github.com/expando-dev/expando/pkg/extension"
)

var cacheClearForce bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Build or check the on-disk configuration cache",
}

var cacheBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Load the configuration and write cache.bin to the runtime root",
	RunE:  runCacheBuild,
}

var cacheCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether the existing cache.bin is still fresh",
	RunE:  runCacheCheck,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cache.bin from the runtime root",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheBuildCmd)
	cacheCmd.AddCommand(cacheCheckCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	cacheClearCmd.Flags().BoolVar(&cacheClearForce, "force", false, "skip the confirmation prompt")
}

func cachePath() string {
	return filepath.Join(runtimeRootPath, "cache.bin")
}

func runCacheBuild(cmd *cobra.Command, args []string) error {
	eng, errs := config.Load(defaultProfilePath(), resolvedCustomDir(), extension.NewRegistry())
	header, snap := eng.Archive()

	if err := os.MkdirAll(runtimeRootPath, 0o755); err != nil {
		return fmt.Errorf("creating runtime root: %w", err)
	}

	f, err := os.Create(cachePath())
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	defer f.Close()

	if err := xpcache.Write(f, header, snap); err != nil {
		return fmt.Errorf("writing cache archive: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "wrote %s (%d profiles, %d match files)\n", cachePath(), len(header.ProfilePaths), len(header.MatchFilePaths))
	for _, set := range errs {
		for _, rec := range set.Records {
			fmt.Fprintf(out, "%s [%s]: %v\n", set.File, rec.Severity, rec.Err)
		}
	}
	return nil
}

func runCacheCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := cachePath()

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(out, "no cache at %s\n", path)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening cache file: %w", err)
	}
	defer f.Close()

	header, err := xpcache.ReadHeader(f)
	if err != nil {
		fmt.Fprintf(out, "cache at %s is unreadable: %v\n", path, err)
		return nil
	}

	fresh := xpcache.IsFresh(header, info.ModTime(), configDir)
	if fresh {
		fmt.Fprintf(out, "%s is fresh\n", path)
	} else {
		fmt.Fprintf(out, "%s is stale\n", path)
	}
	return nil
}

// runCacheClear deletes cache.bin. Destructive, so it confirms on a TTY
// unless --force was passed; a non-interactive stdin (a script, a pipe)
// skips straight to requiring --force rather than blocking on a read that
// will never complete.
func runCacheClear(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := cachePath()

	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(out, "no cache at %s\n", path)
		return nil
	}

	if !cacheClearForce {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("refusing to delete %s without --force on a non-interactive stdin", path)
		}
		fmt.Fprintf(out, "delete %s? [y/N] ", path)
		reply, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if strings.ToLower(strings.TrimSpace(reply)) != "y" {
			fmt.Fprintln(out, "aborted")
			return nil
		}
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing cache file: %w", err)
	}
	fmt.Fprintf(out, "removed %s\n", path)
	return nil
}
