package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/expando-dev/expando/pkg/config"
	"github.com/expando-dev/expando/pkg/extension"
	"github.com/expando-dev/expando/pkg/introspect"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a loopback HTTP server exposing the loaded configuration",
	Long: `Run expando as a long-lived introspection server: editor tooling and
other local clients can query the loaded profiles, look up a trigger's
match, and read any non-fatal load errors over HTTP.

The server binds to --addr and runs until SIGTERM or SIGINT.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:7965", "address to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	eng, errs := config.Load(defaultProfilePath(), resolvedCustomDir(), extension.NewRegistry())
	if len(errs) > 0 && verbose {
		for _, set := range errs {
			for _, rec := range set.Records {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s [%s]: %v\n", set.File, rec.Severity, rec.Err)
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigChan
		cancel()
	}()

	srv := introspect.New(eng)
	fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", serveAddr)
	return srv.ListenAndServe(ctx, serveAddr)
}
