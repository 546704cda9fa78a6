package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/expando-dev/expando/pkg/config"
	"github.com/expando-dev/expando/pkg/extension"
	"github.com/expando-dev/expando/pkg/inspector"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Browse the loaded configuration interactively",
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	eng, errs := config.Load(defaultProfilePath(), resolvedCustomDir(), extension.NewRegistry())
	if len(errs) > 0 && verbose {
		for _, set := range errs {
			for _, rec := range set.Records {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s [%s]: %v\n", set.File, rec.Severity, rec.Err)
			}
		}
	}

	model := inspector.New(eng)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
