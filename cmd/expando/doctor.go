package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/expando-dev/expando/pkg/config"
	"github.com/expando-dev/expando/pkg/extension"
	"github.com/expando-dev/expando/pkg/model"
	"github.com/expando-dev/expando/pkg/registry"
)

var (
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgHiRed, color.Bold)
	okColor      = color.New(color.FgHiGreen)
)

var (
	doctorS3Region    string
	doctorAzureConn   string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose a configuration or its configured backends",
}

var doctorValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the configuration and report every non-fatal problem found",
	RunE:  runDoctorValidate,
}

var doctorBackendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "Confirm configured package-mirror credentials are live",
	RunE:  runDoctorBackends,
}

func init() {
	doctorCmd.AddCommand(doctorValidateCmd)
	doctorCmd.AddCommand(doctorBackendsCmd)

	doctorBackendsCmd.Flags().StringVar(&doctorS3Region, "s3-region", "", "check the S3 mirror in this region")
	doctorBackendsCmd.Flags().StringVar(&doctorAzureConn, "azure-connection-string", "", "check the Azure Blob mirror with this connection string")
}

func runDoctorValidate(cmd *cobra.Command, args []string) error {
	eng, errs := config.Load(defaultProfilePath(), resolvedCustomDir(), extension.NewRegistry())
	_ = eng

	out := cmd.OutOrStdout()
	if len(errs) == 0 {
		okColor.Fprintln(out, "configuration loaded with no non-fatal problems")
		return nil
	}

	for _, set := range errs {
		for _, rec := range set.Records {
			sevColor := warningColor
			if rec.Severity == model.SeverityError {
				sevColor = errorColor
			}
			sevColor.Fprintf(out, "%s [%s]: %v\n", set.File, rec.Severity, rec.Err)
		}
	}
	return nil
}

func runDoctorBackends(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	if doctorS3Region == "" && doctorAzureConn == "" {
		fmt.Fprintln(out, "no backends configured to check (pass --s3-region and/or --azure-connection-string)")
		return nil
	}

	if doctorS3Region != "" {
		h := registry.CheckS3(ctx, doctorS3Region)
		printHealth(out, h)
	}
	if doctorAzureConn != "" {
		h := registry.CheckAzure(ctx, doctorAzureConn)
		printHealth(out, h)
	}
	return nil
}

func printHealth(out interface{ Write([]byte) (int, error) }, h registry.BackendHealth) {
	if h.Reached {
		okColor.Fprintf(out, "%s: reachable (%s)\n", h.Name, h.Detail)
		return
	}
	errorColor.Fprintf(out, "%s: unreachable (%s)\n", h.Name, h.Detail)
}
