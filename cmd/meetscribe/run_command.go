package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"meetscribe/internal/outputs"
	"meetscribe/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process a meeting recording end to end",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.buildLogger(cfg)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}

			runner, store, err := pipeline.Build(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, runErr := runner.Run(runCtx)
			out := cmd.OutOrStdout()
			if result != nil && result.Report != nil {
				fmt.Fprintf(out, "Meeting: %s\n", result.MeetingID)
				fmt.Fprintln(out, reportTable(result.Report))
				printReportSummary(out, result.Report)
			}
			return runErr
		},
	}
}

func printReportSummary(out io.Writer, report *outputs.Report) {
	status := "completed"
	switch {
	case report.Aborted:
		status = "aborted"
	case len(report.Failed) > 0 || len(report.Skipped) > 0:
		status = "completed with issues"
	}
	fmt.Fprintf(out, "Run %s: %d successful, %d failed, %d skipped (of %d)\n",
		status, len(report.Successful), len(report.Failed), len(report.Skipped), report.Total)
}
