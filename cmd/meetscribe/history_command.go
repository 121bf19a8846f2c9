package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"meetscribe/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent pipeline runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.HistoryDBPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if runID != "" {
				records, err := store.Outputs(cmd.Context(), runID)
				if err != nil {
					return fmt.Errorf("load run outputs: %w", err)
				}
				if len(records) == 0 {
					fmt.Fprintf(out, "No outputs recorded for run %s\n", runID)
					return nil
				}
				rows := make([][]string, 0, len(records))
				for _, record := range records {
					detail := record.Artifact
					if record.Error != "" {
						detail = record.Error
					} else if record.Reason != "" {
						detail = record.Reason
					}
					rows = append(rows, []string{record.Format, record.Status, detail})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Format", "Status", "Detail"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
				return nil
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortRunID(run.ID),
					run.MeetingID,
					run.Status,
					strconv.Itoa(run.Successful),
					strconv.Itoa(run.Failed),
					strconv.Itoa(run.Skipped),
					formatRunTime(run.StartedAt),
					formatRunDuration(run.StartedAt, run.FinishedAt),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Meeting", "Status", "OK", "Fail", "Skip", "Started", "Duration"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show")
	cmd.Flags().StringVar(&runID, "run", "", "Show output details for one run ID")
	return cmd
}

func shortRunID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func formatRunTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatRunDuration(start, finish time.Time) string {
	if start.IsZero() || finish.IsZero() || finish.Before(start) {
		return "-"
	}
	return finish.Sub(start).Round(time.Second).String()
}
