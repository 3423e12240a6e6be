package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"shelve/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limit      int
		runID      string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs from the journal",
		Long: `Show recent runs recorded in the journal database, or the per-file
event stream for one run when --run is given. Requires journal.enabled in
the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return fmt.Errorf("journal is disabled; enable it in %s to record runs", ctx.configPath())
			}

			store, err := journal.Open(cfg.JournalPath(), logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if runID != "" {
				return printRunEvents(cmd, store, runID, jsonOutput)
			}

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.StartedAt.Local().Format(time.DateTime),
					run.SourceDir,
					strconv.Itoa(run.Moved),
					strconv.Itoa(run.Renamed),
					strconv.Itoa(run.Skipped),
					strconv.Itoa(run.Failed),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(),
				[]string{"Run", "Started", "Source", "Moved", "Renamed", "Skipped", "Failed"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	cmd.Flags().StringVar(&runID, "run", "", "Show the event stream for one run ID")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit history as JSON")
	return cmd
}

func printRunEvents(cmd *cobra.Command, store *journal.Journal, runID string, jsonOutput bool) error {
	records, err := store.RunEvents(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), records)
	}
	if len(records) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No events recorded for run %s.\n", runID)
		return nil
	}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		detail := record.Destination
		if record.Error != "" {
			detail = record.Error
		}
		rows = append(rows, []string{
			record.Time.Local().Format(time.TimeOnly),
			string(record.Outcome),
			record.Source,
			detail,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(),
		[]string{"Time", "Outcome", "Source", "Destination"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft}))
	return nil
}
