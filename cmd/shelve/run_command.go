package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shelve/internal/classify"
	"shelve/internal/config"
	"shelve/internal/engine"
	"shelve/internal/events"
	"shelve/internal/journal"
	"shelve/internal/logging"
	"shelve/internal/preflight"
	"shelve/internal/runlock"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "run [source] [dest]",
		Short: "Reorganize a directory's files into category subdirectories",
		Long: `Reorganize the direct children of a source directory into category
subdirectories under a destination root. With no arguments the configured
source directory is used; with no destination, files are organized in place.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			source, dest, err := resolveRunPaths(cfg, args)
			if err != nil {
				return err
			}

			if result := preflight.CheckSourceAccess(source); !result.Passed {
				return fmt.Errorf("source check failed: %s", result.Detail)
			}
			if result := preflight.CheckDestinationAccess(dest); !result.Passed {
				return fmt.Errorf("destination check failed: %s", result.Detail)
			}

			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			lock, err := runlock.Acquire(runlock.PathFor(cfg.Paths.LogDir, source))
			if err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			table, err := classify.NewTable(cfg.Categories)
			if err != nil {
				return err
			}

			sinks := []events.Sink{events.NewLoggerSink(logging.NewComponentLogger(logger, "events"))}
			var store *journal.Journal
			if cfg.Journal.Enabled {
				store, err = journal.Open(cfg.JournalPath(), logger)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
				sinks = append(sinks, store)
			}

			eng := engine.New(table, logger, events.Fanout(sinks...), engine.Options{
				Workers:        cfg.Run.Workers,
				SkipHidden:     cfg.Run.SkipHidden,
				PruneEmptyDirs: cfg.Run.PruneEmptyDirs,
				FreeSpaceCheck: cfg.Run.FreeSpaceCheck,
			})

			summary, runErr := eng.Run(cmd.Context(), source, dest)
			if summary != nil && store != nil {
				if err := store.RecordRun(cmd.Context(), summary); err != nil {
					logger.Warn("failed to persist run summary", logging.Error(err))
				}
			}
			if runErr != nil {
				return runErr
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			printSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run summary as JSON")
	return cmd
}

// resolveRunPaths applies the source/dest defaulting rules: positional
// arguments win, then the configured directories, and a missing destination
// means organizing in place.
func resolveRunPaths(cfg *config.Config, args []string) (string, string, error) {
	source := cfg.Paths.SourceDir
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		source = args[0]
	}
	source, err := config.ExpandPath(source)
	if err != nil {
		return "", "", err
	}

	dest := cfg.Paths.LibraryDir
	if len(args) > 1 && strings.TrimSpace(args[1]) != "" {
		dest = args[1]
	}
	if strings.TrimSpace(dest) == "" {
		dest = source
	}
	dest, err = config.ExpandPath(dest)
	if err != nil {
		return "", "", err
	}

	return source, dest, nil
}

func printSummary(cmd *cobra.Command, summary *engine.Summary) {
	rows := [][]string{
		{"Moved", strconv.Itoa(summary.Moved)},
		{"Renamed on conflict", strconv.Itoa(summary.Renamed)},
		{"Skipped duplicates", strconv.Itoa(summary.Skipped)},
		{"Failed", strconv.Itoa(summary.Failed)},
		{"Pruned directories", strconv.Itoa(len(summary.PrunedDirs))},
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(), []string{"Outcome", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))

	if len(summary.CategoriesCreated) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Created category directories: %s\n", strings.Join(titleCased(summary.CategoriesCreated), ", "))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Processed %d files from %s\n", summary.Total(), summary.SourceDir)
}
