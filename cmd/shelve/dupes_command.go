package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"shelve/internal/classify"
	"shelve/internal/config"
	"shelve/internal/engine"
	"shelve/internal/events"
	"shelve/internal/preflight"
)

// newMaintenanceEngine builds an engine for the read-only maintenance
// commands. No events are emitted, so the sink discards everything.
func newMaintenanceEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	table, err := classify.NewTable(cfg.Categories)
	if err != nil {
		return nil, err
	}
	return engine.New(table, logger, events.Discard, engine.Options{}), nil
}

func newDupesCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "dupes [dir]",
		Short: "Report duplicate files under a directory tree",
		Long: `Walk a directory tree recursively and report groups of files whose
contents are identical. Nothing is moved or deleted; the output only names
the duplicates so they can be reviewed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			root := cfg.Paths.SourceDir
			if len(args) > 0 {
				root = args[0]
			}
			root, err = config.ExpandPath(root)
			if err != nil {
				return err
			}
			if result := preflight.CheckSourceAccess(root); !result.Passed {
				return fmt.Errorf("directory check failed: %s", result.Detail)
			}

			eng, err := newMaintenanceEngine(cfg, logger)
			if err != nil {
				return err
			}
			groups, err := eng.FindDuplicates(cmd.Context(), root)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), groups)
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No duplicate files found.")
				return nil
			}
			rows := make([][]string, 0, len(groups))
			for _, group := range groups {
				for i, path := range group.Paths {
					hash := ""
					if i == 0 {
						hash = group.Hash[:12]
					}
					rows = append(rows, []string{hash, strconv.FormatInt(group.Size, 10), path})
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(), []string{"Hash", "Size", "Path"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
			fmt.Fprintf(cmd.OutOrStdout(), "%d duplicate groups under %s\n", len(groups), root)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit duplicate groups as JSON")
	return cmd
}
