package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelve/internal/config"
	"shelve/internal/preflight"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "clean [dir]",
		Short: "Remove empty directories beneath a root",
		Long: `Remove empty directories beneath the given root, collapsing nested
empty trees bottom-up. The root itself is always preserved.`,
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
			removed, err := eng.CleanEmptyDirs(cmd.Context(), root)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), removed)
			}
			if len(removed) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No empty directories found.")
				return nil
			}
			for _, dir := range removed {
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", dir)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d empty directories under %s\n", len(removed), root)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit removed directories as JSON")
	return cmd
}
