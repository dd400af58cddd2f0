package commands

import (
	"github.com/funny233-github/mcpack/internal/engine/reconcile"
	"github.com/spf13/cobra"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Bring the instance in line with the manifest, keeping locked versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
				diff, err := c.app.DiffPreview(cmd.Context(), reconcile.ModePin)
				if err != nil {
					return err
				}
				printDiff(cmd.OutOrStdout(), diff)
				return nil
			}
			configOnly, _ := cmd.Flags().GetBool("config-only")
			return c.app.Sync(cmd.Context(), configOnly)
		},
	}
	cmd.Flags().Bool("config-only", false, "Update the lock without touching installed files")
	cmd.Flags().Bool("dry-run", false, "Show what would change without changing anything")
	return cmd
}

func (c *CLI) newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Re-resolve every unconstrained mod to its latest compatible version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
				diff, err := c.app.DiffPreview(cmd.Context(), reconcile.ModeLatest)
				if err != nil {
					return err
				}
				printDiff(cmd.OutOrStdout(), diff)
				return nil
			}
			configOnly, _ := cmd.Flags().GetBool("config-only")
			return c.app.Update(cmd.Context(), configOnly)
		},
	}
	cmd.Flags().Bool("config-only", false, "Update the lock without touching installed files")
	cmd.Flags().Bool("dry-run", false, "Show what would change without changing anything")
	return cmd
}

func (c *CLI) newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Materialize the instance from the committed lock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Install(cmd.Context())
		},
	}
}

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove installed files no declared mod needs anymore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Clean(cmd.Context())
		},
	}
}
