package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <mod>",
		Short: "Declare a mod and install it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, _ := cmd.Flags().GetString("pin")
			configOnly, _ := cmd.Flags().GetBool("config-only")
			return c.app.Add(cmd.Context(), args[0], version, configOnly)
		},
	}
	cmd.Flags().StringP("pin", "p", "", "Pin the mod to an exact version instead of the latest compatible one")
	cmd.Flags().Bool("config-only", false, "Update the manifest and lock without touching installed files")
	return cmd
}

func (c *CLI) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <mod>",
		Short: "Undeclare a mod (files are removed on the next sync or clean)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Remove(cmd.Context(), args[0])
		},
	}
}
