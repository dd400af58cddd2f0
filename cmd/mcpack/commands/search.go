package commands

import (
	"fmt"

	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/spf13/cobra"
)

func (c *CLI) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the mod registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hits, err := c.app.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, hit := range hits {
				_, _ = fmt.Fprintf(out, "%-32s %10d downloads  %s\n", hit.Slug, hit.Downloads, hit.Description)
			}
			return nil
		},
	}
}

func (c *CLI) newVersionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List published runtime versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			versions, err := c.app.Versions(cmd.Context(), domain.VersionKind(kind))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, v := range versions {
				_, _ = fmt.Fprintln(out, v)
			}
			return nil
		},
	}
	cmd.Flags().StringP("kind", "k", "release", "Which versions to list: release, snapshot, or all")
	return cmd
}
