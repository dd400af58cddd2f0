// Package commands implements the CLI commands for the mcpack tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/funny233-github/mcpack/internal/build"
	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/engine/reconcile"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for mcpack.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Add(ctx context.Context, name, version string, configOnly bool) error
	Remove(ctx context.Context, name string) error
	Update(ctx context.Context, configOnly bool) error
	Sync(ctx context.Context, configOnly bool) error
	Install(ctx context.Context) error
	Clean(ctx context.Context) error
	Search(ctx context.Context, query string) ([]domain.ModSummary, error)
	Versions(ctx context.Context, kind domain.VersionKind) ([]string, error)
	DiffPreview(ctx context.Context, mode reconcile.Mode) (domain.Diff, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "mcpack",
		Short:         "A declarative mod manager for Minecraft instances",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newUpdateCmd())
	rootCmd.AddCommand(c.newSyncCmd())
	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newSearchCmd())
	rootCmd.AddCommand(c.newVersionsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// printDiff renders a resolved diff for dry-run confirmation.
func printDiff(w io.Writer, diff domain.Diff) {
	if diff.Empty() {
		_, _ = fmt.Fprintln(w, "nothing to do")
		return
	}
	for _, e := range diff.ToInstall {
		_, _ = fmt.Fprintf(w, "  + %s %s\n", e.Key(), e.Version)
	}
	for _, u := range diff.ToUpdate {
		_, _ = fmt.Fprintf(w, "  ~ %s %s -> %s\n", u.New.Key(), u.Old.Version, u.New.Version)
	}
	for _, e := range diff.ToRemove {
		_, _ = fmt.Fprintf(w, "  - %s %s\n", e.Key(), e.Version)
	}
}
