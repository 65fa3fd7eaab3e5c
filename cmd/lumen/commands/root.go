// Package commands implements the CLI commands for the lumen build tool.
package commands

import (
	"context"
	"io"

	"github.com/lumenlang/lumen/internal/app"
	"github.com/lumenlang/lumen/internal/build"
	"github.com/spf13/cobra"
)

// Application is the surface of the application layer the commands drive.
type Application interface {
	Build(ctx context.Context, dir string, opts app.BuildOptions) error
	Watch(ctx context.Context, dir string, opts app.WatchOptions) error
	Clean(ctx context.Context, dir string) error
}

// CLI owns the cobra command tree and dispatches into the application layer.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// New assembles the command tree around the given application.
func New(a Application) *CLI {
	c := &CLI{app: a, rootCmd: newRootCmd()}

	for _, sub := range []*cobra.Command{
		c.newBuildCmd(),
		c.newWatchCmd(),
		c.newCleanCmd(),
		c.newVersionCmd(),
	} {
		c.rootCmd.AddCommand(sub)
	}

	return c
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lumen",
		Short:         "On-demand compiler for Lumen modules",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	root.SetVersionTemplate(versionLine() + "\n")
	root.InitDefaultVersionFlag()
	root.Flags().Lookup("version").Usage = "Show the version, commit, and build date"

	root.InitDefaultHelpFlag()
	root.Flags().Lookup("help").Usage = "Show help for a command"

	return root
}

// Execute runs the selected command under ctx.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs overrides os.Args for the command tree. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects the command tree's stdout and stderr. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// projectDir returns the directory argument, defaulting to the working
// directory. Configuration discovery walks up from here.
func projectDir(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return "."
}
