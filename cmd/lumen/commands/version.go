package commands

import (
	"fmt"

	"github.com/lumenlang/lumen/internal/build"
	"github.com/spf13/cobra"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version, commit, and build date",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionLine())
		},
	}
}

// versionLine is also what the root --version flag prints.
func versionLine() string {
	return fmt.Sprintf("lumen version %s (commit: %s, date: %s)", build.Version, build.Commit, build.Date)
}
