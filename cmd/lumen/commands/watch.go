package commands

import (
	"github.com/lumenlang/lumen/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Compile the project and recompile modules as they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, _ := cmd.Flags().GetInt("jobs")
			outputMode, _ := cmd.Flags().GetString("output-mode")

			return c.app.Watch(cmd.Context(), projectDir(args), app.WatchOptions{
				Jobs:       jobs,
				OutputMode: outputMode,
			})
		},
	}

	addOutputFlags(cmd)

	return cmd
}
