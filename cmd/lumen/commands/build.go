package commands

import (
	"github.com/lumenlang/lumen/internal/app"
	"github.com/spf13/cobra"
)

// addOutputFlags registers the flags shared by build and watch.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("jobs", "j", 0, "Maximum concurrent compiles (0 means one per CPU)")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, progress, or plain")
}

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [dir]",
		Short: "Compile every Lumen module in the project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, _ := cmd.Flags().GetInt("jobs")
			outputMode, _ := cmd.Flags().GetString("output-mode")

			// --ci forces plain output regardless of TTY detection.
			if ci, _ := cmd.Flags().GetBool("ci"); ci {
				outputMode = "plain"
			}

			return c.app.Build(cmd.Context(), projectDir(args), app.BuildOptions{
				Jobs:       jobs,
				OutputMode: outputMode,
			})
		},
	}

	addOutputFlags(cmd)
	cmd.Flags().Bool("ci", false, "Use plain output mode (shorthand for --output-mode=plain)")

	return cmd
}
