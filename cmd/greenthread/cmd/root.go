package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "greenthread",
	Short: "cooperative green-thread scheduling demos",
	Long: `Demo programs for the greenthread runtime: N cooperative tasks
multiplexed onto a single runner under round-robin, priority or MLFQ
scheduling. Each run writes its event trace to schedule_log.csv.

The SCHED environment variable (rr|prio|priority|mlfq) overrides the
policy a demo sets explicitly.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
