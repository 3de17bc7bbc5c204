package cmd

import (
	"fmt"

	"github.com/minios/greenthread/pkg/runtime"
	"github.com/spf13/cobra"
)

// rrCmd represents the rr command
var rrCmd = &cobra.Command{
	Use:   "rr",
	Short: "round-robin interleave of two CPU-bound tasks",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Example: Round Robin (set SCHED=rr|prio|mlfq)")

		task := func(tag string) func() {
			return func() {
				for i := 0; i < rrIterations; i++ {
					fmt.Printf("[%s] iteration %d\n", tag, i)
					runtime.Work(2)
					runtime.Yield()
				}
			}
		}
		runtime.Create(task("A"), "A", 1)
		runtime.Create(task("B"), "B", 1)

		runtime.SetPolicy(runtime.RoundRobin)
		runtime.Run()
		fmt.Println("Done. Log:", runtime.LogPath)
		return nil
	},
}

var rrIterations int

func init() {
	rootCmd.AddCommand(rrCmd)

	rrCmd.Flags().IntVarP(&rrIterations, "iterations", "n", 5,
		"iterations per task")
}
