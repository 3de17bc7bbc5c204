package cmd

import (
	"fmt"

	"github.com/minios/greenthread/pkg/runtime"
	"github.com/spf13/cobra"
)

// priorityCmd represents the priority command
var priorityCmd = &cobra.Command{
	Use:   "priority",
	Short: "three tasks at priorities 1/5/9 under strict priority scheduling",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Example: Priority (set SCHED=prio)")

		busy := func(tag string) func() {
			return func() {
				for i := 0; i < 6; i++ {
					fmt.Printf("[%s] step %d\n", tag, i)
					runtime.Work(3)
					runtime.Yield()
				}
			}
		}
		runtime.Create(busy("low"), "low", 1)
		runtime.Create(busy("mid"), "mid", 5)
		runtime.Create(busy("high"), "high", 9)

		runtime.SetPolicy(runtime.Priority)
		runtime.Run()
		fmt.Println("Done. Log:", runtime.LogPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(priorityCmd)
}
