package cmd

import (
	"fmt"

	"github.com/minios/greenthread/pkg/runtime"
	"github.com/spf13/cobra"
)

// sleepioCmd represents the sleepio command
var sleepioCmd = &cobra.Command{
	Use:   "sleepio",
	Short: "sleep, wait and signal rendezvous on a named resource",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Example: Sleep + I/O wait")

		// Interactive task that waits for I/O.
		runtime.Create(func() {
			fmt.Println("[IO] waiting for 'go'...")
			runtime.Wait("go")
			fmt.Println("[IO] got 'go', working...")
			for i := 0; i < 3; i++ {
				fmt.Printf("[IO] unit %d\n", i)
				runtime.Work(2)
				runtime.Yield()
			}
		}, "io_waiter", 5)

		// Sleeper that signals later.
		runtime.Create(func() {
			for i := 0; i < 3; i++ {
				fmt.Printf("[SLEEP] tick %d (sleep %dms)\n", i, sleepMS)
				runtime.Sleep(sleepMS)
			}
			fmt.Println("[SLEEP] signaling 'go'")
			runtime.Signal("go")
		}, "sleeper", 7)

		// CPU hog.
		runtime.Create(func() {
			for i := 0; i < 6; i++ {
				fmt.Printf("[CPU] spin %d\n", i)
				runtime.Work(4)
				runtime.Yield()
			}
		}, "cpu", 3)

		runtime.SetPolicy(runtime.RoundRobin)
		runtime.Run()
		fmt.Println("Done. Log:", runtime.LogPath)
		return nil
	},
}

var sleepMS int

func init() {
	rootCmd.AddCommand(sleepioCmd)

	sleepioCmd.Flags().IntVarP(&sleepMS, "sleep", "s", 200,
		"sleeper tick duration in milliseconds")
}
