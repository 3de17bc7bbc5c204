package cmd

import (
	"fmt"

	"github.com/minios/greenthread/pkg/runtime"
	"github.com/spf13/cobra"
)

// mlfqCmd represents the mlfq command
var mlfqCmd = &cobra.Command{
	Use:   "mlfq",
	Short: "CPU hog, interactive task and medium task under MLFQ with aging",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Example: MLFQ")

		runtime.SetPolicy(runtime.MLFQ)
		runtime.MLFQSetLevels(mlfqLevels)
		for level, q := range mlfqQuanta {
			runtime.MLFQSetQuantum(level, q)
		}
		runtime.MLFQEnableAging(mlfqAging)
		runtime.MLFQSetAgingIntervalMS(mlfqAgingMS)

		// CPU hog: charges two units a step and yields after every
		// even-numbered step, so one dispatch spends at most four units; it
		// expires its quantum and moves down only at a level whose quantum
		// is 4 or less.
		hog := runtime.Create(func() {
			for i := 0; i < 12; i++ {
				fmt.Printf("[HOG] unit %d\n", i)
				runtime.Work(2)
				if i%2 == 0 {
					runtime.Yield()
				}
			}
		}, "hog", 3)

		// Interactive: sleeping promotes it back up.
		ui := runtime.Create(func() {
			for i := 0; i < 10; i++ {
				fmt.Printf("[UI] step %d (sleep 150ms)\n", i)
				runtime.Sleep(150)
				runtime.Work(1)
				runtime.Yield()
			}
		}, "ui", 5)

		mid := runtime.Create(func() {
			for i := 0; i < 8; i++ {
				fmt.Printf("[MID] work %d\n", i)
				runtime.Work(2)
				runtime.Yield()
			}
		}, "mid", 5)

		runtime.Run()

		for _, tid := range []int{hog, ui, mid} {
			t := runtime.Default().Thread(tid)
			fmt.Printf("%-4s finished at level %d\n", t.Name(), t.Level())
		}
		fmt.Println("Done. Log:", runtime.LogPath)
		return nil
	},
}

var (
	mlfqLevels  int
	mlfqQuanta  []int
	mlfqAging   bool
	mlfqAgingMS int
)

func init() {
	rootCmd.AddCommand(mlfqCmd)

	mlfqCmd.Flags().IntVarP(&mlfqLevels, "levels", "l", 3,
		"number of feedback levels (1..8)")
	mlfqCmd.Flags().IntSliceVarP(&mlfqQuanta, "quantum", "q", []int{8, 4, 2},
		"work quantum per level, top level first")
	mlfqCmd.Flags().BoolVarP(&mlfqAging, "aging", "a", true,
		"periodically promote starved threads")
	mlfqCmd.Flags().IntVarP(&mlfqAgingMS, "aging-interval", "t", 800,
		"aging interval in milliseconds")
}
