package main

import (
	"fmt"

	"github.com/minios/greenthread/pkg/runtime"
)

func main() {
	fmt.Println("Example: Round Robin (set SCHED=rr|prio|mlfq)")

	runtime.Create(func() {
		for i := 0; i < 5; i++ {
			fmt.Printf("[A] iteration %d\n", i)
			runtime.Work(2)
			runtime.Yield()
		}
	}, "A", 1)

	runtime.Create(func() {
		for i := 0; i < 5; i++ {
			fmt.Printf("[B] iteration %d\n", i)
			runtime.Work(2)
			runtime.Yield()
		}
	}, "B", 1)

	runtime.SetPolicy(runtime.RoundRobin)
	runtime.Run()
	fmt.Println("Done. Log:", runtime.LogPath)
}
