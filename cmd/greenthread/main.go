package main

import "github.com/minios/greenthread/cmd/greenthread/cmd"

func main() {
	cmd.Execute()
}
