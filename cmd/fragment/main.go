package main

import (
	"os"

	"github.com/msto63/fragment/cmd/fragment/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
