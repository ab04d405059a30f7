package main

import (
	"os"

	"github.com/zapulam/ScratchAgentic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
