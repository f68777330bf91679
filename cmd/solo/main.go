package main

import (
	"os"

	"github.com/solo-ai/solo/cmd/solo/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
