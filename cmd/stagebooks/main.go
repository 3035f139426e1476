package main

import (
	"os"

	"github.com/stagebooks-dev/stagebooks/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
