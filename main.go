package main

import (
	"os"

	"github.com/devdeck/devdeck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
