package main

import (
	"os"

	"github.com/remaimber-it/imagequiz/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
