package main

import (
	"os"

	"github.com/spineslab/spinesq/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
