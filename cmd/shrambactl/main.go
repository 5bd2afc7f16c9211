package main

import (
	"os"

	"github.com/erazemk/shramba/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
