package main

import (
	"os"

	"github.com/bloomwell/bloom/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
