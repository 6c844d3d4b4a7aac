package main

import (
	"os"

	"github.com/aaronsb/think-strategies/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
