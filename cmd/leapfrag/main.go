// Package main is the entry point for the leapfrag CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/leapfrag/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
