// Package main provides the CLI for the LeapDL Datalog toolkit.
package main

import (
	"os"

	"github.com/leapstack-labs/leapdl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
