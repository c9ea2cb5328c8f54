// Package main is the ticklist CLI entry point. All command logic
// lives in internal/cli.
package main

import (
	"os"

	"github.com/dreamware/ticklist/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
