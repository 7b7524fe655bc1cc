// Package main is the entry point for the goldrun CLI.
package main

import (
	"os"

	"github.com/goldrun/goldrun/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
