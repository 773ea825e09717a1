// Package main provides the entry point for the starseeker CLI.
package main

import (
	"os"

	"github.com/HikmetCTK/Star-Seeker-mcp/cmd/starseeker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
