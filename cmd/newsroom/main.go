// Package main provides the entry point for the newsroom CLI tool.
package main

import (
	"github.com/agentstation/newsroom/cmd/newsroom/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
