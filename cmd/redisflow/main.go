// Package main is the entry point for the redisflow CLI.
//
// redisflow provisions a throwaway resource group with a set of Azure Cache
// for Redis instances, exercises keys, reboots, patches and patch schedules
// against them, and deletes the resource group on the way out.
//
// Commands: run (default), cleanup, version.
//
// For detailed usage information, run:
//
//	redisflow --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/redisflow/cmd/redisflow/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
