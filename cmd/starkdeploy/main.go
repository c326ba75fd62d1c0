package main

import (
	"fmt"
	"os"

	"github.com/starknet-mobile/starkdeploy/internal/cli"
	"github.com/starknet-mobile/starkdeploy/internal/config"
)

// Set with -ldflags "-X main.version=..."
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
