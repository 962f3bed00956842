package main

import (
	"fmt"
	"os"
	"strings"

	"trading-journal/internal/cli"
	"trading-journal/internal/config"
	"trading-journal/internal/logging"
)

// configDirFromArgs pre-scans raw arguments for the --config flag, in both
// the "--config dir" and "--config=dir" forms, so the configuration can
// load before cobra parses flags.
func configDirFromArgs(args []string) string {
	configDir := ""
	for i, arg := range args {
		switch {
		case arg == "--config" && i+1 < len(args):
			configDir = args[i+1]
		case strings.HasPrefix(arg, "--config="):
			configDir = strings.TrimPrefix(arg, "--config=")
		}
	}
	return configDir
}

func main() {
	cfg, err := config.Load(configDirFromArgs(os.Args[1:]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "journal: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger()

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "journal: %v\n", err)
		os.Exit(1)
	}
}
