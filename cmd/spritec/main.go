// Package main provides the spritec command line tool: compile block graphs,
// run them, or serve the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/spritelang/spritec/pkg/blocks"
)

func main() {
	cmd := &cli.Command{
		Name:                  "spritec",
		Usage:                 "Compile and run sprite block programs",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			compileCommand(),
			runCommand(),
			serveCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func logLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (debug, info, warn, error)",
		Value:   "info",
		Sources: cli.EnvVars("LOG_LEVEL"),
	}
}

func catalogFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "catalog",
		Usage:   "Path to a block catalog JSON file (built-in catalog if empty)",
		Sources: cli.EnvVars("SPRITEC_CATALOG"),
	}
}

// loadCatalog returns the built-in catalog unless path overrides it.
func loadCatalog(path string) (blocks.Catalog, error) {
	if path == "" {
		return blocks.DefaultCatalog(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer f.Close()

	catalog, err := blocks.LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}

	return catalog, nil
}
