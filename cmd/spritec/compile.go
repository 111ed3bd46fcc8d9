package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/spritelang/spritec/pkg/compiler"
	"github.com/spritelang/spritec/pkg/graph"
	"github.com/spritelang/spritec/pkg/log"
)

// compileResult is the per-file output of the compile subcommand.
type compileResult struct {
	File  string       `json:"file"`
	Graph *graph.Graph `json:"graph,omitempty"`
	Order []string     `json:"order,omitempty"`
	Error string       `json:"error,omitempty"`
}

func compileCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Aliases:   []string{"c"},
		Usage:     "Normalize and sequence graph documents without running them",
		ArgsUsage: "<graph.json> [graph.json...]",
		Flags: []cli.Flag{
			logLevelFlag(),
			catalogFlag(),
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))
			logger := log.WithModule("compile")

			catalog, err := loadCatalog(command.String("catalog"))
			if err != nil {
				return err
			}

			inputs, err := collectInputs(command.Args().Slice())
			if err != nil {
				return err
			}

			if len(inputs) == 0 {
				return fmt.Errorf("no graph documents given")
			}

			results := make([]compileResult, 0, len(inputs))
			failed := 0

			for _, input := range inputs {
				result := compileResult{File: input}

				data, err := os.ReadFile(input)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", input, err)
				}

				document, err := graph.Decode(data, catalog)
				if err == nil {
					var program *compiler.Program

					program, err = compiler.Compile(document, catalog)
					if err == nil {
						result.Graph = program.Graph
						result.Order = program.Order
					}
				}

				if err != nil {
					result.Error = err.Error()
					failed++

					logger.ErrorContext(ctx, "Compilation failed", "file", input, "error", err)
				}

				results = append(results, result)
			}

			if err := writeJSON(os.Stdout, results); err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed to compile", failed, len(inputs))
			}

			return nil
		},
	}
}

func writeJSON(w *os.File, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
