package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"

	"github.com/spritelang/spritec/pkg/blocks"
	"github.com/spritelang/spritec/pkg/compiler"
	"github.com/spritelang/spritec/pkg/engine"
	"github.com/spritelang/spritec/pkg/graph"
	"github.com/spritelang/spritec/pkg/log"
	"github.com/spritelang/spritec/pkg/otelhelper"
	"github.com/spritelang/spritec/pkg/persistence"
	filepersistence "github.com/spritelang/spritec/pkg/persistence/file"
)

// runResult is the per-file output of the run subcommand.
type runResult struct {
	File    string         `json:"file"`
	RunID   string         `json:"run_id,omitempty"`
	Order   []string       `json:"order,omitempty"`
	Scripts [][]string     `json:"scripts,omitempty"`
	Context map[string]any `json:"context,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Aliases:   []string{"r"},
		Usage:     "Compile and execute graph documents",
		ArgsUsage: "<graph.json | directory> [more...]",
		Flags: []cli.Flag{
			logLevelFlag(),
			catalogFlag(),
			&cli.StringFlag{
				Name:    "seed",
				Usage:   "Seed for random blocks (random if empty)",
				Sources: cli.EnvVars("SPRITEC_SEED"),
			},
			&cli.StringSliceFlag{
				Name:  "key",
				Usage: "Mark a key as held down (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "mouse-down",
				Usage: "Mark the mouse button as held down",
			},
			&cli.StringFlag{
				Name:    "storage",
				Usage:   "Directory to persist run records in (not persisted if empty)",
				Sources: cli.EnvVars("SPRITEC_STORAGE"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Emit OpenTelemetry spans",
				Sources: cli.EnvVars("SPRITEC_TRACING"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))
			logger := log.WithModule("run")

			catalog, err := loadCatalog(command.String("catalog"))
			if err != nil {
				return err
			}

			var seed *uint64

			if seedStr := command.String("seed"); seedStr != "" {
				parsed, err := strconv.ParseUint(seedStr, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid seed %q: %w", seedStr, err)
				}

				seed = &parsed
			}

			runner := engine.New(logger)

			if command.Bool("tracing") {
				tracer, err := otelhelper.NewTracer(ctx, "spritec")
				if err != nil {
					return fmt.Errorf("failed to initialize tracing: %w", err)
				}

				runner = runner.WithTracer(tracer)
			}

			var store persistence.Persistence
			if root := command.String("storage"); root != "" {
				store = filepersistence.NewPersistence(root)
			}

			inputs, err := collectInputs(command.Args().Slice())
			if err != nil {
				return err
			}

			if len(inputs) == 0 {
				return fmt.Errorf("no graph documents given")
			}

			results := make([]runResult, 0, len(inputs))
			failed := 0

			for _, input := range inputs {
				result := runOne(ctx, runner, store, catalog, input, seed, command.StringSlice("key"), command.Bool("mouse-down"))
				if result.Error != "" {
					failed++

					logger.ErrorContext(ctx, "Run failed", "file", input, "error", result.Error)
				}

				results = append(results, result)
			}

			if err := writeJSON(os.Stdout, results); err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed", failed, len(inputs))
			}

			return nil
		},
	}
}

// runOne compiles and executes a single document with a fresh sprite context.
func runOne(
	ctx context.Context,
	runner *engine.Engine,
	store persistence.Persistence,
	catalog blocks.Catalog,
	input string,
	seed *uint64,
	keys []string,
	mouseDown bool,
) runResult {
	result := runResult{File: input}

	data, err := os.ReadFile(input)
	if err != nil {
		result.Error = err.Error()

		return result
	}

	program, err := compileDocument(data, catalog)
	if err != nil {
		result.Error = err.Error()

		// Failed compiles are recorded too, so a batch leaves a full audit
		// trail behind.
		if store != nil {
			record := &persistence.RunRecord{
				ID:     uuid.New().String(),
				Name:   filepath.Base(input),
				Source: data,
				Error:  err.Error(),
			}
			if saveErr := store.SaveRun(ctx, record); saveErr != nil {
				result.Error = saveErr.Error()
			}
		}

		return result
	}

	sprite := blocks.NewContext()
	if seed != nil {
		sprite.Seed(*seed)
	}

	for _, key := range keys {
		sprite.PressKey(key)
	}

	sprite.MouseDown = mouseDown

	trace := runner.Run(ctx, program, sprite)

	result.RunID = trace.RunID
	result.Order = program.Order
	result.Scripts = trace.Scripts
	result.Context = trace.Context

	if store != nil {
		record := &persistence.RunRecord{
			ID:      trace.RunID,
			Name:    filepath.Base(input),
			Source:  data,
			Order:   program.Order,
			Scripts: trace.Scripts,
			Context: trace.Context,
		}

		if err := store.SaveRun(ctx, record); err != nil {
			result.Error = err.Error()
		}
	}

	return result
}

// compileDocument decodes either wire encoding and builds the program.
func compileDocument(data []byte, catalog blocks.Catalog) (*compiler.Program, error) {
	document, err := graph.Decode(data, catalog)
	if err != nil {
		return nil, err
	}

	return compiler.Compile(document, catalog)
}

// collectInputs expands directory arguments into their JSON files, sorted by
// name, and passes file arguments through.
func collectInputs(args []string) ([]string, error) {
	var inputs []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			inputs = append(inputs, arg)

			continue
		}

		matches, err := fs.Glob(os.DirFS(arg), "*.json")
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", arg, err)
		}

		for _, match := range matches {
			inputs = append(inputs, filepath.Join(arg, match))
		}
	}

	return inputs, nil
}
