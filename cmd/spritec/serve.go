package main

import (
	"context"
	"fmt"
	"strconv"

	cli "github.com/urfave/cli/v3"

	"github.com/spritelang/spritec/pkg/engine"
	"github.com/spritelang/spritec/pkg/log"
	"github.com/spritelang/spritec/pkg/otelhelper"
	filepersistence "github.com/spritelang/spritec/pkg/persistence/file"
	"github.com/spritelang/spritec/pkg/web"
)

const defaultPort = 9091

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serve the compile and run HTTP API",
		Flags: []cli.Flag{
			logLevelFlag(),
			catalogFlag(),
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "storage",
				Usage:   "Directory to persist run records in",
				Value:   "./data",
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
			logger := log.WithModule("api")

			logger.InfoContext(ctx, "Initializing Spritec API")

			catalog, err := loadCatalog(command.String("catalog"))
			if err != nil {
				return err
			}

			runner := engine.New(logger)

			if command.Bool("tracing") {
				tracer, err := otelhelper.NewTracer(ctx, "spritec-api")
				if err != nil {
					return fmt.Errorf("failed to initialize tracing: %w", err)
				}

				runner = runner.WithTracer(tracer)
			}

			store := filepersistence.NewPersistence(command.String("storage"))

			defer func() {
				if err := store.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			app := web.NewApp(catalog, runner, store)

			return app.Listen(":" + strconv.Itoa(command.Int("port")))
		},
	}
}
