// Package engine runs compiled block programs and collects their result
// traces. Execution is single-threaded and synchronous: scripts run strictly
// sequentially in declaration order over one shared sprite context, and block
// evaluation never fails — degenerate operations surface as Inf or NaN inside
// the trace, never as errors.
package engine

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spritelang/spritec/pkg/blocks"
	"github.com/spritelang/spritec/pkg/compiler"
	"github.com/spritelang/spritec/pkg/otelhelper"
)

// Trace is the ordered per-script outcome lists plus the final context
// snapshot of one program run.
type Trace struct {
	RunID   string         `json:"run_id"`
	Scripts [][]string     `json:"scripts"`
	Context map[string]any `json:"context"`
}

// Engine executes compiled programs.
type Engine struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// New returns an engine logging through logger.
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{logger: logger}
}

// WithTracer enables span emission around runs and scripts.
func (e *Engine) WithTracer(tracer trace.Tracer) *Engine {
	e.tracer = tracer

	return e
}

// Run executes every script of the program against sprite. A nil sprite gets
// the documented default state. The context is owned by this run only.
func (e *Engine) Run(ctx context.Context, program *compiler.Program, sprite *blocks.Context) *Trace {
	if sprite == nil {
		sprite = blocks.NewContext()
	}

	runID := uuid.New().String()
	logger := e.logger.With("run_id", runID, "scripts", len(program.Scripts))

	if e.tracer != nil {
		var span trace.Span

		ctx, span = otelhelper.StartSpan(ctx, e.tracer, "program.run",
			attribute.String(otelhelper.RunIDKey, runID),
			attribute.Int(otelhelper.ScriptCountKey, len(program.Scripts)),
		)
		defer span.End()
	}

	logger.InfoContext(ctx, "Starting program run")

	results := make([][]string, 0, len(program.Scripts))
	for _, script := range program.Scripts {
		results = append(results, e.runScript(ctx, logger, script, sprite))
	}

	logger.InfoContext(ctx, "Completed program run")

	return &Trace{
		RunID:   runID,
		Scripts: results,
		Context: sprite.Snapshot(),
	}
}

// runScript walks one script's next-chain top to bottom.
func (e *Engine) runScript(ctx context.Context, logger *slog.Logger, script *blocks.Block, sprite *blocks.Context) []string {
	if e.tracer != nil {
		var span trace.Span

		ctx, span = otelhelper.StartSpan(ctx, e.tracer, "script.run",
			attribute.String(otelhelper.ScriptIDKey, script.ID),
			attribute.String(otelhelper.BlockKindKey, string(script.Kind)),
		)
		defer span.End()
	}

	var results []string

	for current := script; current != nil; current = current.Next {
		outcome := blocks.FormatValue(current.Execute(sprite))
		results = append(results, outcome)

		logger.DebugContext(ctx, "Executed block",
			"block_id", current.ID,
			"block_kind", current.Kind,
			"outcome", outcome,
		)
	}

	return results
}
