// Package persistence provides the storage abstraction for program runs.
package persistence

import (
	"context"
	"encoding/json"
	"time"
)

// RunRecord is one stored program run: the compiled order, the per-script
// traces, and the final sprite state. Source keeps the original graph
// document so a run can be replayed later. A failed compile stores Error and
// no trace.
type RunRecord struct {
	ID        string          `json:"id"         validate:"required"`
	Name      string          `json:"name,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Source    json.RawMessage `json:"source,omitempty"`
	Order     []string        `json:"order,omitempty"`
	Scripts   [][]string      `json:"scripts,omitempty"`
	Context   map[string]any  `json:"context,omitempty"`
	Error     string          `json:"error,omitempty"`
}

type Persistence interface {
	Runs(ctx context.Context) ([]*RunRecord, error)
	SaveRun(ctx context.Context, record *RunRecord) error
	RunByID(ctx context.Context, id string) (*RunRecord, error)
	DeleteRun(ctx context.Context, id string) error
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
