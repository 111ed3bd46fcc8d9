// Package web provides HTTP request and response types for the compiler API.
package web

import (
	"encoding/json"

	"github.com/spritelang/spritec/pkg/graph"
)

// CompileRequest represents the request body for compiling a graph document.
// The graph may use either the canonical or the adjacency encoding.
type CompileRequest struct {
	Graph json.RawMessage `json:"graph" validate:"required"`
}

// CompileResponse represents a successful compilation: the normalized graph
// and the execution order of its nodes.
type CompileResponse struct {
	Graph *graph.Graph `json:"graph"`
	Order []string     `json:"order"`
}

// RunOptions configures the sprite context for a run. All fields are optional.
type RunOptions struct {
	Seed      *uint64  `json:"seed,omitempty"`
	KeysDown  []string `json:"keys_down,omitempty"`
	MouseDown bool     `json:"mouse_down"`
	Persist   bool     `json:"persist"`
	Name      string   `json:"name,omitempty" validate:"omitempty,min=1"`
}

// RunRequest represents the request body for compiling and running a graph.
type RunRequest struct {
	Graph   json.RawMessage `json:"graph" validate:"required"`
	Options RunOptions      `json:"options"`
}

// RunResponse represents the outcome of a run.
type RunResponse struct {
	RunID   string         `json:"run_id"`
	Order   []string       `json:"order"`
	Scripts [][]string     `json:"scripts"`
	Context map[string]any `json:"context"`
}
