// Package compiler builds runnable block programs from canonical graphs and
// defines the compilation-phase error taxonomy. Every error here is detected
// before any block evaluation begins and aborts the whole compilation; there
// is no partial program.
package compiler

import (
	"errors"
	"fmt"

	"github.com/spritelang/spritec/pkg/blocks"
	"github.com/spritelang/spritec/pkg/graph"
)

var (
	// ErrMissingRequiredPort indicates a non-constant node with a required
	// input or field that no edge produces.
	ErrMissingRequiredPort = errors.New("required port has no producer")

	// ErrDuplicateInputProducer indicates an input port with more than one
	// incoming edge.
	ErrDuplicateInputProducer = errors.New("input port has multiple producers")

	// ErrFieldRequiresLiteral indicates a field wired to a non-constant
	// producer. Fields must resolve to literals at build time.
	ErrFieldRequiresLiteral = errors.New("field requires a literal value")
)

// NodeError wraps a compile error with the offending node and port ids so a
// caller can log and skip the input.
type NodeError struct {
	NodeID string
	Port   string
	Err    error
}

func (e *NodeError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("node %s port %s: %v", e.NodeID, e.Port, e.Err)
	}

	return fmt.Sprintf("node %s: %v", e.NodeID, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// IsCompileError reports whether err belongs to the compilation-phase
// taxonomy, as opposed to an execution degeneracy (which never errors) or an
// internal failure. Compilation errors mean no program was produced.
func IsCompileError(err error) bool {
	return errors.Is(err, blocks.ErrUnknownKind) ||
		errors.Is(err, graph.ErrInvalidDocument) ||
		errors.Is(err, graph.ErrAmbiguousEdgeDirection) ||
		errors.Is(err, graph.ErrCyclicGraph) ||
		errors.Is(err, graph.ErrControlCycle) ||
		errors.Is(err, ErrMissingRequiredPort) ||
		errors.Is(err, ErrDuplicateInputProducer) ||
		errors.Is(err, ErrFieldRequiresLiteral)
}
