// Package graph implements the two wire encodings of a block program, the
// normalizer that collapses them into one canonical edge list, the topological
// sequencer, and the control-flow resolver.
package graph

import (
	"errors"
	"fmt"
	"strings"
)

// Compilation-phase graph errors. All of them abort the whole compilation for
// an input; there is never a partial result.
var (
	// ErrInvalidDocument indicates a wire document that fails schema or
	// referential validation.
	ErrInvalidDocument = errors.New("invalid graph document")

	// ErrAmbiguousEdgeDirection indicates a wire whose direction cannot be
	// inferred from the catalog schemas of its two endpoints.
	ErrAmbiguousEdgeDirection = errors.New("ambiguous edge direction")

	// ErrCyclicGraph indicates the graph is not a DAG.
	ErrCyclicGraph = errors.New("graph is not a DAG")

	// ErrControlCycle indicates a next-chain or body chain that revisits a
	// node.
	ErrControlCycle = errors.New("control-flow chain revisits a node")
)

// DirectionError reports the two endpoints whose wire could not be oriented.
type DirectionError struct {
	NodeA string
	PortA string
	NodeB string
	PortB string
}

func (e *DirectionError) Error() string {
	return fmt.Sprintf("could not determine edge direction between %s.%s and %s.%s",
		e.NodeA, orUndefined(e.PortA), e.NodeB, orUndefined(e.PortB))
}

func (e *DirectionError) Unwrap() error {
	return ErrAmbiguousEdgeDirection
}

func orUndefined(port string) string {
	if port == "" {
		return "undefined"
	}

	return port
}

// CycleError reports the nodes left unordered by the sequencer.
type CycleError struct {
	Remaining []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: nodes %s remain unordered", ErrCyclicGraph, strings.Join(e.Remaining, ", "))
}

func (e *CycleError) Unwrap() error {
	return ErrCyclicGraph
}

// ControlCycleError reports the node a chain revisited.
type ControlCycleError struct {
	Start string
	Node  string
}

func (e *ControlCycleError) Error() string {
	return fmt.Sprintf("%v: chain from %s revisits %s", ErrControlCycle, e.Start, e.Node)
}

func (e *ControlCycleError) Unwrap() error {
	return ErrControlCycle
}

// IsInvalidDocument checks if an error indicates a malformed wire document.
func IsInvalidDocument(err error) bool {
	return errors.Is(err, ErrInvalidDocument)
}

// IsAmbiguousEdgeDirection checks if an error indicates an unorientable wire.
func IsAmbiguousEdgeDirection(err error) bool {
	return errors.Is(err, ErrAmbiguousEdgeDirection)
}

// IsCyclicGraph checks if an error indicates a cyclic graph.
func IsCyclicGraph(err error) bool {
	return errors.Is(err, ErrCyclicGraph)
}

// IsControlCycle checks if an error indicates a cyclic control chain.
func IsControlCycle(err error) bool {
	return errors.Is(err, ErrControlCycle)
}
