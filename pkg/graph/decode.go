package graph

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/spritelang/spritec/pkg/blocks"
)

//go:embed canonical_schema.json
var canonicalSchemaJSON string

//go:embed adjacency_schema.json
var adjacencySchemaJSON string

// DecodeCanonical validates and decodes a canonical edge-list document.
func DecodeCanonical(data []byte) (*Graph, error) {
	if err := validateAgainstSchema(canonicalSchemaJSON, data); err != nil {
		return nil, err
	}

	graph := new(Graph)
	if err := json.Unmarshal(data, graph); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if err := validateStructs(graph); err != nil {
		return nil, err
	}

	for _, edge := range graph.Edges {
		if _, ok := graph.Nodes[edge.OutNodeID]; !ok {
			return nil, fmt.Errorf("%w: edge references unknown node %s", ErrInvalidDocument, edge.OutNodeID)
		}

		if _, ok := graph.Nodes[edge.InNodeID]; !ok {
			return nil, fmt.Errorf("%w: edge references unknown node %s", ErrInvalidDocument, edge.InNodeID)
		}
	}

	return graph, nil
}

// DecodeAdjacency validates and decodes a per-node adjacency document.
func DecodeAdjacency(data []byte) (*AdjacencyGraph, error) {
	if err := validateAgainstSchema(adjacencySchemaJSON, data); err != nil {
		return nil, err
	}

	adjacency := new(AdjacencyGraph)
	if err := json.Unmarshal(data, adjacency); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	for id, node := range adjacency.Nodes {
		if err := validate.Struct(node); err != nil {
			return nil, fmt.Errorf("%w: node %s: %w", ErrInvalidDocument, id, err)
		}
	}

	return adjacency, nil
}

// Decode sniffs the wire encoding of data and returns the canonical graph,
// normalizing adjacency input with the given catalog.
func Decode(data []byte, catalog blocks.Catalog) (*Graph, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	_, hasNodes := top["nodes"]
	_, hasEdges := top["edges"]

	if hasNodes && hasEdges {
		return DecodeCanonical(data)
	}

	adjacency, err := DecodeAdjacency(data)
	if err != nil {
		return nil, err
	}

	return Normalize(adjacency, catalog)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStructs(g *Graph) error {
	for id, node := range g.Nodes {
		if err := validate.Struct(node); err != nil {
			return fmt.Errorf("%w: node %s: %w", ErrInvalidDocument, id, err)
		}
	}

	for _, edge := range g.Edges {
		if err := validate.Struct(edge); err != nil {
			return fmt.Errorf("%w: edge %+v: %w", ErrInvalidDocument, edge, err)
		}
	}

	return nil
}

func validateAgainstSchema(schema string, data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(details, "; "))
	}

	return nil
}
