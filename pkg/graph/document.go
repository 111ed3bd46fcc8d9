package graph

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spritelang/spritec/pkg/blocks"
)

// Node is one node of the canonical graph.
type Node struct {
	Name  string `json:"name"            validate:"required"`
	Value any    `json:"value,omitempty"`
}

// Kind returns the node's block kind.
func (n *Node) Kind() blocks.Kind {
	return blocks.Kind(n.Name)
}

// IsConstant reports whether the node is a literal-carrying constant.
func (n *Node) IsConstant() bool {
	return n.Kind().IsConstant()
}

// Edge is one canonical directed wire. The source port is always an output
// capability, the target port always an input capability.
type Edge struct {
	OutNodeID string `json:"outNodeID" validate:"required"`
	OutPortID string `json:"outPortID"`
	InNodeID  string `json:"inNodeID"  validate:"required"`
	InPortID  string `json:"inPortID"`
}

// Graph is the canonical edge-list representation all downstream stages
// consume. Order records node declaration order, which Go maps do not keep
// and the sequencer needs for deterministic tie-breaking.
type Graph struct {
	Nodes map[string]*Node
	Order []string
	Edges []*Edge
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.Nodes[id]

	return n, ok
}

// UnmarshalJSON decodes the canonical wire form, preserving node declaration
// order.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var raw struct {
		Nodes json.RawMessage `json:"nodes"`
		Edges []*Edge         `json:"edges"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	g.Nodes = make(map[string]*Node)
	g.Order = nil
	g.Edges = raw.Edges

	if g.Edges == nil {
		g.Edges = []*Edge{}
	}

	return decodeOrderedObject(raw.Nodes, func(id string, value json.RawMessage) error {
		node := new(Node)
		if err := json.Unmarshal(value, node); err != nil {
			return fmt.Errorf("node %s: %w", id, err)
		}

		g.Nodes[id] = node
		g.Order = append(g.Order, id)

		return nil
	})
}

// MarshalJSON emits the canonical wire form with nodes in declaration order.
func (g *Graph) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"nodes":{`)

	for i, id := range g.Order {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')

		node, err := json.Marshal(g.Nodes[id])
		if err != nil {
			return nil, err
		}

		buf.Write(node)
	}

	buf.WriteString(`},"edges":`)

	edges, err := json.Marshal(g.Edges)
	if err != nil {
		return nil, err
	}

	buf.Write(edges)
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// AdjacencyConnection is one side of a wire in the per-node adjacency
// encoding: a local port connected to a peer node.
type AdjacencyConnection struct {
	PortID      string `json:"portID"`
	OtherNodeID string `json:"otherNodeID" validate:"required"`
}

// AdjacencyNode is one node of the adjacency encoding with its declared
// connections.
type AdjacencyNode struct {
	NodeName string                `json:"nodeName"        validate:"required"`
	Value    any                   `json:"value,omitempty"`
	Edges    []AdjacencyConnection `json:"edges"`
}

// AdjacencyGraph is the per-node adjacency wire encoding.
type AdjacencyGraph struct {
	Nodes map[string]*AdjacencyNode
	Order []string
}

// UnmarshalJSON decodes the adjacency wire form, preserving declaration
// order.
func (a *AdjacencyGraph) UnmarshalJSON(data []byte) error {
	a.Nodes = make(map[string]*AdjacencyNode)
	a.Order = nil

	return decodeOrderedObject(data, func(id string, value json.RawMessage) error {
		node := new(AdjacencyNode)
		if err := json.Unmarshal(value, node); err != nil {
			return fmt.Errorf("node %s: %w", id, err)
		}

		a.Nodes[id] = node
		a.Order = append(a.Order, id)

		return nil
	})
}

// decodeOrderedObject walks a JSON object's members in document order.
func decodeOrderedObject(data json.RawMessage, fn func(key string, value json.RawMessage) error) error {
	if len(data) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}

		if err := fn(key, value); err != nil {
			return err
		}
	}

	_, err = dec.Token()

	return err
}
