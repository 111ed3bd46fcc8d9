package graph

import (
	"github.com/spritelang/spritec/pkg/blocks"
)

// nextSuccessors builds the functional successor map over the sequential
// control edges (source port THEN into target port EXEC).
func (g *Graph) nextSuccessors() map[string]string {
	next := make(map[string]string)

	for _, edge := range g.Edges {
		if edge.OutPortID == blocks.PortThen && edge.InPortID == blocks.PortExec {
			next[edge.OutNodeID] = edge.InNodeID
		}
	}

	return next
}

// NextChain returns the linear next-instruction chain starting at start,
// following the successor map until no successor exists. Revisiting a node
// within one chain is a compilation error.
func (g *Graph) NextChain(start string) ([]string, error) {
	return walkChain(start, g.nextSuccessors())
}

func walkChain(start string, next map[string]string) ([]string, error) {
	var chain []string

	visited := make(map[string]bool)
	current := start

	for {
		if visited[current] {
			return nil, &ControlCycleError{Start: start, Node: current}
		}

		visited[current] = true
		chain = append(chain, current)

		successor, ok := next[current]
		if !ok {
			return chain, nil
		}

		current = successor
	}
}

// BodyChain returns the ordered node ids of the compound node's first body,
// reconstructed from its SUBSTACK or SUBSTACK_IF output edges. A compound
// node with no body edge has an empty body.
func (g *Graph) BodyChain(nodeID string) ([]string, error) {
	return g.bodyChain(nodeID, blocks.PortSubstack, blocks.PortSubstackIf)
}

// ElseBodyChain returns the ordered node ids of the compound node's else
// body.
func (g *Graph) ElseBodyChain(nodeID string) ([]string, error) {
	return g.bodyChain(nodeID, blocks.PortSubstackElse)
}

func (g *Graph) bodyChain(nodeID string, ports ...string) ([]string, error) {
	next := g.nextSuccessors()

	var body []string

	for _, edge := range g.Edges {
		if edge.OutNodeID != nodeID || !containsPort(ports, edge.OutPortID) {
			continue
		}

		chain, err := walkChain(edge.InNodeID, next)
		if err != nil {
			return nil, err
		}

		body = append(body, chain...)
	}

	return body, nil
}

func containsPort(ports []string, port string) bool {
	for _, p := range ports {
		if p == port {
			return true
		}
	}

	return false
}
