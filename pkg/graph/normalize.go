package graph

import (
	"fmt"

	"github.com/spritelang/spritec/pkg/blocks"
)

// wireKey identifies one physical wire by the unordered pair of its
// (node, port) endpoints, so each wire is emitted exactly once even though
// both sides declare it.
type wireKey struct {
	aNode, aPort string
	bNode, bPort string
}

func newWireKey(aNode, aPort, bNode, bPort string) wireKey {
	if bNode < aNode || (bNode == aNode && bPort < aPort) {
		aNode, aPort, bNode, bPort = bNode, bPort, aNode, aPort
	}

	return wireKey{aNode: aNode, aPort: aPort, bNode: bNode, bPort: bPort}
}

// Normalize converts an adjacency document into the canonical edge list.
//
// Every declared connection is matched with the peer's reciprocal declaration
// and oriented: a Constant endpoint is always the source (its single output
// port is unnamed), otherwise the catalog schemas decide which endpoint's
// port is an output and which is an input. A wire that cannot be oriented is
// a hard validation error, never a guess.
func Normalize(adjacency *AdjacencyGraph, catalog blocks.Catalog) (*Graph, error) {
	out := &Graph{
		Nodes: make(map[string]*Node, len(adjacency.Nodes)),
		Order: make([]string, 0, len(adjacency.Nodes)),
		Edges: []*Edge{},
	}

	for _, id := range adjacency.Order {
		node := adjacency.Nodes[id]
		out.Nodes[id] = &Node{Name: node.NodeName, Value: node.Value}
		out.Order = append(out.Order, id)
	}

	seen := make(map[wireKey]bool)

	for _, id := range adjacency.Order {
		node := adjacency.Nodes[id]
		kind := blocks.Kind(node.NodeName)

		// Connections declared by unregistered kinds are dropped here;
		// the node itself is still rejected later by compile validation.
		if !catalog.Has(kind) && !kind.IsConstant() {
			continue
		}

		for _, conn := range node.Edges {
			peer, ok := adjacency.Nodes[conn.OtherNodeID]
			if !ok {
				return nil, fmt.Errorf("%w: node %s connects to unknown node %s",
					ErrInvalidDocument, id, conn.OtherNodeID)
			}

			peerPort := reciprocalPort(peer, id)

			key := newWireKey(id, conn.PortID, conn.OtherNodeID, peerPort)
			if seen[key] {
				continue
			}

			seen[key] = true

			edge, err := orientWire(catalog, id, node, conn.PortID, conn.OtherNodeID, peer, peerPort)
			if err != nil {
				return nil, err
			}

			out.Edges = append(out.Edges, edge)
		}
	}

	return out, nil
}

// reciprocalPort finds the local port the peer declares for its connection
// back to nodeID.
func reciprocalPort(peer *AdjacencyNode, nodeID string) string {
	for _, conn := range peer.Edges {
		if conn.OtherNodeID == nodeID {
			return conn.PortID
		}
	}

	return ""
}

// orientWire fixes a wire's direction from the two endpoint schemas. The
// forward reading (declaring node's port as output, peer's as input) is
// checked first and wins if both readings happen to be schema-valid; only a
// wire valid in neither direction is an error.
func orientWire(
	catalog blocks.Catalog,
	nodeID string, node *AdjacencyNode, port string,
	peerID string, peer *AdjacencyNode, peerPort string,
) (*Edge, error) {
	kind := blocks.Kind(node.NodeName)
	peerKind := blocks.Kind(peer.NodeName)

	// A Constant has exactly one implicit output port, so it is always the
	// source regardless of the listed port id.
	if kind.IsConstant() {
		return &Edge{OutNodeID: nodeID, OutPortID: "", InNodeID: peerID, InPortID: peerPort}, nil
	}

	if peerKind.IsConstant() {
		return &Edge{OutNodeID: peerID, OutPortID: "", InNodeID: nodeID, InPortID: port}, nil
	}

	schema := catalog[kind]
	peerSchema := catalog[peerKind]

	if schema.HasOutPort(port) && peerSchema.HasInPort(peerPort) {
		return &Edge{OutNodeID: nodeID, OutPortID: port, InNodeID: peerID, InPortID: peerPort}, nil
	}

	if peerSchema.HasOutPort(peerPort) && schema.HasInPort(port) {
		return &Edge{OutNodeID: peerID, OutPortID: peerPort, InNodeID: nodeID, InPortID: port}, nil
	}

	return nil, &DirectionError{
		NodeA: node.NodeName, PortA: port,
		NodeB: peer.NodeName, PortB: peerPort,
	}
}
