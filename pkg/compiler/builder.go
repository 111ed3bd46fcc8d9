package compiler

import (
	"fmt"

	"github.com/spritelang/spritec/pkg/blocks"
	"github.com/spritelang/spritec/pkg/graph"
)

// Program is one compiled block program. The builder exclusively owns the
// runtime block tree; scripts are the roots built from trigger-kind nodes, in
// node declaration order.
type Program struct {
	Graph   *graph.Graph
	Order   []string // topological instantiation order
	Blocks  map[string]*blocks.Block
	Scripts []*blocks.Block
}

// Compile validates the canonical graph against the catalog and builds the
// runtime block tree. It fails fast on the first taxonomy violation.
func Compile(g *graph.Graph, catalog blocks.Catalog) (*Program, error) {
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	producers, err := indexProducers(g)
	if err != nil {
		return nil, err
	}

	if err := validatePorts(g, catalog, producers); err != nil {
		return nil, err
	}

	program := &Program{
		Graph:  g,
		Order:  order,
		Blocks: make(map[string]*blocks.Block),
	}

	// Constants resolve to their literal; everything else becomes a runtime
	// block. Topological order guarantees every producer is available when a
	// consumer binds it.
	values := make(map[string]any)

	for _, id := range order {
		node := g.Nodes[id]

		if node.IsConstant() {
			values[id] = node.Value

			continue
		}

		block, err := buildBlock(g, catalog, producers, values, program.Blocks, id)
		if err != nil {
			return nil, err
		}

		program.Blocks[id] = block
	}

	if err := attachBodies(g, catalog, program.Blocks); err != nil {
		return nil, err
	}

	wireNext(g, program.Blocks)

	for _, id := range g.Order {
		if g.Nodes[id].Kind().IsTrigger() {
			program.Scripts = append(program.Scripts, program.Blocks[id])
		}
	}

	return program, nil
}

// indexProducers maps every (target node, target port) to its unique
// producing edge.
func indexProducers(g *graph.Graph) (map[[2]string]*graph.Edge, error) {
	producers := make(map[[2]string]*graph.Edge, len(g.Edges))

	for _, edge := range g.Edges {
		key := [2]string{edge.InNodeID, edge.InPortID}
		if _, dup := producers[key]; dup {
			return nil, &NodeError{NodeID: edge.InNodeID, Port: edge.InPortID, Err: ErrDuplicateInputProducer}
		}

		producers[key] = edge
	}

	return producers, nil
}

// validatePorts checks that every node's kind is registered and every
// required data input and field has exactly one producer.
func validatePorts(g *graph.Graph, catalog blocks.Catalog, producers map[[2]string]*graph.Edge) error {
	for _, id := range g.Order {
		node := g.Nodes[id]
		if node.IsConstant() {
			continue
		}

		schema, err := catalog.SchemaOf(node.Kind())
		if err != nil {
			return &NodeError{NodeID: id, Err: err}
		}

		for _, port := range schema.InPorts {
			// EXEC is a control input: only chained blocks receive it.
			if port.ID == blocks.PortExec {
				continue
			}

			if _, ok := producers[[2]string{id, port.ID}]; !ok {
				return &NodeError{NodeID: id, Port: port.ID, Err: ErrMissingRequiredPort}
			}
		}

		for _, field := range schema.Fields {
			if _, ok := producers[[2]string{id, field.ID}]; !ok {
				return &NodeError{NodeID: id, Port: field.ID, Err: ErrMissingRequiredPort}
			}
		}
	}

	return nil
}

func buildBlock(
	g *graph.Graph,
	catalog blocks.Catalog,
	producers map[[2]string]*graph.Edge,
	values map[string]any,
	built map[string]*blocks.Block,
	id string,
) (*blocks.Block, error) {
	node := g.Nodes[id]
	schema := catalog[node.Kind()]
	block := blocks.New(id, node.Kind())

	for _, port := range schema.InPorts {
		if port.ID == blocks.PortExec {
			continue
		}

		producer := producers[[2]string{id, port.ID}].OutNodeID

		if g.Nodes[producer].IsConstant() {
			block.Inputs[port.ID] = blocks.LiteralInput(values[producer])
		} else {
			block.Inputs[port.ID] = blocks.RefInput(built[producer])
		}
	}

	for _, field := range schema.Fields {
		producer := producers[[2]string{id, field.ID}].OutNodeID

		if !g.Nodes[producer].IsConstant() {
			return nil, &NodeError{NodeID: id, Port: field.ID, Err: ErrFieldRequiresLiteral}
		}

		block.Fields[field.ID] = values[producer]
	}

	return block, nil
}

// attachBodies resolves substack chains into owned child block lists for
// every compound node.
func attachBodies(g *graph.Graph, catalog blocks.Catalog, built map[string]*blocks.Block) error {
	for id, block := range built {
		schema := catalog[block.Kind]
		if !schema.IsCompound() {
			continue
		}

		body, err := g.BodyChain(id)
		if err != nil {
			return err
		}

		for _, childID := range body {
			child, ok := built[childID]
			if !ok {
				return &NodeError{NodeID: id, Err: fmt.Errorf("body chain includes non-block node %s", childID)}
			}

			block.Body = append(block.Body, child)
		}

		if !schema.HasOutPort(blocks.PortSubstackElse) {
			continue
		}

		elseBody, err := g.ElseBodyChain(id)
		if err != nil {
			return err
		}

		for _, childID := range elseBody {
			child, ok := built[childID]
			if !ok {
				return &NodeError{NodeID: id, Err: fmt.Errorf("else body chain includes non-block node %s", childID)}
			}

			block.ElseBody = append(block.ElseBody, child)
		}
	}

	return nil
}

// wireNext connects sequential successors along the THEN→EXEC control edges.
func wireNext(g *graph.Graph, built map[string]*blocks.Block) {
	for _, edge := range g.Edges {
		if edge.OutPortID != blocks.PortThen || edge.InPortID != blocks.PortExec {
			continue
		}

		if from, ok := built[edge.OutNodeID]; ok {
			if to, ok := built[edge.InNodeID]; ok {
				from.Next = to
			}
		}
	}
}
