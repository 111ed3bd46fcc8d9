package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildGraph constructs a canonical graph directly, bypassing the decoders.
func buildGraph(order []string, edges ...*Edge) *Graph {
	nodes := make(map[string]*Node, len(order))
	for _, id := range order {
		nodes[id] = &Node{Name: id}
	}

	if edges == nil {
		edges = []*Edge{}
	}

	return &Graph{Nodes: nodes, Order: order, Edges: edges}
}

func wire(out, outPort, in, inPort string) *Edge {
	return &Edge{OutNodeID: out, OutPortID: outPort, InNodeID: in, InPortID: inPort}
}

func TestTopologicalOrderRespectsEdges(t *testing.T) {
	g := buildGraph([]string{"c", "b", "a"},
		wire("a", "RESULT", "b", "NUM1"),
		wire("b", "RESULT", "c", "NUM1"),
	)

	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestTopologicalOrderTiesBreakByDeclaration(t *testing.T) {
	// No edges at all: the order is exactly the declaration order.
	g := buildGraph([]string{"z", "m", "a"})

	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "m", "a"}, order)
}

func TestTopologicalOrderIsDeterministic(t *testing.T) {
	g := buildGraph([]string{"root", "x", "y", "z"},
		wire("root", "THEN", "x", "EXEC"),
		wire("root", "THEN", "y", "EXEC"),
		wire("root", "THEN", "z", "EXEC"),
	)

	first, err := g.TopologicalOrder()
	require.NoError(t, err)

	for range 20 {
		again, err := g.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTopologicalOrderEveryEdgeForward(t *testing.T) {
	g := buildGraph([]string{"e", "d", "c", "b", "a"},
		wire("a", "RESULT", "c", "NUM1"),
		wire("b", "RESULT", "c", "NUM2"),
		wire("c", "RESULT", "e", "X"),
		wire("d", "THEN", "e", "EXEC"),
	)

	order, err := g.TopologicalOrder()
	require.NoError(t, err)

	position := make(map[string]int, len(order))
	for i, id := range order {
		position[id] = i
	}

	for _, edge := range g.Edges {
		assert.Less(t, position[edge.OutNodeID], position[edge.InNodeID],
			"edge %s->%s runs backwards", edge.OutNodeID, edge.InNodeID)
	}
}

func TestTopologicalOrderCycle(t *testing.T) {
	g := buildGraph([]string{"a", "b"},
		wire("a", "RESULT", "b", "NUM1"),
		wire("b", "RESULT", "a", "NUM1"),
	)

	_, err := g.TopologicalOrder()
	require.Error(t, err)
	assert.True(t, IsCyclicGraph(err))

	var cycleErr *CycleError

	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"a", "b"}, cycleErr.Remaining)
}

func TestNextChain(t *testing.T) {
	g := buildGraph([]string{"flag", "first", "second"},
		wire("flag", "THEN", "first", "EXEC"),
		wire("first", "THEN", "second", "EXEC"),
	)

	chain, err := g.NextChain("flag")
	require.NoError(t, err)
	assert.Equal(t, []string{"flag", "first", "second"}, chain)
}

func TestNextChainIgnoresDataEdges(t *testing.T) {
	g := buildGraph([]string{"flag", "set", "const"},
		wire("flag", "THEN", "set", "EXEC"),
		wire("const", "", "set", "X"),
	)

	chain, err := g.NextChain("flag")
	require.NoError(t, err)
	assert.Equal(t, []string{"flag", "set"}, chain)
}

func TestNextChainCycle(t *testing.T) {
	g := buildGraph([]string{"a", "b"},
		wire("a", "THEN", "b", "EXEC"),
		wire("b", "THEN", "a", "EXEC"),
	)

	_, err := g.NextChain("a")
	require.Error(t, err)
	assert.True(t, IsControlCycle(err))
}

func TestBodyChain(t *testing.T) {
	g := buildGraph([]string{"repeat", "inner1", "inner2", "after"},
		wire("repeat", "SUBSTACK", "inner1", "EXEC"),
		wire("inner1", "THEN", "inner2", "EXEC"),
		wire("repeat", "THEN", "after", "EXEC"),
	)

	body, err := g.BodyChain("repeat")
	require.NoError(t, err)
	assert.Equal(t, []string{"inner1", "inner2"}, body)

	// The sequential successor is not part of the body.
	chain, err := g.NextChain("repeat")
	require.NoError(t, err)
	assert.Equal(t, []string{"repeat", "after"}, chain)
}

func TestElseBodyChain(t *testing.T) {
	g := buildGraph([]string{"branch", "yes", "no"},
		wire("branch", "SUBSTACK_IF", "yes", "EXEC"),
		wire("branch", "SUBSTACK_ELSE", "no", "EXEC"),
	)

	body, err := g.BodyChain("branch")
	require.NoError(t, err)
	assert.Equal(t, []string{"yes"}, body)

	elseBody, err := g.ElseBodyChain("branch")
	require.NoError(t, err)
	assert.Equal(t, []string{"no"}, elseBody)
}

func TestBodyChainEmpty(t *testing.T) {
	g := buildGraph([]string{"repeat"})

	body, err := g.BodyChain("repeat")
	require.NoError(t, err)
	assert.Empty(t, body)
}
