package graph

// TopologicalOrder returns a safe instantiation order over all nodes: for
// every edge a→b, a precedes b. Data and control edges alike count as
// dependencies. Ties break deterministically by node declaration order.
func (g *Graph) TopologicalOrder() ([]string, error) {
	adjacent := make(map[string][]string, len(g.Nodes))
	inDegree := make(map[string]int, len(g.Nodes))

	for _, id := range g.Order {
		inDegree[id] = 0
	}

	for _, edge := range g.Edges {
		adjacent[edge.OutNodeID] = append(adjacent[edge.OutNodeID], edge.InNodeID)
		inDegree[edge.InNodeID]++
	}

	queue := make([]string, 0, len(g.Order))

	for _, id := range g.Order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(g.Order))

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, neighbor := range adjacent[current] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
			}
		}
	}

	if len(order) != len(g.Nodes) {
		ordered := make(map[string]bool, len(order))
		for _, id := range order {
			ordered[id] = true
		}

		var remaining []string

		for _, id := range g.Order {
			if !ordered[id] {
				remaining = append(remaining, id)
			}
		}

		return nil, &CycleError{Remaining: remaining}
	}

	return order, nil
}
