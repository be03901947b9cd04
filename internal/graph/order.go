package graph

// order computes a topological ordering of the graph's nodes over the
// internal bindings (source before target). Among nodes whose dependencies
// are all satisfied, declaration order wins, so repeated executions of the
// same graph visit nodes in the same sequence.
func (g *Graph) order() ([]*Node, error) {
	remaining := make(map[string]int, len(g.nodes))
	dependents := make(map[string][]*Node)

	for _, n := range g.nodes {
		sources := make(map[string]bool)
		for _, b := range n.Bindings {
			sources[b.Source.ID] = true
		}
		remaining[n.ID] = len(sources)
		for src := range sources {
			dependents[src] = append(dependents[src], n)
		}
	}

	ordered := make([]*Node, 0, len(g.nodes))
	done := make(map[string]bool, len(g.nodes))

	for len(ordered) < len(g.nodes) {
		var next *Node
		for _, n := range g.nodes {
			if !done[n.ID] && remaining[n.ID] == 0 {
				next = n
				break
			}
		}
		if next == nil {
			return nil, &CycleError{NodeID: g.cycleNode(done)}
		}

		ordered = append(ordered, next)
		done[next.ID] = true
		for _, dep := range dependents[next.ID] {
			remaining[dep.ID]--
		}
	}

	return ordered, nil
}

// cycleNode walks dependency edges among the unordered nodes until one
// repeats, yielding a node that actually sits on a cycle rather than one
// merely downstream of it.
func (g *Graph) cycleNode(done map[string]bool) string {
	var start *Node
	for _, n := range g.nodes {
		if !done[n.ID] {
			start = n
			break
		}
	}

	seen := make(map[string]bool)
	current := start
	for !seen[current.ID] {
		seen[current.ID] = true
		for _, b := range current.Bindings {
			if !done[b.Source.ID] {
				current = b.Source
				break
			}
		}
	}
	return current.ID
}
