package graph

import (
	"context"
	"fmt"

	"github.com/meshkit/meshd/internal/ctxlog"
	"github.com/meshkit/meshd/internal/registry"
)

// Build translates a description into a computation graph, resolving every
// node's function against the registry and every edge into a parameter
// binding. Any structural defect aborts the whole build; no partially
// constructed graph is ever returned.
//
// Cycles are deliberately not checked here. A description can be built for
// validation without ever being executed, and the cycle only matters once
// an execution order is needed.
func Build(ctx context.Context, desc *Description, reg *registry.Registry) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)

	name := desc.Name
	if name == "" {
		name = DefaultName
	}

	if len(desc.Nodes) == 0 {
		return nil, &StructuralError{Kind: KindEmptyGraph, Detail: "graph must have at least one node"}
	}

	g := &Graph{Name: name, byID: make(map[string]*Node, len(desc.Nodes))}

	for _, spec := range desc.Nodes {
		if _, exists := g.byID[spec.ID]; exists {
			return nil, &StructuralError{
				Kind:   KindDuplicateNode,
				NodeID: spec.ID,
				Detail: "node id declared more than once",
			}
		}

		fn, err := reg.Lookup(spec.Function)
		if err != nil {
			return nil, &StructuralError{
				Kind:   KindUnknownFunction,
				NodeID: spec.ID,
				Detail: fmt.Sprintf("function %q not found in registry", spec.Function),
			}
		}

		n := &Node{ID: spec.ID, OutputName: spec.OutputName, Fn: fn}
		if n.OutputName == "" {
			n.OutputName = spec.ID
		}
		g.nodes = append(g.nodes, n)
		g.byID[spec.ID] = n
	}
	logger.Debug("Build: nodes resolved.", "graph", name, "node_count", len(g.nodes))

	for _, edge := range desc.Edges {
		source, ok := g.byID[edge.Source]
		if !ok {
			return nil, &StructuralError{
				Kind:   KindUnknownNode,
				Detail: fmt.Sprintf("edge references unknown source node %q", edge.Source),
			}
		}
		target, ok := g.byID[edge.Target]
		if !ok {
			return nil, &StructuralError{
				Kind:   KindUnknownNode,
				Detail: fmt.Sprintf("edge references unknown target node %q", edge.Target),
			}
		}

		output := edge.SourceOutput
		if output == "" {
			output = source.OutputName
		}
		target.bind(Binding{Param: edge.InputParam(), Source: source, Output: output})
	}
	logger.Debug("Build: edges bound.", "graph", name, "edge_count", len(desc.Edges))

	if len(desc.Params) > 0 {
		g.params = make(map[string]map[string]any, len(desc.Params))
		for id, p := range desc.Params {
			g.params[id] = p
		}
	}

	return g, nil
}

// bind registers an internal binding on the node. A later edge naming the
// same target parameter replaces the earlier one, matching the original
// last-write-wins behavior of the description format.
func (n *Node) bind(b Binding) {
	for i, existing := range n.Bindings {
		if existing.Param == b.Param {
			n.Bindings[i] = b
			return
		}
	}
	n.Bindings = append(n.Bindings, b)
}
