package graph

import (
	"github.com/meshkit/meshd/internal/registry"
)

// Graph is a validated, immutable computation graph: nodes bound to
// resolved callables plus the internal parameter bindings between them.
// Construct one with Build; a Graph is never mutated afterwards.
type Graph struct {
	Name string

	nodes []*Node // declaration order, which also breaks execution-order ties
	byID  map[string]*Node

	// params preserves the description's literal override block so that
	// Description round-trips faithfully. The executor applies overrides
	// from its input mapping, not from here.
	params map[string]map[string]any
}

// Node is one unit of computation: an id, a resolved callable, and the
// bindings that feed its parameters from upstream nodes.
type Node struct {
	ID         string
	OutputName string
	Fn         *registry.Function
	Bindings   []Binding
}

// Binding maps one parameter of a node's function to the named output of
// another node in the same graph.
type Binding struct {
	Param  string
	Source *Node
	Output string
}

// Nodes returns the graph's nodes in declaration order. The returned slice
// must not be modified.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Node resolves a node by id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// Len reports the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Sinks returns, in declaration order, the nodes whose output no internal
// binding consumes. A non-empty acyclic graph always has at least one.
func (g *Graph) Sinks() []*Node {
	consumed := make(map[string]bool)
	for _, n := range g.nodes {
		for _, b := range n.Bindings {
			consumed[b.Source.ID] = true
		}
	}

	var sinks []*Node
	for _, n := range g.nodes {
		if !consumed[n.ID] {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// Description serializes the graph back into description form. Node,
// edge, and params content survives the round trip; edges are emitted in
// per-node binding order with explicit port names.
func (g *Graph) Description() *Description {
	desc := &Description{Name: g.Name}

	for _, n := range g.nodes {
		spec := NodeSpec{ID: n.ID, Function: n.Fn.Name}
		if n.OutputName != n.ID {
			spec.OutputName = n.OutputName
		}
		desc.Nodes = append(desc.Nodes, spec)

		for _, b := range n.Bindings {
			desc.Edges = append(desc.Edges, EdgeSpec{
				Source:       b.Source.ID,
				Target:       n.ID,
				SourceOutput: b.Output,
				TargetInput:  b.Param,
			})
		}
	}

	if len(g.params) > 0 {
		desc.Params = make(map[string]map[string]any, len(g.params))
		for id, p := range g.params {
			desc.Params[id] = p
		}
	}
	return desc
}
