package graph

import (
	"context"

	"github.com/meshkit/meshd/internal/ctxlog"
)

// Inputs is the external input mapping for one execution call: a flat
// parameter-name → value mapping, optionally overlaid with node-id keys
// whose map values scope overrides to a single node.
type Inputs map[string]any

// scoped returns the node-scoped override map for a node id, if present.
// Only map-shaped values count as overrides; anything else under that key
// is an ordinary global input.
func (in Inputs) scoped(nodeID string) map[string]any {
	if m, ok := in[nodeID].(map[string]any); ok {
		return m
	}
	return nil
}

// Execute runs the graph against the supplied external inputs. Nodes run
// strictly in topological order on the calling goroutine; the first node
// failure aborts the rest and no partial results are returned.
//
// Per parameter of each node, the value is resolved in this order: the
// internal binding's already-computed upstream output, then the node-scoped
// override, then the global input of the same name, then the callable's own
// declared default. A required parameter left unresolved fails the call
// with a missing-argument error.
//
// A single-sink graph yields that node's value directly; a graph with
// several sinks yields a mapping of every node id to its computed value.
func (g *Graph) Execute(ctx context.Context, inputs Inputs) (any, error) {
	logger := ctxlog.FromContext(ctx).With("graph", g.Name)

	ordered, err := g.order()
	if err != nil {
		return nil, err
	}
	logger.Debug("Execute: topological order resolved.", "node_count", len(ordered))

	results := make(map[string]any, len(ordered))

	for _, n := range ordered {
		args := make(map[string]any)

		scoped := inputs.scoped(n.ID)
		for _, p := range n.Fn.Params {
			if v, ok := scoped[p.Name]; ok {
				args[p.Name] = v
				continue
			}
			if v, ok := inputs[p.Name]; ok {
				args[p.Name] = v
			}
		}

		// Internal bindings win over any externally supplied value.
		for _, b := range n.Bindings {
			args[b.Param] = results[b.Source.ID]
		}

		logger.Debug("Execute: invoking node.", "node", n.ID, "function", n.Fn.Name)
		value, err := n.Fn.Call(ctx, args)
		if err != nil {
			logger.Debug("Execute: node failed.", "node", n.ID, "error", err)
			return nil, &ExecutionError{NodeID: n.ID, Err: err}
		}
		results[n.ID] = value
	}

	sinks := g.Sinks()
	if len(sinks) == 1 {
		return results[sinks[0].ID], nil
	}
	return results, nil
}
