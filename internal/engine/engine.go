// Package engine wraps the graph builder and executor behind the
// tagged-result contract the transport layers speak: every call yields a
// status plus either a result or an error message, never a bare panic or
// a half-built graph.
package engine

import (
	"context"

	"github.com/meshkit/meshd/internal/ctxlog"
	"github.com/meshkit/meshd/internal/graph"
	"github.com/meshkit/meshd/internal/registry"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusValid   = "valid"
	StatusInvalid = "invalid"
)

// Result is the tagged outcome of an engine call.
type Result struct {
	Status  string `json:"status"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
	DAGName string `json:"dag_name"`
}

// Engine builds and executes graphs against one function registry.
// It holds no per-call state; concurrent calls are independent.
type Engine struct {
	reg *registry.Registry
}

// New creates an Engine over the given registry.
func New(reg *registry.Registry) *Engine {
	return &Engine{reg: reg}
}

// Registry exposes the engine's function registry.
func (e *Engine) Registry() *registry.Registry { return e.reg }

// Build constructs a graph from a description without executing it.
func (e *Engine) Build(ctx context.Context, desc *graph.Description) (*graph.Graph, error) {
	return graph.Build(ctx, desc, e.reg)
}

// Execute builds the described graph and runs it against the supplied
// inputs, folding any failure into an error-status Result.
func (e *Engine) Execute(ctx context.Context, desc *graph.Description, inputs graph.Inputs) Result {
	logger := ctxlog.FromContext(ctx)
	name := dagName(desc)

	g, err := graph.Build(ctx, desc, e.reg)
	if err != nil {
		logger.Debug("Execute: build failed.", "graph", name, "error", err)
		return Result{Status: StatusError, Error: err.Error(), DAGName: name}
	}

	value, err := g.Execute(ctx, mergeParams(desc, inputs))
	if err != nil {
		logger.Debug("Execute: run failed.", "graph", name, "error", err)
		return Result{Status: StatusError, Error: err.Error(), DAGName: name}
	}

	logger.Debug("Execute: graph completed.", "graph", name)
	return Result{Status: StatusSuccess, Result: value, DAGName: name}
}

// Validate builds the described graph without executing it and reports
// whether the description is structurally sound.
func (e *Engine) Validate(ctx context.Context, desc *graph.Description) Result {
	name := dagName(desc)
	if _, err := graph.Build(ctx, desc, e.reg); err != nil {
		return Result{Status: StatusInvalid, Error: err.Error(), DAGName: name}
	}
	return Result{Status: StatusValid, DAGName: name}
}

// mergeParams folds the description's literal parameter block into the
// input mapping as node-scoped overrides. Values the caller supplies,
// scoped or global, always win over description literals; descriptions
// only fill what the call left open.
func mergeParams(desc *graph.Description, inputs graph.Inputs) graph.Inputs {
	if len(desc.Params) == 0 {
		return inputs
	}

	merged := make(graph.Inputs, len(inputs)+len(desc.Params))
	for k, v := range inputs {
		merged[k] = v
	}

	for nodeID, literals := range desc.Params {
		scoped := make(map[string]any, len(literals))
		if existing, ok := merged[nodeID].(map[string]any); ok {
			for k, v := range existing {
				scoped[k] = v
			}
		} else if _, taken := merged[nodeID]; taken {
			// The key names an ordinary global input, not an override
			// map. Leave it alone.
			continue
		}
		for k, v := range literals {
			if _, ok := scoped[k]; ok {
				continue
			}
			// Promoting a literal to a scoped override would outrank a
			// caller global of the same name, so skip those too.
			if _, ok := inputs[k]; ok {
				continue
			}
			scoped[k] = v
		}
		merged[nodeID] = scoped
	}
	return merged
}

func dagName(desc *graph.Description) string {
	if desc == nil || desc.Name == "" {
		return graph.DefaultName
	}
	return desc.Name
}
