package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic checks via errors.Is().
var (
	// ErrParse indicates the description was not valid JSON.
	ErrParse = errors.New("parse error")

	// ErrStructural indicates a malformed description: empty node list,
	// unknown function name, dangling edge reference. Always raised at
	// build time, never during execution.
	ErrStructural = errors.New("structural error")

	// ErrCycle indicates the dependency graph has no topological order.
	// Observed at execution time, before any callable runs.
	ErrCycle = errors.New("dependency cycle")

	// ErrExecution indicates a node's callable failed.
	ErrExecution = errors.New("execution error")
)

// Structural error kinds.
const (
	KindEmptyGraph      = "empty_graph"
	KindDuplicateNode   = "duplicate_node"
	KindUnknownFunction = "unknown_function"
	KindUnknownNode     = "unknown_node"
	KindMissingField    = "missing_field"
)

// ParseError reports malformed description JSON.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", ErrParse.Error(), e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// StructuralError reports a malformed graph description. The builder never
// returns a partially constructed graph alongside one.
type StructuralError struct {
	Kind   string // one of the Kind* constants
	NodeID string // offending node id, when one exists
	Detail string
}

func (e *StructuralError) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("%s: node %q: %s", ErrStructural.Error(), e.NodeID, e.Detail)
	}
	return fmt.Sprintf("%s: %s", ErrStructural.Error(), e.Detail)
}

func (e *StructuralError) Unwrap() error { return ErrStructural }

// CycleError reports that no valid topological order exists, naming one
// node that sits on a cycle.
type CycleError struct {
	NodeID string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s involving node %q", ErrCycle.Error(), e.NodeID)
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// ExecutionError wraps the first node failure during execution. Remaining
// nodes are not run and no partial results are returned.
type ExecutionError struct {
	NodeID string
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("node %q: %v", e.NodeID, e.Err)
}

// Unwrap exposes the underlying failure, so errors.As can still reach
// typed causes such as registry.MissingArgumentError.
func (e *ExecutionError) Unwrap() error { return e.Err }

// Is tags the error as ErrExecution without hiding the wrapped cause.
func (e *ExecutionError) Is(target error) bool { return target == ErrExecution }
