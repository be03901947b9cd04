// Package graph is the core of the engine: it turns a declarative node and
// edge description into a validated computation graph and executes that
// graph against caller-supplied inputs.
//
// The builder carries the validation logic (unknown functions, dangling
// edge references, duplicate ids); the executor carries the ordering and
// invocation algorithm (deterministic topological order, per-parameter
// argument resolution, fail-fast error propagation). Cycle detection is
// deferred to execution so that a description can be built for validation
// without being run.
package graph
