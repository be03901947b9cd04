package graph

// DefaultName is used when a description omits its name.
const DefaultName = "unnamed"

// Description is the strict intermediate representation of a graph
// description, as received from the HTTP layer, a stored mesh, or an HCL
// file. It is plain data; all semantic validation happens in Build.
type Description struct {
	Name  string     `json:"name,omitempty"`
	Nodes []NodeSpec `json:"nodes"`
	Edges []EdgeSpec `json:"edges,omitempty"`
	// Params carries literal per-node parameter overrides. The builder
	// accepts but does not enforce them; they are applied at execution
	// time through the external input mapping.
	Params map[string]map[string]any `json:"params,omitempty"`
}

// NodeSpec declares one computation node: a unique id and the registered
// function it runs. OutputName defaults to the node id.
type NodeSpec struct {
	ID         string `json:"id"`
	Function   string `json:"function"`
	OutputName string `json:"output_name,omitempty"`
}

// EdgeSpec binds a named output of the source node to a named input
// parameter of the target node.
type EdgeSpec struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceOutput string `json:"sourceOutput,omitempty"`
	TargetInput  string `json:"targetInput,omitempty"`
}

// InputParam resolves the target parameter this edge feeds: the explicit
// targetInput if present, else the sourceOutput name, else the literal
// "value". The ordering of this fallback chain is an observable
// compatibility behavior and must not change.
func (e EdgeSpec) InputParam() string {
	if e.TargetInput != "" {
		return e.TargetInput
	}
	if e.SourceOutput != "" {
		return e.SourceOutput
	}
	return "value"
}
