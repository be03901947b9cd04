package engine

import "github.com/meshkit/meshd/internal/graph"

// SimpleAddExample is a one-node graph adding two externally supplied
// numbers.
func SimpleAddExample() *graph.Description {
	return &graph.Description{
		Name: "simple_add_dag",
		Nodes: []graph.NodeSpec{
			{ID: "add_node", Function: "add", OutputName: "result"},
		},
	}
}

// ChainedExample adds two numbers and multiplies the sum by a third input:
// the output of add_step feeds parameter "a" of multiply_step.
func ChainedExample() *graph.Description {
	return &graph.Description{
		Name: "chained_operations",
		Nodes: []graph.NodeSpec{
			{ID: "add_step", Function: "add", OutputName: "sum"},
			{ID: "multiply_step", Function: "multiply", OutputName: "product"},
		},
		Edges: []graph.EdgeSpec{
			{Source: "add_step", Target: "multiply_step", SourceOutput: "sum", TargetInput: "a"},
		},
	}
}

// Examples returns the stock example descriptions served by the API.
func Examples() []*graph.Description {
	return []*graph.Description{SimpleAddExample(), ChainedExample()}
}
