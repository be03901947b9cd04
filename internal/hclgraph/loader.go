// Package hclgraph loads graph descriptions written in HCL, the
// configuration syntax used for one-shot execution from the command line:
//
//	name = "chained_operations"
//
//	node "add_step" {
//	  function    = "add"
//	  output_name = "sum"
//	}
//
//	edge {
//	  source        = "add_step"
//	  target        = "multiply_step"
//	  source_output = "sum"
//	  target_input  = "a"
//	}
//
//	params "add_step" {
//	  a = 5
//	  b = 3
//	}
//
// The loader translates the blocks into the same strict description the
// JSON path produces; all semantic validation stays in the graph builder.
package hclgraph

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/meshkit/meshd/internal/ctxlog"
	"github.com/meshkit/meshd/internal/graph"
)

type nodeBlock struct {
	ID         string `hcl:"id,label"`
	Function   string `hcl:"function"`
	OutputName string `hcl:"output_name,optional"`
}

type edgeBlock struct {
	Source       string `hcl:"source"`
	Target       string `hcl:"target"`
	SourceOutput string `hcl:"source_output,optional"`
	TargetInput  string `hcl:"target_input,optional"`
}

type paramsBlock struct {
	NodeID string   `hcl:"node_id,label"`
	Body   hcl.Body `hcl:",remain"`
}

// fileRoot decodes the top-level blocks of a description file.
type fileRoot struct {
	Name   string         `hcl:"name,optional"`
	Nodes  []*nodeBlock   `hcl:"node,block"`
	Edges  []*edgeBlock   `hcl:"edge,block"`
	Params []*paramsBlock `hcl:"params,block"`
}

// Load parses one HCL file into a graph description.
func Load(ctx context.Context, path string) (*graph.Description, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %w", path, diags)
	}

	desc := &graph.Description{Name: root.Name}
	for _, n := range root.Nodes {
		desc.Nodes = append(desc.Nodes, graph.NodeSpec{
			ID:         n.ID,
			Function:   n.Function,
			OutputName: n.OutputName,
		})
	}
	for _, e := range root.Edges {
		desc.Edges = append(desc.Edges, graph.EdgeSpec{
			Source:       e.Source,
			Target:       e.Target,
			SourceOutput: e.SourceOutput,
			TargetInput:  e.TargetInput,
		})
	}

	for _, p := range root.Params {
		values, err := decodeParams(p)
		if err != nil {
			return nil, fmt.Errorf("params block %q in %s: %w", p.NodeID, path, err)
		}
		if desc.Params == nil {
			desc.Params = make(map[string]map[string]any)
		}
		desc.Params[p.NodeID] = values
	}

	logger.Debug("Loaded HCL description.",
		"path", path, "nodes", len(desc.Nodes), "edges", len(desc.Edges))
	return desc, nil
}

// decodeParams evaluates a params block's literal attributes into plain Go
// values.
func decodeParams(p *paramsBlock) (map[string]any, error) {
	attrs, diags := p.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	values := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		goVal, err := ctyToGo(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		values[name] = goVal
	}
	return values, nil
}
