package hclgraph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshkit/meshd/internal/graph"
)

func writeHCL(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeHCL(t, `
name = "chained_operations"

node "add_step" {
  function    = "add"
  output_name = "sum"
}

node "multiply_step" {
  function = "multiply"
}

edge {
  source        = "add_step"
  target        = "multiply_step"
  source_output = "sum"
  target_input  = "a"
}

params "add_step" {
  a = 5
  b = 3
}

params "multiply_step" {
  b      = 2
  label  = "doubled"
  active = true
  tags   = ["x", "y"]
  extra  = { depth = 1 }
}
`)

	desc, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "chained_operations", desc.Name)
	require.Len(t, desc.Nodes, 2)
	assert.Equal(t, graph.NodeSpec{ID: "add_step", Function: "add", OutputName: "sum"}, desc.Nodes[0])
	assert.Equal(t, graph.NodeSpec{ID: "multiply_step", Function: "multiply"}, desc.Nodes[1])

	require.Len(t, desc.Edges, 1)
	assert.Equal(t, graph.EdgeSpec{
		Source:       "add_step",
		Target:       "multiply_step",
		SourceOutput: "sum",
		TargetInput:  "a",
	}, desc.Edges[0])

	// HCL numbers come out as float64, same as the JSON path.
	assert.Equal(t, map[string]any{"a": 5.0, "b": 3.0}, desc.Params["add_step"])
	assert.Equal(t, map[string]any{
		"b":      2.0,
		"label":  "doubled",
		"active": true,
		"tags":   []any{"x", "y"},
		"extra":  map[string]any{"depth": 1.0},
	}, desc.Params["multiply_step"])
}

func TestLoadMinimal(t *testing.T) {
	path := writeHCL(t, `
node "only" {
  function = "add"
}
`)

	desc, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, desc.Name)
	require.Len(t, desc.Nodes, 1)
	assert.Nil(t, desc.Params)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
		require.Error(t, err)
	})

	t.Run("syntax error", func(t *testing.T) {
		path := writeHCL(t, `node "broken" {`)
		_, err := Load(context.Background(), path)
		require.Error(t, err)
	})

	t.Run("node missing function attribute", func(t *testing.T) {
		path := writeHCL(t, `
node "n" {
  output_name = "out"
}
`)
		_, err := Load(context.Background(), path)
		require.Error(t, err)
	})

	t.Run("params referencing variables", func(t *testing.T) {
		path := writeHCL(t, `
node "n" {
  function = "add"
}

params "n" {
  a = some.reference
}
`)
		_, err := Load(context.Background(), path)
		require.Error(t, err)
	})
}
