package graph

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshkit/meshd/internal/registry"
)

// testRegistry returns a registry with the arithmetic functions the build
// and execute tests share.
func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()

	numeric := func(name string, op func(a, b float64) float64) *registry.Function {
		return &registry.Function{
			Signature: registry.Signature{
				Name: name,
				Params: []registry.Param{
					{Name: "a", Type: registry.TypeNumber, Kind: registry.KindPositionalOrKeyword},
					{Name: "b", Type: registry.TypeNumber, Kind: registry.KindPositionalOrKeyword},
				},
				Returns: registry.TypeNumber,
			},
			Fn: func(ctx context.Context, args map[string]any) (any, error) {
				return op(args["a"].(float64), args["b"].(float64)), nil
			},
		}
	}

	reg.MustRegister(numeric("add", func(a, b float64) float64 { return a + b }))
	reg.MustRegister(numeric("multiply", func(a, b float64) float64 { return a * b }))
	reg.MustRegister(numeric("subtract", func(a, b float64) float64 { return a - b }))
	reg.MustRegister(&registry.Function{
		Signature: registry.Signature{
			Name: "fail",
			Params: []registry.Param{
				{Name: "value", Type: registry.TypeAny, Default: nil, HasDefault: true, Kind: registry.KindPositionalOrKeyword},
			},
			Returns: registry.TypeAny,
		},
		Fn: func(ctx context.Context, args map[string]any) (any, error) {
			return nil, fmt.Errorf("deliberate failure")
		},
	})
	return reg
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	reg := testRegistry(t)

	t.Run("node count matches description", func(t *testing.T) {
		desc := &Description{
			Name: "three",
			Nodes: []NodeSpec{
				{ID: "n1", Function: "add"},
				{ID: "n2", Function: "multiply"},
				{ID: "n3", Function: "subtract"},
			},
		}
		g, err := Build(ctx, desc, reg)
		require.NoError(t, err)
		assert.Equal(t, 3, g.Len())
		assert.Equal(t, "three", g.Name)
	})

	t.Run("name defaults when unset", func(t *testing.T) {
		g, err := Build(ctx, &Description{Nodes: []NodeSpec{{ID: "n", Function: "add"}}}, reg)
		require.NoError(t, err)
		assert.Equal(t, DefaultName, g.Name)
	})

	t.Run("output name defaults to node id", func(t *testing.T) {
		desc := &Description{
			Nodes: []NodeSpec{
				{ID: "a", Function: "add"},
				{ID: "b", Function: "add", OutputName: "sum"},
			},
		}
		g, err := Build(ctx, desc, reg)
		require.NoError(t, err)

		a, ok := g.Node("a")
		require.True(t, ok)
		assert.Equal(t, "a", a.OutputName)

		b, ok := g.Node("b")
		require.True(t, ok)
		assert.Equal(t, "sum", b.OutputName)
	})

	t.Run("empty node list fails", func(t *testing.T) {
		_, err := Build(ctx, &Description{Name: "empty"}, reg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStructural)

		var structErr *StructuralError
		require.ErrorAs(t, err, &structErr)
		assert.Equal(t, KindEmptyGraph, structErr.Kind)
	})

	t.Run("unknown function names node and function", func(t *testing.T) {
		desc := &Description{
			Nodes: []NodeSpec{{ID: "mystery_node", Function: "nonexistent"}},
		}
		_, err := Build(ctx, desc, reg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStructural)
		assert.Contains(t, err.Error(), "mystery_node")
		assert.Contains(t, err.Error(), "nonexistent")
	})

	t.Run("duplicate node id fails", func(t *testing.T) {
		desc := &Description{
			Nodes: []NodeSpec{
				{ID: "twin", Function: "add"},
				{ID: "twin", Function: "multiply"},
			},
		}
		_, err := Build(ctx, desc, reg)
		require.Error(t, err)

		var structErr *StructuralError
		require.ErrorAs(t, err, &structErr)
		assert.Equal(t, KindDuplicateNode, structErr.Kind)
		assert.Equal(t, "twin", structErr.NodeID)
	})

	t.Run("dangling edge source fails", func(t *testing.T) {
		desc := &Description{
			Nodes: []NodeSpec{{ID: "n", Function: "add"}},
			Edges: []EdgeSpec{{Source: "ghost", Target: "n"}},
		}
		_, err := Build(ctx, desc, reg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStructural)
		assert.Contains(t, err.Error(), "ghost")
	})

	t.Run("dangling edge target fails", func(t *testing.T) {
		desc := &Description{
			Nodes: []NodeSpec{{ID: "n", Function: "add"}},
			Edges: []EdgeSpec{{Source: "n", Target: "ghost"}},
		}
		_, err := Build(ctx, desc, reg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ghost")
	})

	t.Run("cyclic description still builds", func(t *testing.T) {
		// Cycle detection is the executor's job; validate-only callers
		// never trigger it.
		desc := &Description{
			Nodes: []NodeSpec{
				{ID: "a", Function: "add"},
				{ID: "b", Function: "add"},
			},
			Edges: []EdgeSpec{
				{Source: "a", Target: "b", TargetInput: "a"},
				{Source: "b", Target: "a", TargetInput: "a"},
			},
		}
		g, err := Build(ctx, desc, reg)
		require.NoError(t, err)
		assert.Equal(t, 2, g.Len())
	})

	t.Run("later edge for same param wins", func(t *testing.T) {
		desc := &Description{
			Nodes: []NodeSpec{
				{ID: "x", Function: "add"},
				{ID: "y", Function: "add"},
				{ID: "z", Function: "add"},
			},
			Edges: []EdgeSpec{
				{Source: "x", Target: "z", TargetInput: "a"},
				{Source: "y", Target: "z", TargetInput: "a"},
			},
		}
		g, err := Build(ctx, desc, reg)
		require.NoError(t, err)

		z, _ := g.Node("z")
		require.Len(t, z.Bindings, 1)
		assert.Equal(t, "y", z.Bindings[0].Source.ID)
	})
}

func TestEdgeSpecInputParam(t *testing.T) {
	t.Run("explicit targetInput wins", func(t *testing.T) {
		e := EdgeSpec{SourceOutput: "sum", TargetInput: "a"}
		assert.Equal(t, "a", e.InputParam())
	})

	t.Run("falls back to sourceOutput", func(t *testing.T) {
		e := EdgeSpec{SourceOutput: "sum"}
		assert.Equal(t, "sum", e.InputParam())
	})

	t.Run("falls back to literal value", func(t *testing.T) {
		assert.Equal(t, "value", EdgeSpec{}.InputParam())
	})
}

func TestBuildNeverReturnsPartialGraph(t *testing.T) {
	desc := &Description{
		Nodes: []NodeSpec{
			{ID: "good", Function: "add"},
			{ID: "bad", Function: "nonexistent"},
		},
	}
	g, err := Build(context.Background(), desc, testRegistry(t))
	require.Error(t, err)
	assert.Nil(t, g)
	assert.True(t, errors.Is(err, ErrStructural))
}
