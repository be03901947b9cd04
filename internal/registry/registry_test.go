package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoFn(name string, params ...Param) *Function {
	return &Function{
		Signature: Signature{Name: name, Params: params, Returns: TypeAny},
		Fn: func(_ context.Context, args map[string]any) (any, error) {
			return args, nil
		},
	}
}

func TestRegistry(t *testing.T) {
	t.Run("register and lookup", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Register(echoFn("echo")))

		fn, err := r.Lookup("echo")
		require.NoError(t, err)
		assert.Equal(t, "echo", fn.Name)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("lookup unknown", func(t *testing.T) {
		r := New()
		_, err := r.Lookup("missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Register(echoFn("echo")))
		err := r.Register(echoFn("echo"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})

	t.Run("replace overwrites", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Register(echoFn("echo")))

		replacement := echoFn("echo")
		replacement.Doc = "second version"
		require.NoError(t, r.Replace(replacement))

		sig, err := r.Describe("echo")
		require.NoError(t, err)
		assert.Equal(t, "second version", sig.Doc)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("must register panics on duplicate", func(t *testing.T) {
		r := New()
		r.MustRegister(echoFn("echo"))
		assert.Panics(t, func() { r.MustRegister(echoFn("echo")) })
	})

	t.Run("unregister", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Register(echoFn("echo")))
		require.NoError(t, r.Unregister("echo"))
		assert.Equal(t, 0, r.Len())

		err := r.Unregister("echo")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list is sorted", func(t *testing.T) {
		r := New()
		for _, name := range []string{"zeta", "alpha", "mid"} {
			require.NoError(t, r.Register(echoFn(name)))
		}
		assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.List())

		sigs := r.Signatures()
		require.Len(t, sigs, 3)
		assert.Equal(t, "alpha", sigs[0].Name)
		assert.Equal(t, "zeta", sigs[2].Name)
	})

	t.Run("nameless function rejected", func(t *testing.T) {
		r := New()
		err := r.Register(echoFn(""))
		require.Error(t, err)
	})

	t.Run("nil callable rejected", func(t *testing.T) {
		r := New()
		err := r.Register(&Function{Signature: Signature{Name: "broken"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "callable")
	})

	t.Run("duplicate parameter rejected", func(t *testing.T) {
		r := New()
		fn := echoFn("dup",
			Param{Name: "x", Type: TypeNumber, Kind: KindPositionalOrKeyword},
			Param{Name: "x", Type: TypeNumber, Kind: KindPositionalOrKeyword},
		)
		err := r.Register(fn)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "twice")
	})
}

func TestFunctionCall(t *testing.T) {
	scale := &Function{
		Signature: Signature{
			Name: "scale",
			Params: []Param{
				{Name: "value", Type: TypeNumber, Kind: KindPositionalOrKeyword},
				{Name: "factor", Type: TypeNumber, Default: 2.0, HasDefault: true, Kind: KindPositionalOrKeyword},
			},
			Returns: TypeNumber,
		},
		Fn: func(_ context.Context, args map[string]any) (any, error) {
			return args["value"].(float64) * args["factor"].(float64), nil
		},
	}

	t.Run("defaults fill absent params", func(t *testing.T) {
		got, err := scale.Call(context.Background(), map[string]any{"value": 3.0})
		require.NoError(t, err)
		assert.Equal(t, 6.0, got)
	})

	t.Run("explicit args win over defaults", func(t *testing.T) {
		got, err := scale.Call(context.Background(), map[string]any{"value": 3.0, "factor": 10.0})
		require.NoError(t, err)
		assert.Equal(t, 30.0, got)
	})

	t.Run("missing required argument", func(t *testing.T) {
		_, err := scale.Call(context.Background(), map[string]any{"factor": 10.0})
		require.Error(t, err)

		var missing *MissingArgumentError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "scale", missing.Function)
		assert.Equal(t, "value", missing.Param)
	})

	t.Run("unexpected argument rejected", func(t *testing.T) {
		_, err := scale.Call(context.Background(), map[string]any{"value": 1.0, "bogus": true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bogus")
	})
}
