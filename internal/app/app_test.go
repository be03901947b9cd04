package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshkit/meshd/internal/engine"
	"github.com/meshkit/meshd/internal/graph"
)

func newTestApp(t *testing.T) (*App, string) {
	t.Helper()
	dataDir := t.TempDir()
	cfg, err := NewConfig(Config{DataPath: dataDir, LogLevel: "error"})
	require.NoError(t, err)

	a, err := New(&bytes.Buffer{}, cfg)
	require.NoError(t, err)
	return a, dataDir
}

func TestNewWiresEverything(t *testing.T) {
	a, dataDir := newTestApp(t)

	t.Run("builtins registered", func(t *testing.T) {
		assert.Contains(t, a.Registry().List(), "add")
	})

	t.Run("function metadata exported", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dataDir, "functions", "add.json"))
		require.NoError(t, err)

		var sig map[string]any
		require.NoError(t, json.Unmarshal(data, &sig))
		assert.Equal(t, "add", sig["name"])
	})

	t.Run("example meshes seeded", func(t *testing.T) {
		for _, desc := range engine.Examples() {
			_, err := os.Stat(filepath.Join(dataDir, "meshes", desc.Name+".json"))
			assert.NoError(t, err, "mesh %q not seeded", desc.Name)
		}
	})

	t.Run("sample streams registered", func(t *testing.T) {
		assert.Equal(t, []string{"sine_1hz", "sine_5hz"}, a.streams.List())
	})

	t.Run("engine executes", func(t *testing.T) {
		res := a.Engine().Execute(context.Background(), engine.SimpleAddExample(), graph.Inputs{"a": 1.0, "b": 2.0})
		assert.Equal(t, engine.StatusSuccess, res.Status)
	})
}

func TestSeedingSkipsExistingMeshes(t *testing.T) {
	a, dataDir := newTestApp(t)

	path := filepath.Join(dataDir, "meshes", "simple_add_dag.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"edited"}`), 0o644))

	a.seedExampleMeshes()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"edited"}`, string(data))
}

func TestRunOnce(t *testing.T) {
	writeFile := func(t *testing.T, name, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	runApp := func(t *testing.T, graphPath, inputsPath string) (engine.Result, error) {
		t.Helper()
		cfg, err := NewConfig(Config{
			DataPath:   t.TempDir(),
			LogLevel:   "error",
			GraphPath:  graphPath,
			InputsPath: inputsPath,
		})
		require.NoError(t, err)

		var out bytes.Buffer
		a, err := New(&out, cfg)
		require.NoError(t, err)

		runErr := a.Run(context.Background())

		var result engine.Result
		if out.Len() > 0 {
			require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		}
		return result, runErr
	}

	t.Run("json description with inputs", func(t *testing.T) {
		graphPath := writeFile(t, "g.json", `{
			"name": "simple_add_dag",
			"nodes": [{"id": "add_node", "function": "add"}]
		}`)
		inputsPath := writeFile(t, "in.json", `{"a": 5, "b": 3}`)

		result, err := runApp(t, graphPath, inputsPath)
		require.NoError(t, err)
		assert.Equal(t, engine.StatusSuccess, result.Status)
		assert.Equal(t, 8.0, result.Result)
	})

	t.Run("params cover all arguments", func(t *testing.T) {
		graphPath := writeFile(t, "g.json", `{
			"name": "self_contained",
			"nodes": [{"id": "n", "function": "add"}],
			"params": {"n": {"a": 1, "b": 2}}
		}`)

		result, err := runApp(t, graphPath, "")
		require.NoError(t, err)
		assert.Equal(t, engine.StatusSuccess, result.Status)
	})

	t.Run("hcl description", func(t *testing.T) {
		graphPath := writeFile(t, "g.hcl", `
name = "from_hcl"

node "n" {
  function = "add"
}

params "n" {
  a = 2
  b = 3
}
`)
		result, err := runApp(t, graphPath, "")
		require.NoError(t, err)
		assert.Equal(t, engine.StatusSuccess, result.Status)
		assert.Equal(t, 5.0, result.Result)
	})

	t.Run("sloppy json is repaired", func(t *testing.T) {
		graphPath := writeFile(t, "g.json", `{
			"name": "sloppy",
			"nodes": [{"id": "n", "function": "add"},],
			"params": {"n": {"a": 1, "b": 2}},
		}`)
		result, err := runApp(t, graphPath, "")
		require.NoError(t, err)
		assert.Equal(t, engine.StatusSuccess, result.Status)
	})

	t.Run("failed execution returns an error", func(t *testing.T) {
		graphPath := writeFile(t, "g.json", `{
			"name": "incomplete",
			"nodes": [{"id": "n", "function": "add"}]
		}`)
		result, err := runApp(t, graphPath, "")
		require.Error(t, err)
		assert.Equal(t, engine.StatusError, result.Status)
	})

	t.Run("missing description file", func(t *testing.T) {
		_, err := runApp(t, filepath.Join(t.TempDir(), "absent.json"), "")
		require.Error(t, err)
	})
}
