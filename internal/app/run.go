package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/meshkit/meshd/internal/ctxlog"
	"github.com/meshkit/meshd/internal/engine"
	"github.com/meshkit/meshd/internal/graph"
	"github.com/meshkit/meshd/internal/hclgraph"
	"github.com/meshkit/meshd/internal/server"
)

// Run executes the application in the mode the config selects: one-shot
// graph execution when a graph path is set, otherwise the HTTP server.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	if a.config.GraphPath != "" {
		return a.runOnce(ctx)
	}
	return a.serve(ctx)
}

// runOnce loads one description (JSON or HCL, by extension), executes it,
// and prints the tagged result to the output writer.
func (a *App) runOnce(ctx context.Context) error {
	desc, err := a.loadDescription(ctx, a.config.GraphPath)
	if err != nil {
		return err
	}

	inputs := graph.Inputs{}
	if a.config.InputsPath != "" {
		raw, err := os.ReadFile(a.config.InputsPath)
		if err != nil {
			return fmt.Errorf("reading inputs file: %w", err)
		}
		if err := json.Unmarshal(raw, &inputs); err != nil {
			return fmt.Errorf("decoding inputs file: %w", err)
		}
	}

	result := a.engine.Execute(ctx, desc, inputs)

	enc := json.NewEncoder(a.outW)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if result.Status == engine.StatusError {
		return fmt.Errorf("graph %q failed: %s", result.DAGName, result.Error)
	}
	return nil
}

// loadDescription reads a description file. HCL files go through the HCL
// loader; anything else is treated as JSON, with a repair pass for inputs
// that are nearly but not quite valid.
func (a *App) loadDescription(ctx context.Context, path string) (*graph.Description, error) {
	if ext := filepath.Ext(path); ext == ".hcl" {
		return hclgraph.Load(ctx, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading description: %w", err)
	}
	return graph.ParseLenient(raw)
}

// serve runs the HTTP API until the context is canceled, then shuts down
// gracefully.
func (a *App) serve(ctx context.Context) error {
	srv := server.New(a.logger, a.engine, a.root, a.streams)

	httpServer := &http.Server{
		Addr:              a.config.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting.", "address", a.config.ListenAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		a.logger.Info("Shutting down.")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
