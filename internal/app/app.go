// Package app assembles the application: logger, function registry,
// stores, stream sources, engine, and HTTP server, in that order. It owns
// the lifecycle; the packages it wires stay ignorant of each other's
// construction.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/meshkit/meshd/internal/builtins"
	"github.com/meshkit/meshd/internal/ctxlog"
	"github.com/meshkit/meshd/internal/engine"
	"github.com/meshkit/meshd/internal/registry"
	"github.com/meshkit/meshd/internal/store"
	"github.com/meshkit/meshd/internal/stream"
)

// defaultModules is the function set registered when the caller supplies
// none explicitly.
var defaultModules = []registry.Module{&builtins.Module{}}

// App encapsulates the application's dependencies and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	reg     *registry.Registry
	engine  *engine.Engine
	root    *store.Root
	streams *stream.Registry
}

// New constructs a fully wired App. The modules variadic exists for tests;
// production callers rely on the builtin set.
func New(outW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = defaultModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Function modules registered.", "functions", reg.Len())

	root, err := store.NewRoot(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("opening stores: %w", err)
	}
	logger.Debug("Stores opened.", "base", cfg.DataPath)

	streams := stream.NewRegistry()

	a := &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		reg:     reg,
		engine:  engine.New(reg),
		root:    root,
		streams: streams,
	}

	if err := a.initialize(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// Registry returns the application's function registry, primarily for
// tests.
func (a *App) Registry() *registry.Registry { return a.reg }

// Engine returns the application's engine, primarily for tests.
func (a *App) Engine() *engine.Engine { return a.engine }
