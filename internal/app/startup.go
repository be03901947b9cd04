package app

import (
	"context"

	"github.com/meshkit/meshd/internal/engine"
	"github.com/meshkit/meshd/internal/store"
	"github.com/meshkit/meshd/internal/stream"
)

// initialize runs startup tasks: export function signature metadata into
// the functions store, seed the example mesh descriptions, and register
// the demo stream sources.
func (a *App) initialize(ctx context.Context) error {
	fnStore, err := a.root.Store(store.Functions)
	if err != nil {
		return err
	}
	for _, sig := range a.reg.Signatures() {
		if err := store.PutJSON(fnStore, sig.Name, sig); err != nil {
			return err
		}
	}
	a.logger.Debug("Function metadata exported.", "count", a.reg.Len())

	a.seedExampleMeshes()
	a.registerSampleStreams()
	return nil
}

// seedExampleMeshes writes the stock example descriptions into the mesh
// store so a fresh install has something to browse. Existing keys are
// left alone.
func (a *App) seedExampleMeshes() {
	meshes := a.root.Meshes()
	for _, desc := range engine.Examples() {
		if meshes.Has(desc.Name) {
			continue
		}
		if err := store.PutJSON(meshes, desc.Name, desc); err != nil {
			a.logger.Warn("Failed to seed example mesh.", "name", desc.Name, "error", err)
		}
	}
}

// registerSampleStreams adds deterministic demo streams for the frontend
// waveform browser.
func (a *App) registerSampleStreams() {
	a.streams.Register(stream.NewSineSource("sine_1hz", 100, 10, 1))
	a.streams.Register(stream.NewSineSource("sine_5hz", 100, 10, 5))
	a.logger.Debug("Sample streams registered.", "count", len(a.streams.List()))
}
