// Package server exposes the engine, registry, stores, and streams over
// HTTP. It translates transport shapes to and from the core's contracts
// and holds no domain logic of its own.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/meshkit/meshd/internal/engine"
	"github.com/meshkit/meshd/internal/store"
	"github.com/meshkit/meshd/internal/stream"
)

// Version reported by the root endpoint.
const Version = "0.1.0"

// Server wires the HTTP handlers to the application's services.
type Server struct {
	logger  *slog.Logger
	engine  *engine.Engine
	root    *store.Root
	streams *stream.Registry
	view    *stream.MultiChannelView
	started time.Time
}

// New creates a Server over the given services.
func New(logger *slog.Logger, eng *engine.Engine, root *store.Root, streams *stream.Registry) *Server {
	return &Server{
		logger:  logger,
		engine:  eng,
		root:    root,
		streams: streams,
		view:    stream.NewMultiChannelView(streams),
		started: time.Now(),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /stats", s.handleStats)

	mux.HandleFunc("GET /functions", s.handleListFunctions)
	mux.HandleFunc("GET /functions/{name}/metadata", s.handleFunctionMetadata)

	mux.HandleFunc("GET /schema/function/{name}", s.handleFunctionSchema)
	mux.HandleFunc("POST /schema/object", s.handleObjectSchema)
	mux.HandleFunc("GET /schema/dag-config", s.handleDescriptionSchema)

	mux.HandleFunc("POST /dag/execute", s.handleExecute)
	mux.HandleFunc("POST /dag/validate", s.handleValidate)
	mux.HandleFunc("GET /dag/examples", s.handleExamples)

	mux.HandleFunc("GET /store/list", s.handleStoreList)
	mux.HandleFunc("GET /store/{store}/keys", s.handleStoreKeys)
	mux.HandleFunc("GET /store/{store}/{key...}", s.handleStoreGet)
	mux.HandleFunc("PUT /store/{store}/{key...}", s.handleStorePut)
	mux.HandleFunc("DELETE /store/{store}/{key...}", s.handleStoreDelete)

	mux.HandleFunc("GET /streams", s.handleListStreams)
	mux.HandleFunc("GET /streams/{id}/metadata", s.handleStreamMetadata)
	mux.HandleFunc("GET /streams/{id}/slice", s.handleStreamSlice)
	mux.HandleFunc("POST /streams/multi-channel/slice", s.handleMultiChannelSlice)
	mux.HandleFunc("POST /streams/multi-channel/info", s.handleMultiChannelInfo)

	return s.logRequests(mux)
}

// logRequests is a thin slog access-log wrapper around the route table.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("Request handled.",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"name":        "meshd",
		"version":     Version,
		"description": "HTTP services for graph composition and execution",
		"endpoints": map[string]string{
			"store":     "/store/{store_name}",
			"functions": "/functions",
			"schema":    "/schema/function/{function_name}",
			"dag":       "/dag/execute",
			"streams":   "/streams",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	keys, err := s.root.AllKeys()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	counts := make(map[string]int, len(keys))
	for name, k := range keys {
		counts[name] = len(k)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"functions":      s.engine.Registry().Len(),
		"streams":        len(s.streams.List()),
		"store_counts":   counts,
		"uptime_seconds": int(time.Since(s.started).Seconds()),
	})
}

// writeJSON encodes v as the response body with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response.", "error", err)
	}
}

// writeError sends a JSON error body with the given status.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// readJSON decodes the request body into v, rejecting oversized payloads.
func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 8<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
