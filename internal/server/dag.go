package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/meshkit/meshd/internal/engine"
	"github.com/meshkit/meshd/internal/graph"
)

// executeRequest is the body of POST /dag/execute: the description plus
// the external input mapping.
type executeRequest struct {
	DAGConfig json.RawMessage `json:"dag_config"`
	Inputs    map[string]any  `json:"inputs"`
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	if len(req.DAGConfig) == 0 {
		s.writeError(w, http.StatusBadRequest, "missing dag_config")
		return
	}

	desc, err := graph.ParseBytes(req.DAGConfig)
	if err != nil {
		s.writeDescriptionError(w, err)
		return
	}

	result := s.engine.Execute(r.Context(), desc, graph.Inputs(req.Inputs))
	s.writeJSON(w, http.StatusOK, result)
}

// handleValidate accepts a bare description as the request body and
// reports valid/invalid without executing anything.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body := json.RawMessage{}
	if !s.readJSON(w, r, &body) {
		return
	}

	desc, err := graph.ParseBytes(body)
	if err != nil {
		var structErr *graph.StructuralError
		if errors.As(err, &structErr) {
			s.writeJSON(w, http.StatusOK, engine.Result{
				Status:  engine.StatusInvalid,
				Error:   err.Error(),
				DAGName: graph.DefaultName,
			})
			return
		}
		s.writeDescriptionError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, s.engine.Validate(r.Context(), desc))
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"examples": engine.Examples()})
}

// writeDescriptionError maps description parse failures to 400 responses.
func (s *Server) writeDescriptionError(w http.ResponseWriter, err error) {
	s.writeError(w, http.StatusBadRequest, err.Error())
}
