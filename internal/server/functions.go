package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/meshkit/meshd/internal/registry"
	"github.com/meshkit/meshd/internal/schema"
)

func (s *Server) handleListFunctions(w http.ResponseWriter, r *http.Request) {
	names := s.engine.Registry().List()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"functions": names,
		"count":     len(names),
	})
}

func (s *Server) handleFunctionMetadata(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	sig, err := s.engine.Registry().Describe(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, sig)
}

func (s *Server) handleFunctionSchema(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	sig, err := s.engine.Registry().Describe(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, schema.ForFunction(sig, r.URL.Query().Get("title")))
}

func (s *Server) handleObjectSchema(w http.ResponseWriter, r *http.Request) {
	var obj any
	r.Body = http.MaxBytesReader(w, r.Body, 8<<20)
	if err := json.NewDecoder(r.Body).Decode(&obj); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, schema.ForObject(obj, r.URL.Query().Get("title")))
}

func (s *Server) handleDescriptionSchema(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, schema.ForDescription())
}
