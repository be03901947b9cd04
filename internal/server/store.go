package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/meshkit/meshd/internal/store"
)

// storeDescriptions documents each sub-store for the listing endpoint.
var storeDescriptions = map[string]string{
	store.RawData:   "Binary blobs (audio, sensor data)",
	store.Functions: "Function signature metadata for graph composition",
	store.Meshes:    "Saved graph descriptions",
	store.Configs:   "Application configurations",
}

func (s *Server) handleStoreList(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"stores":      s.root.Names(),
		"description": storeDescriptions,
	})
}

// lookupStore resolves the {store} path segment, writing a 404 on miss.
func (s *Server) lookupStore(w http.ResponseWriter, r *http.Request) (*store.Store, string, bool) {
	name := r.PathValue("store")
	st, err := s.root.Store(name)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return nil, "", false
	}
	return st, name, true
}

func (s *Server) handleStoreKeys(w http.ResponseWriter, r *http.Request) {
	st, name, ok := s.lookupStore(w, r)
	if !ok {
		return
	}
	keys, err := st.Keys()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"store": name,
		"keys":  keys,
		"count": len(keys),
	})
}

func (s *Server) handleStoreGet(w http.ResponseWriter, r *http.Request) {
	st, name, ok := s.lookupStore(w, r)
	if !ok {
		return
	}
	key := r.PathValue("key")

	data, err := st.Get(key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// raw_data serves opaque bytes; the JSON-codec stores already hold
	// valid JSON documents and pass through untouched.
	if name == store.RawData {
		w.Header().Set("Content-Type", "application/octet-stream")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleStorePut(w http.ResponseWriter, r *http.Request) {
	st, name, ok := s.lookupStore(w, r)
	if !ok {
		return
	}
	key := r.PathValue("key")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 32<<20))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := st.Put(key, body); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("Stored item.", "store", name, "key", key, "bytes", len(body))
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "stored", "store": name, "key": key})
}

func (s *Server) handleStoreDelete(w http.ResponseWriter, r *http.Request) {
	st, name, ok := s.lookupStore(w, r)
	if !ok {
		return
	}
	key := r.PathValue("key")

	if err := st.Delete(key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "store": name, "key": key})
}
