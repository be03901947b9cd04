package server

import (
	"net/http"
	"strconv"
)

func (s *Server) handleListStreams(w http.ResponseWriter, r *http.Request) {
	ids := s.streams.List()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"streams": ids,
		"count":   len(ids),
	})
}

func (s *Server) handleStreamMetadata(w http.ResponseWriter, r *http.Request) {
	src, err := s.streams.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	meta, err := src.Metadata()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, meta)
}

// parseWindow reads the bt/tt query parameters. bt defaults to 0; a
// missing tt means "to the end" and is carried as -1.
func parseWindow(r *http.Request) (bt, tt float64, err error) {
	bt, tt = 0, -1
	if v := r.URL.Query().Get("bt"); v != "" {
		if bt, err = strconv.ParseFloat(v, 64); err != nil {
			return 0, 0, err
		}
	}
	if v := r.URL.Query().Get("tt"); v != "" {
		if tt, err = strconv.ParseFloat(v, 64); err != nil {
			return 0, 0, err
		}
	}
	return bt, tt, nil
}

func (s *Server) handleStreamSlice(w http.ResponseWriter, r *http.Request) {
	src, err := s.streams.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	bt, tt, err := parseWindow(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid time window: "+err.Error())
		return
	}

	data, err := src.Slice(bt, tt)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"source_id": src.ID(),
		"bt":        bt,
		"tt":        tt,
		"samples":   len(data),
		"data":      data,
	})
}

// multiChannelRequest is the body of POST /streams/multi-channel/slice.
type multiChannelRequest struct {
	ChannelIDs []string `json:"channel_ids"`
	BT         float64  `json:"bt"`
	TT         *float64 `json:"tt"`
}

func (s *Server) handleMultiChannelSlice(w http.ResponseWriter, r *http.Request) {
	var req multiChannelRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	tt := -1.0
	if req.TT != nil {
		tt = *req.TT
	}

	channels, err := s.view.Slice(req.ChannelIDs, req.BT, tt)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"channels": channels})
}

func (s *Server) handleMultiChannelInfo(w http.ResponseWriter, r *http.Request) {
	var channelIDs []string
	if !s.readJSON(w, r, &channelIDs) {
		return
	}

	info, err := s.view.Info(channelIDs)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"channels": info})
}
