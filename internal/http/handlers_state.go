package http

import (
	"net/http"

	"fintrack/internal/core"
)

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.svc.State(r.Context()))
}

func (s *Server) handleReplaceState(w http.ResponseWriter, r *http.Request) {
	var state core.FinanceState
	if err := decodeJSON(w, r, &state); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := s.svc.ReplaceState(r.Context(), state); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.svc.State(r.Context()))
}

func (s *Server) handleClearState(w http.ResponseWriter, r *http.Request) {
	s.svc.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
