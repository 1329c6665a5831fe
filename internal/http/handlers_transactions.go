package http

import (
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

// dateGroup is one day of GET /api/transactions/by-date.
type dateGroup struct {
	Date         core.Date          `json:"date"`
	Transactions []core.Transaction `json:"transactions"`
}

func (s *Server) filters(w http.ResponseWriter, r *http.Request) (core.TransactionFilters, bool) {
	f, err := ParseFilters(r.URL.Query(), s.svc.Now())
	if err != nil {
		writeServiceError(w, r, err)
		return f, false
	}
	return f, true
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	f, ok := s.filters(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, s.svc.Transactions(r.Context(), f))
}

func (s *Server) handleTransactionsByDate(w http.ResponseWriter, r *http.Request) {
	f, ok := s.filters(w, r)
	if !ok {
		return
	}
	grouped := core.GroupTransactionsByDate(s.svc.Transactions(r.Context(), f))
	out := make([]dateGroup, 0, len(grouped))
	for _, d := range core.SortedDates(grouped) {
		out = append(out, dateGroup{Date: d, Transactions: grouped[d]})
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) decodeTransaction(w http.ResponseWriter, r *http.Request) (services.TransactionInput, bool) {
	var in services.TransactionInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeServiceError(w, r, err)
		return in, false
	}
	in.Notes = sanitizeInput(in.Notes)
	return in, true
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeTransaction(w, r)
	if !ok {
		return
	}
	t, err := s.svc.CreateTransaction(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/transactions/"+t.ID)
	writeJSON(w, r, http.StatusCreated, t)
}

func (s *Server) handleEditTransaction(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeTransaction(w, r)
	if !ok {
		return
	}
	t, err := s.svc.EditTransaction(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, t)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	s.svc.RemoveTransaction(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}
