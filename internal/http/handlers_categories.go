package http

import (
	"net/http"

	"fintrack/internal/services"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.svc.Categories(r.Context()))
}

func (s *Server) decodeCategory(w http.ResponseWriter, r *http.Request) (services.CategoryInput, bool) {
	var in services.CategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeServiceError(w, r, err)
		return in, false
	}
	in.Name = sanitizeInput(in.Name)
	return in, true
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeCategory(w, r)
	if !ok {
		return
	}
	c, err := s.svc.CreateCategory(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/categories/"+c.ID)
	writeJSON(w, r, http.StatusCreated, c)
}

func (s *Server) handleEditCategory(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeCategory(w, r)
	if !ok {
		return
	}
	c, err := s.svc.EditCategory(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, c)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RemoveCategory(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
