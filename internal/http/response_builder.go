package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// writeJSON sends v with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to encode response", log.FieldError, err)
	}
}

// writeError sends {"error": msg} with the given status.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorBody{Error: msg})
}

// writeServiceError maps a domain or decoding error to its status code.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed", log.FieldError, err)
		writeError(w, r, status, "internal error")
		return
	}
	writeError(w, r, status, err.Error())
}

// statusFor maps err to a status code. Query errors are always 400; a
// body that decodes but carries an invalid value is 422 like any other
// validation failure.
func statusFor(err error) int {
	var fe *filterError
	switch {
	case errors.As(err, &fe):
		return http.StatusBadRequest
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrTransactionNotFound), errors.Is(err, services.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrCategoryInUse):
		return http.StatusConflict
	case errors.Is(err, services.ErrUnknownCategory),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrEmptyCategoryID),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrInvalidColor),
		errors.Is(err, core.ErrDuplicateID),
		errors.Is(err, core.ErrEmptyID):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errMalformedJSON):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
