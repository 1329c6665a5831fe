// Package http provides the JSON API over the finance service.
//
// This file holds the request decoding helpers: query filters and
// size-limited JSON bodies.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fintrack/internal/core"
)

// maxBodyBytes bounds JSON request bodies, including PUT /api/state.
const maxBodyBytes = 4 << 20

var (
	errMalformedJSON = errors.New("malformed JSON body")
	errBodyTooLarge  = errors.New("request body too large")
)

// filterError is a query parameter that could not be parsed.
type filterError struct {
	param string
	err   error
}

func (e *filterError) Error() string { return fmt.Sprintf("invalid %s: %v", e.param, e.err) }
func (e *filterError) Unwrap() error { return e.err }

// ParseFilters reads transaction filters from the query string:
// startDate, endDate, type, categoryId, minAmount, maxAmount, q.
// month=current narrows the range to the month containing now.
func ParseFilters(query url.Values, now time.Time) (core.TransactionFilters, error) {
	var f core.TransactionFilters

	if v := strings.TrimSpace(query.Get("startDate")); v != "" {
		d := core.Date(v)
		if err := d.Validate(); err != nil {
			return f, &filterError{"startDate", err}
		}
		f.StartDate = d
	}
	if v := strings.TrimSpace(query.Get("endDate")); v != "" {
		d := core.Date(v)
		if err := d.Validate(); err != nil {
			return f, &filterError{"endDate", err}
		}
		f.EndDate = d
	}
	if v := strings.TrimSpace(query.Get("type")); v != "" {
		tt := core.TransactionType(v)
		if err := tt.Validate(); err != nil {
			return f, &filterError{"type", err}
		}
		f.Type = tt
	}
	f.CategoryID = strings.TrimSpace(query.Get("categoryId"))
	f.SearchTerm = sanitizeInput(query.Get("q"))

	var err error
	if f.MinAmount, err = parseAmountParam(query, "minAmount"); err != nil {
		return f, err
	}
	if f.MaxAmount, err = parseAmountParam(query, "maxAmount"); err != nil {
		return f, err
	}

	switch strings.ToLower(strings.TrimSpace(query.Get("month"))) {
	case "":
	case "current":
		first, last := core.MonthBounds(now)
		if f.StartDate < first {
			f.StartDate = first
		}
		if f.EndDate == "" || f.EndDate > last {
			f.EndDate = last
		}
	default:
		return f, &filterError{"month", errors.New("only 'current' is supported")}
	}

	return f, nil
}

func parseAmountParam(query url.Values, name string) (*core.Money, error) {
	v := strings.TrimSpace(query.Get(name))
	if v == "" {
		return nil, nil
	}
	cents, err := core.ParseDecimalToCents(v)
	if err != nil {
		return nil, &filterError{name, err}
	}
	m := core.Cents(cents)
	return &m, nil
}

// decodeJSON reads one JSON value from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return fmt.Errorf("%w: %w", errMalformedJSON, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("%w: trailing data after JSON value", errMalformedJSON)
	}
	return nil
}
