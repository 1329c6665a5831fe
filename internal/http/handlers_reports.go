package http

import (
	"net/http"
	"strings"

	"fintrack/internal/core"
)

// summaryResponse is a FinanceSummary plus the income/expense ratio.
type summaryResponse struct {
	core.FinanceSummary
	IncomeExpenseRatio float64 `json:"incomeExpenseRatio"`
}

// chartResponse is the category distribution of one transaction type.
type chartResponse struct {
	Type     core.TransactionType     `json:"type"`
	Entries  []core.DistributionEntry `json:"entries"`
	Segments []core.Segment           `json:"segments"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	f, ok := s.filters(w, r)
	if !ok {
		return
	}
	summary, err := s.svc.Summary(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summaryResponse{
		FinanceSummary:     summary,
		IncomeExpenseRatio: core.IncomeExpenseRatio(summary),
	})
}

// handleChart serves GET /api/chart?type=expense|income. The type
// parameter picks the distribution; the other filters narrow the input.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	tt := core.TransactionType(strings.TrimSpace(query.Get("type")))
	if tt == "" {
		tt = core.Expense
	}
	if err := tt.Validate(); err != nil {
		writeServiceError(w, r, &filterError{"type", err})
		return
	}
	query.Del("type")

	f, err := ParseFilters(query, s.svc.Now())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	entries, segments, err := s.svc.Chart(r.Context(), tt, f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, chartResponse{Type: tt, Entries: entries, Segments: segments})
}
