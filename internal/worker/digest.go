package worker

import (
	"context"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// SummaryReporter computes the current-month summary; *services.FinanceService
// satisfies it.
type SummaryReporter interface {
	CurrentMonthSummary(ctx context.Context) (core.FinanceSummary, error)
}

// Digest logs a summary of the current month.
type Digest struct {
	summaries SummaryReporter
	logger    *log.Logger
}

func NewDigest(summaries SummaryReporter, logger *log.Logger) *Digest {
	if logger == nil {
		logger = log.Discard()
	}
	return &Digest{summaries: summaries, logger: logger.WithComponent(log.ComponentDigest)}
}

// Run computes and logs the digest once.
func (d *Digest) Run(ctx context.Context) error {
	s, err := d.summaries.CurrentMonthSummary(ctx)
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to compute monthly digest",
			log.FieldOperation, log.OpSummary, log.FieldError, err)
		return fmt.Errorf("monthly digest: %w", err)
	}

	d.logger.InfoContext(ctx, "Monthly digest",
		"income", s.TotalIncome.String(),
		"expenses", s.TotalExpenses.String(),
		"balance", s.Balance.String(),
		"top_expenses", topNames(s.TopExpenseCategories),
		"top_income", topNames(s.TopIncomeCategories))
	return nil
}

func topNames(entries []core.CategorySummary) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s %s (%.2f%%)", e.CategoryName, e.Total.String(), e.Percentage))
	}
	return out
}
