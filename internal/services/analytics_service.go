package services

import (
	"context"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// TrendStore is the read-only surface the spending analyzer needs.
type TrendStore interface {
	PeriodTotals(ctx context.Context, period core.Period) ([]core.PeriodTotal, error)
	TrendTotals(ctx context.Context) ([]storage.TrendRow, error)
}

// AnalyticsService groups expenses by calendar period and by category to
// surface spending trends with overspend suggestions.
type AnalyticsService struct {
	store TrendStore
}

func NewAnalyticsService(store TrendStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// PeriodSummary sums all expenses per calendar year, additionally per month
// for the monthly period. Entries come back most recent period first.
func (s *AnalyticsService) PeriodSummary(ctx context.Context, period core.Period) ([]core.PeriodTotal, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	totals, err := s.store.PeriodTotals(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("period summary: %w", err)
	}
	if totals == nil {
		totals = []core.PeriodTotal{}
	}
	return totals, nil
}

// Trends reports per-(year, month, category) spend with a suggestion. A
// group whose category can no longer be resolved is named "Unknown" and
// treated as budget zero, so it always reads as overspending.
func (s *AnalyticsService) Trends(ctx context.Context) ([]core.TrendEntry, error) {
	rows, err := s.store.TrendTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("spending trends: %w", err)
	}

	entries := make([]core.TrendEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, core.TrendEntry{
			Year:       row.Year,
			Month:      row.Month,
			Category:   row.CategoryName,
			TotalSpent: row.TotalSpent,
			Suggestion: suggestionFor(row),
		})
	}
	return entries, nil
}

func suggestionFor(row storage.TrendRow) string {
	if row.TotalSpent.Cents > row.Budget.Cents {
		return fmt.Sprintf("You are overspending on %s", row.CategoryName)
	}
	return fmt.Sprintf("You're within budget for %s", row.CategoryName)
}
