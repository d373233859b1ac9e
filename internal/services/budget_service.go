package services

import (
	"context"
	"fmt"

	"fintrack/internal/core"
)

// AggregateStore is the read-only surface the budget aggregator needs.
type AggregateStore interface {
	BudgetSummary(ctx context.Context, userID int64) (core.BudgetSummary, error)
	CategoryBreakdown(ctx context.Context) ([]core.CategoryBreakdown, error)
}

// BudgetService derives budget summaries from the live ledgers at request
// time; nothing is precomputed or cached.
type BudgetService struct {
	store AggregateStore
}

func NewBudgetService(store AggregateStore) *BudgetService {
	return &BudgetService{store: store}
}

// Summary totals the owner's budgets against the owner's recorded spend.
// Remaining may be negative.
func (s *BudgetService) Summary(ctx context.Context, userID int64) (core.BudgetSummary, error) {
	summary, err := s.store.BudgetSummary(ctx, userID)
	if err != nil {
		return core.BudgetSummary{}, fmt.Errorf("budget summary: %w", err)
	}
	return summary, nil
}

// CategoryBreakdown reports budget vs. spend for every category in the
// system, not just the caller's.
func (s *BudgetService) CategoryBreakdown(ctx context.Context) ([]core.CategoryBreakdown, error) {
	breakdown, err := s.store.CategoryBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	if breakdown == nil {
		breakdown = []core.CategoryBreakdown{}
	}
	return breakdown, nil
}
