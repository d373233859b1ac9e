package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
)

// ExpenseStore is the persistence surface the expense ledger needs. The
// store enforces the budget ceiling inside its own transaction.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	UpdateExpense(ctx context.Context, userID, id int64, patch core.ExpensePatch) (core.Expense, error)
	DeleteExpense(ctx context.Context, userID, id int64) error
	GetExpense(ctx context.Context, userID, id int64) (core.ExpenseWithCategory, error)
	ListExpenses(ctx context.Context, userID int64) ([]core.ExpenseWithCategory, error)
}

// Notifier is a publish-only change-notification capability.
type Notifier interface {
	PublishExpenseEvent(ctx context.Context, event string, userID int64) error
}

// ExpenseService orchestrates budget-checked expense writes and fire-and-
// forget change notifications.
type ExpenseService struct {
	store    ExpenseStore
	notifier Notifier
}

func NewExpenseService(store ExpenseStore, notifier Notifier) *ExpenseService {
	return &ExpenseService{
		store:    store,
		notifier: notifier,
	}
}

// Create validates and persists a new expense. The date defaults to the
// current time when omitted; the budget ceiling is enforced by the store.
func (s *ExpenseService) Create(ctx context.Context, userID, categoryID int64, amount core.Money, description string, date time.Time) (core.Expense, error) {
	e := core.Expense{
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
		Date:        date,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	created, err := s.store.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	return created, nil
}

// Update applies the present patch fields, re-validating the ceiling when
// the amount changes, then notifies consumers of the change.
func (s *ExpenseService) Update(ctx context.Context, userID, expenseID int64, patch core.ExpensePatch) (core.Expense, error) {
	if err := patch.Validate(); err != nil {
		return core.Expense{}, err
	}

	updated, err := s.store.UpdateExpense(ctx, userID, expenseID, patch)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	s.publishEvent(ctx, amqp.EventExpenseUpdated, userID)
	return updated, nil
}

// Delete removes an owned expense and notifies consumers of the change.
func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID int64) error {
	if err := s.store.DeleteExpense(ctx, userID, expenseID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	s.publishEvent(ctx, amqp.EventExpenseDeleted, userID)
	return nil
}

// Get returns an owned expense with its category's name and budget resolved.
func (s *ExpenseService) Get(ctx context.Context, userID, expenseID int64) (core.ExpenseWithCategory, error) {
	e, err := s.store.GetExpense(ctx, userID, expenseID)
	if err != nil {
		return core.ExpenseWithCategory{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// List returns all of the owner's expenses, most recent occurrence first.
func (s *ExpenseService) List(ctx context.Context, userID int64) ([]core.ExpenseWithCategory, error) {
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// publishEvent is fire and forget: a failed publish is logged and never
// surfaced to the caller.
func (s *ExpenseService) publishEvent(ctx context.Context, event string, userID int64) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishExpenseEvent(ctx, event, userID); err != nil {
		slog.WarnContext(ctx, "Failed to publish expense event",
			"event", event, "user_id", userID, "error", err)
	}
}
