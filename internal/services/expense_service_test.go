package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpenseStore struct {
	createFn func(ctx context.Context, e core.Expense) (core.Expense, error)
	updateFn func(ctx context.Context, userID, id int64, patch core.ExpensePatch) (core.Expense, error)
	deleteFn func(ctx context.Context, userID, id int64) error
	getFn    func(ctx context.Context, userID, id int64) (core.ExpenseWithCategory, error)
	listFn   func(ctx context.Context, userID int64) ([]core.ExpenseWithCategory, error)
}

func (f *fakeExpenseStore) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	return f.createFn(ctx, e)
}

func (f *fakeExpenseStore) UpdateExpense(ctx context.Context, userID, id int64, patch core.ExpensePatch) (core.Expense, error) {
	return f.updateFn(ctx, userID, id, patch)
}

func (f *fakeExpenseStore) DeleteExpense(ctx context.Context, userID, id int64) error {
	return f.deleteFn(ctx, userID, id)
}

func (f *fakeExpenseStore) GetExpense(ctx context.Context, userID, id int64) (core.ExpenseWithCategory, error) {
	return f.getFn(ctx, userID, id)
}

func (f *fakeExpenseStore) ListExpenses(ctx context.Context, userID int64) ([]core.ExpenseWithCategory, error) {
	return f.listFn(ctx, userID)
}

type fakeNotifier struct {
	events []string
	err    error
}

func (f *fakeNotifier) PublishExpenseEvent(ctx context.Context, event string, userID int64) error {
	f.events = append(f.events, event)
	return f.err
}

func TestExpenseService_CreateValidation(t *testing.T) {
	store := &fakeExpenseStore{
		createFn: func(ctx context.Context, e core.Expense) (core.Expense, error) {
			t.Fatal("store should not be reached on validation failure")
			return core.Expense{}, nil
		},
	}
	svc := NewExpenseService(store, nil)

	_, err := svc.Create(context.Background(), 1, 2, core.Money{Cents: 0}, "", time.Time{})
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = svc.Create(context.Background(), 1, 0, core.Money{Cents: 100}, "", time.Time{})
	assert.ErrorIs(t, err, core.ErrInvalidCategory)
}

func TestExpenseService_CreatePassesThroughStoreErrors(t *testing.T) {
	store := &fakeExpenseStore{
		createFn: func(ctx context.Context, e core.Expense) (core.Expense, error) {
			return core.Expense{}, core.ErrBudgetExceeded
		},
	}
	svc := NewExpenseService(store, nil)

	_, err := svc.Create(context.Background(), 1, 2, core.Money{Cents: 100}, "", time.Time{})
	assert.ErrorIs(t, err, core.ErrBudgetExceeded)
}

func TestExpenseService_UpdatePublishesEvent(t *testing.T) {
	store := &fakeExpenseStore{
		updateFn: func(ctx context.Context, userID, id int64, patch core.ExpensePatch) (core.Expense, error) {
			return core.Expense{ID: id, UserID: userID, Amount: *patch.Amount}, nil
		},
	}
	notifier := &fakeNotifier{}
	svc := NewExpenseService(store, notifier)

	amount := core.Money{Cents: 500}
	updated, err := svc.Update(context.Background(), 1, 7, core.ExpensePatch{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, int64(500), updated.Amount.Cents)
	assert.Equal(t, []string{amqp.EventExpenseUpdated}, notifier.events)
}

func TestExpenseService_UpdateFailureDoesNotPublish(t *testing.T) {
	store := &fakeExpenseStore{
		updateFn: func(ctx context.Context, userID, id int64, patch core.ExpensePatch) (core.Expense, error) {
			return core.Expense{}, core.ErrExpenseNotFound
		},
	}
	notifier := &fakeNotifier{}
	svc := NewExpenseService(store, notifier)

	desc := "coffee"
	_, err := svc.Update(context.Background(), 1, 7, core.ExpensePatch{Description: &desc})
	assert.ErrorIs(t, err, core.ErrExpenseNotFound)
	assert.Empty(t, notifier.events)
}

func TestExpenseService_DeletePublishesEvent(t *testing.T) {
	store := &fakeExpenseStore{
		deleteFn: func(ctx context.Context, userID, id int64) error { return nil },
	}
	notifier := &fakeNotifier{}
	svc := NewExpenseService(store, notifier)

	require.NoError(t, svc.Delete(context.Background(), 1, 7))
	assert.Equal(t, []string{amqp.EventExpenseDeleted}, notifier.events)
}

func TestExpenseService_PublishFailureIsSwallowed(t *testing.T) {
	store := &fakeExpenseStore{
		deleteFn: func(ctx context.Context, userID, id int64) error { return nil },
	}
	notifier := &fakeNotifier{err: errors.New("broker down")}
	svc := NewExpenseService(store, notifier)

	// Notification delivery must never gate the primary write
	assert.NoError(t, svc.Delete(context.Background(), 1, 7))
}

func TestExpenseService_NilNotifier(t *testing.T) {
	store := &fakeExpenseStore{
		deleteFn: func(ctx context.Context, userID, id int64) error { return nil },
	}
	svc := NewExpenseService(store, nil)

	assert.NoError(t, svc.Delete(context.Background(), 1, 7))
}
