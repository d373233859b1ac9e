package services

import (
	"context"
	"testing"

	"fintrack/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryStore struct {
	createFn func(ctx context.Context, c core.Category) (core.Category, error)
	listFn   func(ctx context.Context, userID int64) ([]core.Category, error)
	updateFn func(ctx context.Context, userID, id int64, newBudget core.Money) (core.Category, error)
	deleteFn func(ctx context.Context, userID, id int64) error
}

func (f *fakeCategoryStore) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	return f.createFn(ctx, c)
}

func (f *fakeCategoryStore) ListCategories(ctx context.Context, userID int64) ([]core.Category, error) {
	return f.listFn(ctx, userID)
}

func (f *fakeCategoryStore) UpdateCategoryBudget(ctx context.Context, userID, id int64, newBudget core.Money) (core.Category, error) {
	return f.updateFn(ctx, userID, id, newBudget)
}

func (f *fakeCategoryStore) DeleteCategory(ctx context.Context, userID, id int64) error {
	return f.deleteFn(ctx, userID, id)
}

func TestCategoryService_CreateValidation(t *testing.T) {
	store := &fakeCategoryStore{
		createFn: func(ctx context.Context, c core.Category) (core.Category, error) {
			t.Fatal("store should not be reached on validation failure")
			return core.Category{}, nil
		},
	}
	svc := NewCategoryService(store)

	_, err := svc.Create(context.Background(), 1, "  ", core.Money{Cents: 100})
	assert.ErrorIs(t, err, core.ErrEmptyName)

	_, err = svc.Create(context.Background(), 1, "Food", core.Money{Cents: -1})
	assert.ErrorIs(t, err, core.ErrInvalidBudget)
}

func TestCategoryService_CreatePassesThroughDuplicate(t *testing.T) {
	store := &fakeCategoryStore{
		createFn: func(ctx context.Context, c core.Category) (core.Category, error) {
			return core.Category{}, core.ErrDuplicateCategory
		},
	}
	svc := NewCategoryService(store)

	_, err := svc.Create(context.Background(), 1, "Food", core.Money{Cents: 100})
	assert.ErrorIs(t, err, core.ErrDuplicateCategory)
}

func TestCategoryService_CreateZeroBudgetAllowed(t *testing.T) {
	store := &fakeCategoryStore{
		createFn: func(ctx context.Context, c core.Category) (core.Category, error) {
			c.ID = 42
			return c, nil
		},
	}
	svc := NewCategoryService(store)

	created, err := svc.Create(context.Background(), 1, "Misc", core.Money{Cents: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, int64(0), created.Budget.Cents)
}

func TestCategoryService_UpdateBudgetRejectsNegative(t *testing.T) {
	store := &fakeCategoryStore{
		updateFn: func(ctx context.Context, userID, id int64, newBudget core.Money) (core.Category, error) {
			t.Fatal("store should not be reached for a negative budget")
			return core.Category{}, nil
		},
	}
	svc := NewCategoryService(store)

	_, err := svc.UpdateBudget(context.Background(), 1, 2, core.Money{Cents: -100})
	assert.ErrorIs(t, err, core.ErrInvalidBudget)
}

func TestCategoryService_UpdateBudgetPassesThroughBelowSpend(t *testing.T) {
	store := &fakeCategoryStore{
		updateFn: func(ctx context.Context, userID, id int64, newBudget core.Money) (core.Category, error) {
			return core.Category{}, core.ErrBudgetBelowSpend
		},
	}
	svc := NewCategoryService(store)

	_, err := svc.UpdateBudget(context.Background(), 1, 2, core.Money{Cents: 100})
	assert.ErrorIs(t, err, core.ErrBudgetBelowSpend)
}

func TestCategoryService_DeletePassesThroughInUse(t *testing.T) {
	store := &fakeCategoryStore{
		deleteFn: func(ctx context.Context, userID, id int64) error {
			return core.ErrCategoryInUse
		},
	}
	svc := NewCategoryService(store)

	err := svc.Delete(context.Background(), 1, 2)
	assert.ErrorIs(t, err, core.ErrCategoryInUse)
}

func TestCategoryService_List(t *testing.T) {
	store := &fakeCategoryStore{
		listFn: func(ctx context.Context, userID int64) ([]core.Category, error) {
			return []core.Category{
				{ID: 1, UserID: userID, Name: "Food", Budget: core.Money{Cents: 10000}},
				{ID: 2, UserID: userID, Name: "Rent", Budget: core.Money{Cents: 90000}},
			}, nil
		},
	}
	svc := NewCategoryService(store)

	categories, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Food", categories[0].Name)
}
