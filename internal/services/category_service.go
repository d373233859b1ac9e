package services

import (
	"context"
	"fmt"

	"fintrack/internal/core"
)

// CategoryStore is the persistence surface the category ledger needs.
type CategoryStore interface {
	CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
	ListCategories(ctx context.Context, userID int64) ([]core.Category, error)
	UpdateCategoryBudget(ctx context.Context, userID, id int64, newBudget core.Money) (core.Category, error)
	DeleteCategory(ctx context.Context, userID, id int64) error
}

// CategoryService owns category records and their budget ceilings.
type CategoryService struct {
	store CategoryStore
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

// Create persists a new category for the owner. The (owner, name) pair must
// be unique and the budget non-negative.
func (s *CategoryService) Create(ctx context.Context, userID int64, name string, budget core.Money) (core.Category, error) {
	c := core.Category{
		UserID: userID,
		Name:   name,
		Budget: budget,
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}

	created, err := s.store.CreateCategory(ctx, c)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

// List returns all categories owned by the user.
func (s *CategoryService) List(ctx context.Context, userID int64) ([]core.Category, error) {
	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// UpdateBudget sets a new ceiling. The store rejects ceilings below the
// category's live spend.
func (s *CategoryService) UpdateBudget(ctx context.Context, userID, categoryID int64, newBudget core.Money) (core.Category, error) {
	if newBudget.Cents < 0 {
		return core.Category{}, core.ErrInvalidBudget
	}

	updated, err := s.store.UpdateCategoryBudget(ctx, userID, categoryID, newBudget)
	if err != nil {
		return core.Category{}, fmt.Errorf("update category budget: %w", err)
	}
	return updated, nil
}

// Delete removes a category with no referencing expenses.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID int64) error {
	if err := s.store.DeleteCategory(ctx, userID, categoryID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
