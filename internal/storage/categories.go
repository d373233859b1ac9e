package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
)

// CreateCategory persists a new category. The (owner, name) pair must be
// unique.
func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (user_id, name, budget_cents) VALUES (?, ?, ?)`,
		c.UserID, c.Name, c.Budget.Cents)
	if err != nil {
		if isUniqueViolation(err) {
			return core.Category{}, core.ErrDuplicateCategory
		}
		return core.Category{}, fmt.Errorf("insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Category{}, fmt.Errorf("category insert id: %w", err)
	}
	c.ID = id

	slog.InfoContext(ctx, "Category created",
		"id", c.ID, "user_id", c.UserID, "name", c.Name, "budget_cents", c.Budget.Cents)
	return c, nil
}

// GetCategory returns a category owned by userID, or core.ErrCategoryNotFound.
func (r *SQLiteRepository) GetCategory(ctx context.Context, userID, id int64) (core.Category, error) {
	var c core.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, budget_cents FROM categories WHERE id = ? AND user_id = ?`,
		id, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.Budget.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.ErrCategoryNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("scan category: %w", err)
	}
	return c, nil
}

// ListCategories returns all categories owned by userID.
func (r *SQLiteRepository) ListCategories(ctx context.Context, userID int64) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, budget_cents FROM categories WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Budget.Cents); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategoryBudget sets a new ceiling for the category. The new ceiling
// must cover the category's live expense total; the comparison and the
// update happen in one transaction.
func (r *SQLiteRepository) UpdateCategoryBudget(ctx context.Context, userID, id int64, newBudget core.Money) (core.Category, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Category{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var c core.Category
	err = tx.QueryRowContext(ctx,
		`SELECT id, user_id, name, budget_cents FROM categories WHERE id = ? AND user_id = ?`,
		id, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.Budget.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.ErrCategoryNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("scan category: %w", err)
	}

	var spend int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE user_id = ? AND category_id = ?`,
		userID, id).Scan(&spend)
	if err != nil {
		return core.Category{}, fmt.Errorf("sum category spend: %w", err)
	}

	if spend > newBudget.Cents {
		return core.Category{}, core.ErrBudgetBelowSpend
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE categories SET budget_cents = ? WHERE id = ?`, newBudget.Cents, id); err != nil {
		return core.Category{}, fmt.Errorf("update budget: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Category{}, fmt.Errorf("commit budget update: %w", err)
	}

	c.Budget = newBudget
	slog.InfoContext(ctx, "Category budget updated",
		"id", id, "user_id", userID, "budget_cents", newBudget.Cents)
	return c, nil
}

// DeleteCategory removes a category with no referencing expenses.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, userID, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE id = ? AND user_id = ?`, id, userID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrCategoryNotFound
	}
	if err != nil {
		return fmt.Errorf("scan category: %w", err)
	}

	var refs int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM expenses WHERE user_id = ? AND category_id = ?`, userID, id).Scan(&refs)
	if err != nil {
		return fmt.Errorf("count category expenses: %w", err)
	}
	if refs > 0 {
		return core.ErrCategoryInUse
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit category delete: %w", err)
	}

	slog.InfoContext(ctx, "Category deleted", "id", id, "user_id", userID)
	return nil
}

// CategorySpend returns the live sum of expense amounts recorded against the
// category for the owner.
func (r *SQLiteRepository) CategorySpend(ctx context.Context, userID, categoryID int64) (core.Money, error) {
	var cents int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE user_id = ? AND category_id = ?`,
		userID, categoryID).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum category spend: %w", err)
	}
	return core.Money{Cents: cents}, nil
}
