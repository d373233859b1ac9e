package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/core"
)

const expenseWithCategoryQuery = `
	SELECT e.id, e.user_id, e.category_id, e.amount_cents, e.description,
	       e.date, e.created_at, e.updated_at,
	       COALESCE(c.name, 'Unknown'), COALESCE(c.budget_cents, 0)
	FROM expenses e
	LEFT JOIN categories c ON c.id = e.category_id`

// CreateExpense persists a new expense after re-checking the budget ceiling
// against the live category spend. The check and the insert run in one
// transaction so two concurrent creations cannot jointly overshoot the
// ceiling.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if e.Date.IsZero() {
		e.Date = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Expense{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var budget int64
	err = tx.QueryRowContext(ctx,
		`SELECT budget_cents FROM categories WHERE id = ? AND user_id = ?`,
		e.CategoryID, e.UserID).Scan(&budget)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ErrInvalidCategory
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("scan category budget: %w", err)
	}

	var spend int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE user_id = ? AND category_id = ?`,
		e.UserID, e.CategoryID).Scan(&spend)
	if err != nil {
		return core.Expense{}, fmt.Errorf("sum category spend: %w", err)
	}

	if spend+e.Amount.Cents > budget {
		return core.Expense{}, core.ErrBudgetExceeded
	}

	now := time.Now()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (user_id, category_id, amount_cents, description, date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.CategoryID, e.Amount.Cents, e.Description,
		formatTime(e.Date), formatTime(now), formatTime(now))
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("expense insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Expense{}, fmt.Errorf("commit expense insert: %w", err)
	}

	e.ID = id
	e.CreatedAt = now
	e.UpdatedAt = now

	slog.InfoContext(ctx, "Expense created",
		"id", e.ID, "user_id", e.UserID, "category_id", e.CategoryID, "amount_cents", e.Amount.Cents)
	return e, nil
}

// UpdateExpense applies the present patch fields. When the amount changes
// the ceiling is re-checked excluding the expense's own prior amount, inside
// the same transaction that writes the new values.
func (r *SQLiteRepository) UpdateExpense(ctx context.Context, userID, id int64, patch core.ExpensePatch) (core.Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Expense{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var e core.Expense
	var dateStr, createdAt, updatedAt string
	err = tx.QueryRowContext(ctx,
		`SELECT id, user_id, category_id, amount_cents, description, date, created_at, updated_at
		 FROM expenses WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Amount.Cents, &e.Description, &dateStr, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ErrExpenseNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}
	e.Date = parseTime(dateStr)
	e.CreatedAt = parseTime(createdAt)

	if patch.Amount != nil {
		var budget int64
		err = tx.QueryRowContext(ctx,
			`SELECT budget_cents FROM categories WHERE id = ?`, e.CategoryID).Scan(&budget)
		if errors.Is(err, sql.ErrNoRows) {
			return core.Expense{}, core.ErrInvalidCategory
		}
		if err != nil {
			return core.Expense{}, fmt.Errorf("scan category budget: %w", err)
		}

		var spend int64
		err = tx.QueryRowContext(ctx,
			`SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE user_id = ? AND category_id = ?`,
			userID, e.CategoryID).Scan(&spend)
		if err != nil {
			return core.Expense{}, fmt.Errorf("sum category spend: %w", err)
		}

		// Exclude the expense's own prior amount from the check
		if spend-e.Amount.Cents+patch.Amount.Cents > budget {
			return core.Expense{}, core.ErrBudgetExceeded
		}
		e.Amount = *patch.Amount
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx,
		`UPDATE expenses SET amount_cents = ?, description = ?, date = ?, updated_at = ? WHERE id = ?`,
		e.Amount.Cents, e.Description, formatTime(e.Date), formatTime(now), e.ID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Expense{}, fmt.Errorf("commit expense update: %w", err)
	}

	e.UpdatedAt = now
	slog.InfoContext(ctx, "Expense updated",
		"id", e.ID, "user_id", userID, "amount_cents", e.Amount.Cents)
	return e, nil
}

// DeleteExpense removes an owned expense, or returns core.ErrExpenseNotFound.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrExpenseNotFound
	}
	slog.InfoContext(ctx, "Expense deleted", "id", id, "user_id", userID)
	return nil
}

// GetExpense returns an owned expense with its category's name and budget
// resolved, or core.ErrExpenseNotFound.
func (r *SQLiteRepository) GetExpense(ctx context.Context, userID, id int64) (core.ExpenseWithCategory, error) {
	row := r.db.QueryRowContext(ctx,
		expenseWithCategoryQuery+` WHERE e.id = ? AND e.user_id = ?`, id, userID)

	e, err := scanExpenseWithCategory(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ExpenseWithCategory{}, core.ErrExpenseNotFound
	}
	if err != nil {
		return core.ExpenseWithCategory{}, fmt.Errorf("scan expense: %w", err)
	}
	return e, nil
}

// ListExpenses returns all of the owner's expenses with resolved category
// details, most recent occurrence date first.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, userID int64) ([]core.ExpenseWithCategory, error) {
	rows, err := r.db.QueryContext(ctx,
		expenseWithCategoryQuery+` WHERE e.user_id = ? ORDER BY e.date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.ExpenseWithCategory
	for rows.Next() {
		e, err := scanExpenseWithCategory(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func scanExpenseWithCategory(scan func(...any) error) (core.ExpenseWithCategory, error) {
	var e core.ExpenseWithCategory
	var dateStr, createdAt, updatedAt string
	err := scan(&e.ID, &e.UserID, &e.CategoryID, &e.Amount.Cents, &e.Description,
		&dateStr, &createdAt, &updatedAt, &e.CategoryName, &e.CategoryBudget.Cents)
	if err != nil {
		return core.ExpenseWithCategory{}, err
	}
	e.Date = parseTime(dateStr)
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return e, nil
}
