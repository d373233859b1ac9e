package storage

import (
	"context"
	"fmt"

	"fintrack/internal/core"
)

// TrendRow is one (year, month, category) spend total. CategoryName and
// Budget come from a left join: a dangling category reference yields
// "Unknown" with a zero budget.
type TrendRow struct {
	Year         int
	Month        int
	CategoryName string
	Budget       core.Money
	TotalSpent   core.Money
}

// BudgetSummary totals the owner's category ceilings against the owner's
// full expense ledger. The expense total deliberately includes expenses
// whose category no longer exists, matching ledger reality.
func (r *SQLiteRepository) BudgetSummary(ctx context.Context, userID int64) (core.BudgetSummary, error) {
	var s core.BudgetSummary

	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(budget_cents), 0) FROM categories WHERE user_id = ?`,
		userID).Scan(&s.TotalBudget.Cents)
	if err != nil {
		return core.BudgetSummary{}, fmt.Errorf("sum budgets: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE user_id = ?`,
		userID).Scan(&s.TotalExpenses.Cents)
	if err != nil {
		return core.BudgetSummary{}, fmt.Errorf("sum expenses: %w", err)
	}

	s.RemainingBudget.Cents = s.TotalBudget.Cents - s.TotalExpenses.Cents
	return s, nil
}

// CategoryBreakdown reports budget vs. spend for every category in the
// system. Categories with no expenses report a zero total.
func (r *SQLiteRepository) CategoryBreakdown(ctx context.Context) ([]core.CategoryBreakdown, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.budget_cents, COALESCE(SUM(e.amount_cents), 0)
		FROM categories c
		LEFT JOIN expenses e ON e.category_id = c.id
		GROUP BY c.id, c.name, c.budget_cents`)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	defer rows.Close()

	var breakdown []core.CategoryBreakdown
	for rows.Next() {
		var b core.CategoryBreakdown
		if err := rows.Scan(&b.CategoryID, &b.CategoryName, &b.TotalBudget.Cents, &b.TotalExpense.Cents); err != nil {
			return nil, fmt.Errorf("scan breakdown row: %w", err)
		}
		b.Remaining.Cents = b.TotalBudget.Cents - b.TotalExpense.Cents
		breakdown = append(breakdown, b)
	}
	return breakdown, rows.Err()
}

// PeriodTotals groups all expenses by calendar year, and additionally by
// month for the monthly period, most recent period first. Dates are stored
// RFC 3339 so year and month sit at fixed offsets.
func (r *SQLiteRepository) PeriodTotals(ctx context.Context, period core.Period) ([]core.PeriodTotal, error) {
	var query string
	if period == core.Monthly {
		query = `
			SELECT CAST(substr(date, 1, 4) AS INTEGER) AS year,
			       CAST(substr(date, 6, 2) AS INTEGER) AS month,
			       SUM(amount_cents)
			FROM expenses
			GROUP BY year, month
			ORDER BY year DESC, month DESC`
	} else {
		query = `
			SELECT CAST(substr(date, 1, 4) AS INTEGER) AS year,
			       SUM(amount_cents)
			FROM expenses
			GROUP BY year
			ORDER BY year DESC`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("period totals: %w", err)
	}
	defer rows.Close()

	var totals []core.PeriodTotal
	for rows.Next() {
		var t core.PeriodTotal
		if period == core.Monthly {
			var month int
			if err := rows.Scan(&t.Year, &month, &t.TotalSpent.Cents); err != nil {
				return nil, fmt.Errorf("scan period row: %w", err)
			}
			t.Month = &month
		} else {
			if err := rows.Scan(&t.Year, &t.TotalSpent.Cents); err != nil {
				return nil, fmt.Errorf("scan period row: %w", err)
			}
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// TrendTotals groups all expenses by (year, month, category) with the
// category's name and budget resolved, descending by year then month.
func (r *SQLiteRepository) TrendTotals(ctx context.Context) ([]TrendRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT CAST(substr(e.date, 1, 4) AS INTEGER) AS year,
		       CAST(substr(e.date, 6, 2) AS INTEGER) AS month,
		       COALESCE(c.name, 'Unknown'),
		       COALESCE(c.budget_cents, 0),
		       SUM(e.amount_cents)
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		GROUP BY year, month, e.category_id
		ORDER BY year DESC, month DESC`)
	if err != nil {
		return nil, fmt.Errorf("trend totals: %w", err)
	}
	defer rows.Close()

	var trends []TrendRow
	for rows.Next() {
		var t TrendRow
		if err := rows.Scan(&t.Year, &t.Month, &t.CategoryName, &t.Budget.Cents, &t.TotalSpent.Cents); err != nil {
			return nil, fmt.Errorf("scan trend row: %w", err)
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}
