package core

// BudgetSummary totals an owner's budgets against their spend.
// Remaining may be negative when recorded spend exceeds the ceilings.
type BudgetSummary struct {
	TotalBudget     Money `json:"totalBudget"`
	TotalExpenses   Money `json:"totalExpenses"`
	RemainingBudget Money `json:"remainingBudget"`
}

// CategoryBreakdown is the per-category budget-vs-spend view.
type CategoryBreakdown struct {
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	TotalBudget  Money  `json:"totalBudget"`
	TotalExpense Money  `json:"totalExpense"`
	Remaining    Money  `json:"remaining"`
}

// PeriodTotal is the spend aggregated over one calendar period.
// Month is nil for yearly grouping.
type PeriodTotal struct {
	Year       int   `json:"year"`
	Month      *int  `json:"month,omitempty"`
	TotalSpent Money `json:"totalSpent"`
}

// TrendEntry is a (year, month, category) spend total with an overspend
// suggestion.
type TrendEntry struct {
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Category   string `json:"category"`
	TotalSpent Money  `json:"totalSpent"`
	Suggestion string `json:"suggestion"`
}
