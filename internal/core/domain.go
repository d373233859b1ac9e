package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

type (
	// Period selects the grouping granularity for spending summaries.
	Period string

	// User is an authenticated account. PasswordHash never leaves the
	// service layer.
	User struct {
		ID           int64
		Name         string
		Email        string
		PasswordHash string
		CreatedAt    time.Time
		UpdatedAt    time.Time
	}

	// Category is a spending bucket with a budget ceiling, owned by one user.
	Category struct {
		ID     int64
		UserID int64
		Name   string
		Budget Money
	}

	// Expense is a single recorded spend against a category.
	Expense struct {
		ID          int64
		UserID      int64
		CategoryID  int64
		Amount      Money
		Description string
		Date        time.Time
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	// ExpenseWithCategory is an expense joined with its category's name and
	// budget for read paths.
	ExpenseWithCategory struct {
		Expense
		CategoryName   string
		CategoryBudget Money
	}

	// ExpensePatch carries the optional fields of a partial expense update.
	// Nil fields are left untouched.
	ExpensePatch struct {
		Amount      *Money
		Description *string
		Date        *time.Time
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidBudget = errors.New("invalid budget")
	ErrEmptyName     = errors.New("empty name")
	ErrEmptyEmail    = errors.New("invalid email")
	ErrEmptyPassword = errors.New("empty password")
	ErrNameTooLong   = errors.New("name too long (max 100 characters)")
	ErrDescTooLong   = errors.New("description too long (max 200 characters)")
	ErrInvalidPeriod = errors.New("invalid period: use 'monthly' or 'yearly'")
	ErrInvalidFormat = errors.New("invalid report format: use 'csv' or 'pdf'")

	ErrDuplicateCategory = errors.New("category already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrBudgetExceeded    = errors.New("expense exceeds category budget")
	ErrBudgetBelowSpend  = errors.New("new budget must be greater than current expenses")
	ErrCategoryInUse     = errors.New("cannot delete category with existing expenses")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrReportGeneration  = errors.New("report generation failed")
)

// Validate checks the period value.
func (p Period) Validate() error {
	switch p {
	case Monthly, Yearly:
		return nil
	}
	return ErrInvalidPeriod
}

// Validate checks category fields before any write.
func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > 100 {
		return ErrNameTooLong
	}
	if c.Budget.Cents < 0 {
		return ErrInvalidBudget
	}
	return nil
}

// Validate checks expense fields before any write. The date may be zero, in
// which case the write path defaults it to the current time.
func (e Expense) Validate() error {
	if e.CategoryID <= 0 {
		return ErrInvalidCategory
	}
	if e.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if len(e.Description) > 200 {
		return ErrDescTooLong
	}
	return nil
}

// Validate checks the patch fields that are present.
func (p ExpensePatch) Validate() error {
	if p.Amount != nil && p.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if p.Description != nil && len(*p.Description) > 200 {
		return ErrDescTooLong
	}
	return nil
}

// Empty reports whether the patch carries no fields at all.
func (p ExpensePatch) Empty() bool {
	return p.Amount == nil && p.Description == nil && p.Date == nil
}

// Validate checks user registration fields.
func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(u.Email) == "" || !strings.Contains(u.Email, "@") {
		return ErrEmptyEmail
	}
	return nil
}
