package core

import (
	"errors"
	"strings"
	"testing"
)

func TestCategoryValidate(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		wantErr  error
	}{
		{
			name:     "valid",
			category: Category{Name: "Groceries", Budget: Money{Cents: 10000}},
		},
		{
			name:     "zero budget is valid",
			category: Category{Name: "Misc", Budget: Money{Cents: 0}},
		},
		{
			name:     "empty name",
			category: Category{Name: "  ", Budget: Money{Cents: 100}},
			wantErr:  ErrEmptyName,
		},
		{
			name:     "negative budget",
			category: Category{Name: "Travel", Budget: Money{Cents: -1}},
			wantErr:  ErrInvalidBudget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.category.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCategoryValidate_NameTooLong(t *testing.T) {
	c := Category{Name: strings.Repeat("x", 101), Budget: Money{Cents: 100}}
	if err := c.Validate(); err == nil {
		t.Fatal("Validate() should reject names over 100 characters")
	}
}

func TestExpenseValidate(t *testing.T) {
	tests := []struct {
		name    string
		expense Expense
		wantErr error
	}{
		{
			name:    "valid",
			expense: Expense{CategoryID: 1, Amount: Money{Cents: 500}},
		},
		{
			name:    "missing category",
			expense: Expense{Amount: Money{Cents: 500}},
			wantErr: ErrInvalidCategory,
		},
		{
			name:    "zero amount",
			expense: Expense{CategoryID: 1, Amount: Money{Cents: 0}},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			expense: Expense{CategoryID: 1, Amount: Money{Cents: -100}},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.expense.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpensePatch(t *testing.T) {
	if !(ExpensePatch{}).Empty() {
		t.Error("zero patch should be empty")
	}

	amount := Money{Cents: -5}
	p := ExpensePatch{Amount: &amount}
	if p.Empty() {
		t.Error("patch with amount should not be empty")
	}
	if !errors.Is(p.Validate(), ErrInvalidAmount) {
		t.Error("negative patch amount should be rejected")
	}
}

func TestPeriodValidate(t *testing.T) {
	if err := Monthly.Validate(); err != nil {
		t.Errorf("monthly should be valid: %v", err)
	}
	if err := Yearly.Validate(); err != nil {
		t.Errorf("yearly should be valid: %v", err)
	}
	if err := Period("weekly").Validate(); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("weekly should be rejected, got %v", err)
	}
}

func TestUserValidate(t *testing.T) {
	valid := User{Name: "Ada", Email: "ada@example.com"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if err := (User{Email: "a@b.c"}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Error("missing name should be rejected")
	}
	if err := (User{Name: "Ada", Email: "not-an-email"}).Validate(); !errors.Is(err, ErrEmptyEmail) {
		t.Error("malformed email should be rejected")
	}
}
