package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// envelope is the uniform JSON response shape.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// respondError maps a domain error to its HTTP status. Unexpected errors are
// logged and reported as an opaque 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			log.FieldMethod, r.Method, log.FieldPath, r.URL.Path, log.FieldError, err)
		writeJSON(w, status, envelope{Success: false, Message: "internal server error"})
		return
	}
	writeJSON(w, status, envelope{Success: false, Message: rootMessage(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrCategoryNotFound),
		errors.Is(err, core.ErrExpenseNotFound),
		errors.Is(err, core.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidBudget),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrEmptyEmail),
		errors.Is(err, core.ErrEmptyPassword),
		errors.Is(err, core.ErrNameTooLong),
		errors.Is(err, core.ErrDescTooLong),
		errors.Is(err, core.ErrInvalidPeriod),
		errors.Is(err, core.ErrInvalidFormat),
		errors.Is(err, core.ErrDuplicateCategory),
		errors.Is(err, core.ErrDuplicateEmail),
		errors.Is(err, core.ErrInvalidCategory),
		errors.Is(err, core.ErrBudgetExceeded),
		errors.Is(err, core.ErrBudgetBelowSpend),
		errors.Is(err, core.ErrCategoryInUse):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// rootMessage unwraps the error chain to the sentinel so clients see the
// domain message without internal wrapping prefixes.
func rootMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}

// DTOs returned by the API. Money renders as a decimal string via its
// MarshalJSON; dates as RFC 3339.

type userDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserDTO(u core.User) userDTO {
	return userDTO{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

type categoryDTO struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	Budget core.Money `json:"budget"`
}

func toCategoryDTO(c core.Category) categoryDTO {
	return categoryDTO{ID: c.ID, Name: c.Name, Budget: c.Budget}
}

type expenseDTO struct {
	ID          int64      `json:"id"`
	CategoryID  int64      `json:"categoryId"`
	Category    string     `json:"category,omitempty"`
	Amount      core.Money `json:"amount"`
	Budget      core.Money `json:"budget"`
	Description string     `json:"description,omitempty"`
	Date        time.Time  `json:"date"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toExpenseDTO(e core.ExpenseWithCategory) expenseDTO {
	return expenseDTO{
		ID:          e.ID,
		CategoryID:  e.CategoryID,
		Category:    e.CategoryName,
		Amount:      e.Amount,
		Budget:      e.CategoryBudget,
		Description: e.Description,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
