package http

import (
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}

	var req struct {
		CategoryID  int64      `json:"categoryId"`
		Amount      core.Money `json:"amount"`
		Description string     `json:"description"`
		Date        string     `json:"date"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: err.Error()})
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "invalid date"})
			return
		}
		date = parsed
	}

	created, err := s.expenses.Create(r.Context(), userID, req.CategoryID, req.Amount, req.Description, date)
	if err != nil {
		respondError(w, r, err)
		return
	}

	// Re-read so the response carries the resolved category name and budget.
	expense, err := s.expenses.Get(r.Context(), userID, created.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, toExpenseDTO(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}

	expenses, err := s.expenses.List(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	dtos := make([]expenseDTO, 0, len(expenses))
	for _, e := range expenses {
		dtos = append(dtos, toExpenseDTO(e))
	}
	respondData(w, http.StatusOK, dtos)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}
	expenseID, ok := pathID(r)
	if !ok {
		respondError(w, r, core.ErrExpenseNotFound)
		return
	}

	expense, err := s.expenses.Get(r.Context(), userID, expenseID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, toExpenseDTO(expense))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}
	expenseID, ok := pathID(r)
	if !ok {
		respondError(w, r, core.ErrExpenseNotFound)
		return
	}

	var req struct {
		Amount      *core.Money `json:"amount"`
		Description *string     `json:"description"`
		Date        *string     `json:"date"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: err.Error()})
		return
	}

	patch := core.ExpensePatch{
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "invalid date"})
			return
		}
		patch.Date = &parsed
	}

	if _, err := s.expenses.Update(r.Context(), userID, expenseID, patch); err != nil {
		respondError(w, r, err)
		return
	}

	expense, err := s.expenses.Get(r.Context(), userID, expenseID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, toExpenseDTO(expense))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}
	expenseID, ok := pathID(r)
	if !ok {
		respondError(w, r, core.ErrExpenseNotFound)
		return
	}

	if err := s.expenses.Delete(r.Context(), userID, expenseID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"message": "expense deleted"})
}

// handleExpenseReport streams a CSV export or writes a PDF artifact and
// returns its path.
func (s *Server) handleExpenseReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case services.FormatCSV:
		data, err := s.reports.ExportCSV(r.Context(), userID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="expense_report_`+strconv.FormatInt(userID, 10)+`.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	case services.FormatPDF:
		path, err := s.reports.ExportPDF(r.Context(), userID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		s.logger.WithComponent(log.ComponentReport).InfoContext(r.Context(), "Report written",
			log.FieldUserID, userID, log.FieldFormat, format, log.FieldPath, path)
		respondData(w, http.StatusOK, map[string]string{"path": path})
	default:
		respondError(w, r, core.ErrInvalidFormat)
	}
}
