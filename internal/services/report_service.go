package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"fintrack/internal/core"

	"github.com/jung-kurt/gofpdf"
)

// Report formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// ExpenseReader is the read surface the report exporter needs.
type ExpenseReader interface {
	ListExpenses(ctx context.Context, userID int64) ([]core.ExpenseWithCategory, error)
}

// ReportService renders an owner's expense history to a downloadable
// document: an in-memory CSV buffer, or a PDF artifact persisted under the
// reports directory keyed by the owner's id.
type ReportService struct {
	store      ExpenseReader
	reportsDir string
}

func NewReportService(store ExpenseReader, reportsDir string) *ReportService {
	return &ReportService{
		store:      store,
		reportsDir: reportsDir,
	}
}

// ExportCSV renders the owner's expenses as a flat table with columns
// category, amount, budget, date.
func (s *ReportService) ExportCSV(ctx context.Context, userID int64) ([]byte, error) {
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list expenses: %v", core.ErrReportGeneration, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"category", "amount", "budget", "date"}}
	for _, e := range expenses {
		records = append(records, []string{
			e.CategoryName,
			e.Amount.String(),
			e.CategoryBudget.String(),
			e.Date.UTC().Format(time.RFC3339),
		})
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("%w: write csv: %v", core.ErrReportGeneration, err)
	}

	slog.InfoContext(ctx, "CSV report generated", "user_id", userID, "rows", len(expenses))
	return buf.Bytes(), nil
}

// ExportPDF renders the owner's expenses as a paginated document and writes
// it to <reportsDir>/expense_report_<userID>.pdf, returning the path.
func (s *ReportService) ExportPDF(ctx context.Context, userID int64) (string, error) {
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%w: list expenses: %v", core.ErrReportGeneration, err)
	}

	if err := os.MkdirAll(s.reportsDir, 0755); err != nil {
		return "", fmt.Errorf("%w: create reports directory: %v", core.ErrReportGeneration, err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Expense Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	for _, e := range expenses {
		pdf.CellFormat(0, 6, "Category: "+e.CategoryName, "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, "Amount: "+e.Amount.String(), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, "Budget: "+e.CategoryBudget.String(), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, "Date: "+e.Date.UTC().Format(time.RFC3339), "", 1, "L", false, 0, "")
		pdf.Ln(4)
	}

	path := filepath.Join(s.reportsDir, "expense_report_"+strconv.FormatInt(userID, 10)+".pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("%w: write pdf: %v", core.ErrReportGeneration, err)
	}

	slog.InfoContext(ctx, "PDF report generated", "user_id", userID, "path", path, "expenses", len(expenses))
	return path, nil
}
