package http

import (
	"net/http"

	"fintrack/internal/core"
)

func (s *Server) handleBudgetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}

	summary, err := s.budget.Summary(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, summary)
}

func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := s.budget.CategoryBreakdown(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, breakdown)
}

func (s *Server) handlePeriodSummary(w http.ResponseWriter, r *http.Request) {
	period := core.Period(r.URL.Query().Get("period"))

	totals, err := s.analytics.PeriodSummary(r.Context(), period)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, totals)
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := s.analytics.Trends(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, trends)
}
