package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/core"
)

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseBudgetField parses a JSON budget field, accepting a quoted decimal or
// a bare number. Parse failures report the budget error kind, not the amount
// one. A missing field is a zero budget.
func parseBudgetField(raw json.RawMessage) (core.Money, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return core.Money{}, nil
	}
	return core.ParseBudget(strings.Trim(string(raw), `"`))
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}

	var req struct {
		Name   string          `json:"name"`
		Budget json.RawMessage `json:"budget"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: err.Error()})
		return
	}

	budget, err := parseBudgetField(req.Budget)
	if err != nil {
		respondError(w, r, err)
		return
	}

	category, err := s.categories.Create(r.Context(), userID, req.Name, budget)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, toCategoryDTO(category))
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}

	categories, err := s.categories.List(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	dtos := make([]categoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, toCategoryDTO(c))
	}
	respondData(w, http.StatusOK, dtos)
}

func (s *Server) handleUpdateCategoryBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}
	categoryID, ok := pathID(r)
	if !ok {
		respondError(w, r, core.ErrCategoryNotFound)
		return
	}

	var req struct {
		Budget json.RawMessage `json:"budget"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: err.Error()})
		return
	}

	budget, err := parseBudgetField(req.Budget)
	if err != nil {
		respondError(w, r, err)
		return
	}

	category, err := s.categories.UpdateBudget(r.Context(), userID, categoryID, budget)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, toCategoryDTO(category))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}
	categoryID, ok := pathID(r)
	if !ok {
		respondError(w, r, core.ErrCategoryNotFound)
		return
	}

	if err := s.categories.Delete(r.Context(), userID, categoryID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
