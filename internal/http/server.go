package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/log"
	"fintrack/internal/services"
)

// Services bundles the application services the API exposes.
type Services struct {
	Auth       *services.AuthService
	Categories *services.CategoryService
	Expenses   *services.ExpenseService
	Budget     *services.BudgetService
	Analytics  *services.AnalyticsService
	Reports    *services.ReportService
}

// Server is the JSON API front end.
type Server struct {
	http.Server

	logger  *log.Logger
	limiter *rateLimiter

	auth       *services.AuthService
	categories *services.CategoryService
	expenses   *services.ExpenseService
	budget     *services.BudgetService
	analytics  *services.AnalyticsService
	reports    *services.ReportService

	// ready reports whether the storage backend is reachable.
	ready func(ctx context.Context) error

	shutdownOnce sync.Once
}

// NewServer configures the route table and middleware, returning a
// ready-to-run server.
func NewServer(addr string, svcs Services, logger *log.Logger, ready func(ctx context.Context) error) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:     logger.WithComponent(log.ComponentHTTP),
		limiter:    newRateLimiter(60),
		auth:       svcs.Auth,
		categories: svcs.Categories,
		expenses:   svcs.Expenses,
		budget:     svcs.Budget,
		analytics:  svcs.Analytics,
		reports:    svcs.Reports,
		ready:      ready,
	}
	s.Server = http.Server{
		Addr:         addr,
		Handler:      s.withCommon(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/users/register", s.handleRegister)
	mux.HandleFunc("POST /api/users/login", s.handleLogin)
	mux.HandleFunc("GET /api/users/me", s.requireAuth(s.handleGetProfile))
	mux.HandleFunc("PUT /api/users/me", s.requireAuth(s.handleUpdateProfile))
	mux.HandleFunc("DELETE /api/users/me", s.requireAuth(s.handleDeleteAccount))

	mux.HandleFunc("POST /api/categories", s.requireAuth(s.handleCreateCategory))
	mux.HandleFunc("GET /api/categories", s.requireAuth(s.handleListCategories))
	mux.HandleFunc("PUT /api/categories/{id}/budget", s.requireAuth(s.handleUpdateCategoryBudget))
	mux.HandleFunc("DELETE /api/categories/{id}", s.requireAuth(s.handleDeleteCategory))

	mux.HandleFunc("POST /api/expenses", s.requireAuth(s.handleCreateExpense))
	mux.HandleFunc("GET /api/expenses", s.requireAuth(s.handleListExpenses))
	mux.HandleFunc("GET /api/expenses/report", s.requireAuth(s.handleExpenseReport))
	mux.HandleFunc("GET /api/expenses/{id}", s.requireAuth(s.handleGetExpense))
	mux.HandleFunc("PUT /api/expenses/{id}", s.requireAuth(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.requireAuth(s.handleDeleteExpense))

	mux.HandleFunc("GET /api/budget/summary", s.requireAuth(s.handleBudgetSummary))
	mux.HandleFunc("GET /api/budget/categories", s.requireAuth(s.handleCategoryBreakdown))
	mux.HandleFunc("GET /api/budget/spending", s.requireAuth(s.handlePeriodSummary))
	mux.HandleFunc("GET /api/budget/trends", s.requireAuth(s.handleTrends))

	return s
}

// Shutdown stops the rate limiter's cleanup goroutine and drains in-flight
// requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.ready(ctx); err != nil {
			s.logger.WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
