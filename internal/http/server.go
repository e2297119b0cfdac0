// Package http exposes the ledger operations as a JSON API.
package http

import (
	"context"
	"net"
	"net/http"
	"sync"

	"maasertrack/internal/middleware/trace"
	"maasertrack/internal/services"
)

// Server wires the service layer into an http.Server with tracing.
type Server struct {
	http.Server

	personal *services.PersonalService
	business *services.BusinessService

	tracer       *trace.Middleware
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, personal *services.PersonalService, business *services.BusinessService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		personal: personal,
		business: business,
		tracer:   trace.NewMiddleware(clientIP),
	}
	s.Server = http.Server{
		Addr:    addr,
		Handler: s.tracer.Middleware(mux),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("POST /api/transactions/{id}/verify", s.handleToggleVerified)
	mux.HandleFunc("GET /api/transactions/duplicates", s.handleTransactionDuplicates)
	mux.HandleFunc("GET /api/transactions/patterns", s.handleTransactionPatterns)
	mux.HandleFunc("GET /api/transactions/suggestions", s.handleTransactionSuggestions)
	mux.HandleFunc("GET /api/transactions/summary", s.handleSummary)
	mux.HandleFunc("GET /api/transactions/chart", s.handleChart)
	mux.HandleFunc("GET /api/transactions/export", s.handleExportTransactions)
	mux.HandleFunc("POST /api/transactions/import/preview", s.handleImportPreview)
	mux.HandleFunc("POST /api/transactions/import/confirm", s.handleImportConfirm)
	mux.HandleFunc("POST /api/transactions/import/discard", s.handleImportDiscard)

	mux.HandleFunc("GET /api/accounts", s.handleListAccounts)
	mux.HandleFunc("POST /api/accounts", s.handleCreateAccount)
	mux.HandleFunc("DELETE /api/accounts/{id}", s.handleDeleteAccount)

	mux.HandleFunc("GET /api/business", s.handleListBusiness)
	mux.HandleFunc("POST /api/business", s.handleCreateBusiness)
	mux.HandleFunc("PUT /api/business/{id}", s.handleUpdateBusiness)
	mux.HandleFunc("DELETE /api/business/{id}", s.handleDeleteBusiness)
	mux.HandleFunc("POST /api/business/{id}/status", s.handleToggleStatus)
	mux.HandleFunc("GET /api/business/duplicates", s.handleBusinessDuplicates)
	mux.HandleFunc("GET /api/business/patterns", s.handleBusinessPatterns)
	mux.HandleFunc("GET /api/business/suggestions", s.handleBusinessSuggestions)
	mux.HandleFunc("GET /api/business/summary", s.handleBusinessSummary)
	mux.HandleFunc("GET /api/business/export", s.handleExportBusiness)
	mux.HandleFunc("POST /api/business/import/preview", s.handleBusinessImportPreview)
	mux.HandleFunc("POST /api/business/import/confirm", s.handleBusinessImportConfirm)
	mux.HandleFunc("POST /api/business/import/discard", s.handleBusinessImportDiscard)

	return s
}

// Handler exposes the middleware-wrapped handler for tests.
func (s *Server) Handler() http.Handler {
	return s.Server.Handler
}

// Shutdown gracefully shuts down the server once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
