// Package http exposes the bookkeeping API over a JSON HTTP surface.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"cobro/internal/cache"
	"cobro/internal/core"
	"cobro/internal/middleware/ratelimit"
	"cobro/internal/middleware/trace"
	"cobro/internal/services"
	"cobro/internal/storage"
)

type Server struct {
	http.Server

	directory *storage.Directory
	sessions  *storage.Sessions
	clients   *storage.ClientRegistry
	ledger    *storage.Ledger
	ledgerSvc *services.LedgerService

	rateLimiter  *ratelimit.Limiter
	cacheManager *cache.Manager

	// Dashboard aggregates per user id. Invalidated on every mutation so
	// stale totals never outlive a write.
	dashCache *cache.LRUCache[core.DashboardStats]

	startedAt    time.Time
	shutdownOnce sync.Once
}

// Deps bundles the collaborators the server needs.
type Deps struct {
	Directory *storage.Directory
	Sessions  *storage.Sessions
	Clients   *storage.ClientRegistry
	Ledger    *storage.Ledger
	LedgerSvc *services.LedgerService
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		directory:    deps.Directory,
		sessions:     deps.Sessions,
		clients:      deps.Clients,
		ledger:       deps.Ledger,
		ledgerSvc:    deps.LedgerSvc,
		rateLimiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		cacheManager: cache.NewManager(),
		dashCache:    cache.NewLRUCache[core.DashboardStats](100, 5*time.Minute),
		startedAt:    time.Now(),
	}

	s.cacheManager.Register(s.dashCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	tracer := trace.NewMiddleware(extractClientIP)
	limited := s.rateLimiter.Middleware(extractClientIP,
		http.MethodPost, http.MethodPut, http.MethodDelete)
	chain := func(h http.HandlerFunc) http.Handler {
		return tracer.Middleware(limited(s.withSecurityHeaders(h)))
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	mux.Handle("/api/register", chain(s.handleRegister))
	mux.Handle("/api/login", chain(s.handleLogin))
	mux.Handle("/api/logout", chain(s.handleLogout))
	mux.Handle("/api/session", chain(s.handleSession))
	mux.Handle("/api/clients", chain(s.handleClients))
	mux.Handle("/api/clients/", chain(s.handleClientByID))
	mux.Handle("/api/collections", chain(s.handleCollections))
	mux.Handle("/api/collections/", chain(s.handleCollectionByID))
	mux.Handle("/api/reports", chain(s.handleReport))
	mux.Handle("/api/dashboard", chain(s.handleDashboard))

	return s
}

// withSecurityHeaders sets response security headers on API handlers.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		next(w, r)
	})
}

// invalidateDashboard drops the cached aggregates after a mutation.
func (s *Server) invalidateDashboard(userID string) {
	s.dashCache.Delete(userID)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]string)

	// A directory list exercises the storage backend end to end.
	if _, err := s.directory.List(ctx); err != nil {
		checks["storage"] = "failed: " + err.Error()
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["storage"] = "ok"
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": status,
		"checks": checks,
	})
}

// Shutdown stops the server along with its cache and limiter goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
