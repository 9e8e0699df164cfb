// Package server provides the HTTP REST API for the hiring pipeline tracker.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/thegranduke/ATS-sub001/internal/config"
	"github.com/thegranduke/ATS-sub001/internal/db"
	"github.com/thegranduke/ATS-sub001/internal/lifecycle"
	"github.com/thegranduke/ATS-sub001/internal/metrics"
	"github.com/thegranduke/ATS-sub001/internal/server/middleware"
	"github.com/thegranduke/ATS-sub001/internal/server/ratelimit"
	"github.com/thegranduke/ATS-sub001/internal/store"
	"github.com/thegranduke/ATS-sub001/internal/tenancy"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	stores      Stores
	resolver    *tenancy.Resolver
	engine      *lifecycle.Engine
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	handler     http.Handler
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
}

// Stores bundles the record-store collaborators the handlers depend on.
// In production every field is the same *db.DB; tests swap in store.Memory.
type Stores struct {
	Tenants    store.TenantStore
	Users      store.UserStore
	Jobs       store.JobStore
	Candidates store.CandidateStore
	Events     store.EventStore
	Audit      store.AuditStore
	Sessions   store.SessionStore
}

// New creates a new server instance backed by PostgreSQL.
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	stores := Stores{
		Tenants:    database,
		Users:      database,
		Jobs:       database,
		Candidates: database,
		Events:     database,
		Audit:      database,
		Sessions:   database,
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := newServer(cfg, stores, NewJWTService(jwtConfig))
	s.db = database
	return s, nil
}

// newServer wires the handlers over the given stores. Split from New so
// tests can run the full router against in-memory stores.
func newServer(cfg Config, stores Stores, jwtService *JWTService) *Server {
	s := &Server{
		stores:     stores,
		resolver:   tenancy.NewResolver(stores.Users, stores.Tenants, stores.Sessions),
		engine:     lifecycle.NewEngine(stores.Jobs, stores.Candidates, stores.Audit, nil),
		jwtService: jwtService,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	// Authenticated API routes
	api := http.NewServeMux()
	api.HandleFunc("GET /api/tenants", s.handleListTenants)
	api.HandleFunc("GET /api/tenants/active", s.handleActiveTenant)
	api.HandleFunc("POST /api/tenants/switch", s.handleSwitchTenant)

	api.HandleFunc("GET /api/jobs", s.handleListJobs)
	api.HandleFunc("GET /api/jobs/{id}/status-transitions", s.handleJobTransitions)
	api.HandleFunc("PATCH /api/jobs/{id}/status", s.handleUpdateJobStatus)

	api.HandleFunc("GET /api/candidates", s.handleListCandidates)
	api.HandleFunc("GET /api/candidates/{id}/status-transitions", s.handleCandidateTransitions)
	api.HandleFunc("PATCH /api/candidates/{id}/status", s.handleUpdateCandidateStatus)
	api.HandleFunc("GET /api/candidates/{id}/history", s.handleCandidateHistory)

	api.HandleFunc("GET /api/reports/hiring-metrics", s.handleHiringMetrics)
	api.HandleFunc("GET /api/reports/pipeline-analytics", s.handlePipelineAnalytics)
	api.HandleFunc("GET /api/reports/source-performance", s.handleSourcePerformance)
	api.HandleFunc("GET /api/reports/time-to-hire", s.handleTimeToHire)
	api.HandleFunc("POST /api/reports/custom", s.handleCustomReport)

	authn := middleware.AuthMiddleware(jwtService.AsTokenValidator())
	mux.Handle("/api/", authn(api))

	s.handler = s.withRateLimit(s.withObservation(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withObservation adds request logging and Prometheus instrumentation.
func (s *Server) withObservation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(recorder, r)
		elapsed := time.Since(start)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, elapsed)
		metrics.ObserveRequest(r.Method, r.URL.Path, strconv.Itoa(recorder.status), elapsed)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
