// Package api exposes the scan and report pipeline as a JSON HTTP surface.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/buihoanganh/webcheck/internal/api/middleware"
	"github.com/buihoanganh/webcheck/internal/report"
	"github.com/buihoanganh/webcheck/internal/scan"
	sharederrors "github.com/buihoanganh/webcheck/internal/shared/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ScanRequest is the inbound scan payload. A nil Scans field selects all
// four categories; an explicitly empty list is an error.
type ScanRequest struct {
	Domain string   `json:"domain"`
	Scans  []string `json:"scans"`
}

// ScanResponse bundles the scan result with its derived metrics so a
// front-end gets everything in one round trip.
type ScanResponse struct {
	*scan.Result
	Metrics  scan.Metrics `json:"metrics"`
	Critical []scan.Issue `json:"critical_issues"`
	Warnings []scan.Issue `json:"warnings"`
}

// ScanService runs one scan request through the orchestrator.
type ScanService interface {
	Scan(ctx context.Context, domain string, categories []scan.Category) (*scan.Result, error)
}

// ReportService renders a result into a downloadable document.
type ReportService interface {
	Report(ctx context.Context, res *scan.Result, format report.Format) (*report.Document, error)
}

// HealthService reports the state of the scanner backend for diagnostics.
type HealthService interface {
	BackendStatus(ctx context.Context) string
}

type Config struct {
	Scans       ScanService
	Reports     ReportService
	Health      HealthService
	AuthToken   string
	Logger      *zap.Logger
	CORSOrigins []string // Allowed CORS origins (empty = allow all)
	RateLimit   int      // Requests per second per IP (0 = disabled)
	RateBurst   int      // Burst size for rate limiter
}

type Server struct {
	cfg      Config
	mux      *http.ServeMux
	limiters *rateLimiterMap
}

func NewServer(cfg Config) *Server {
	srv := &Server{
		cfg:      cfg,
		mux:      http.NewServeMux(),
		limiters: newRateLimiterMap(),
	}
	srv.routes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Middleware chain: RequestID -> Logging -> RateLimit -> CORS -> Handler
	handler := middleware.RequestID(s.withLogging(s.withRateLimit(s.withCORS(s.mux))))
	handler.ServeHTTP(w, r)
}

func (s *Server) routes() {
	// Version 1 API routes (primary)
	s.mux.Handle("/api/v1/health", s.withAuth(http.HandlerFunc(s.handleHealth)))
	s.mux.Handle("/api/v1/scan", s.withAuth(http.HandlerFunc(s.handleScan)))
	s.mux.Handle("/api/v1/report", s.withAuth(http.HandlerFunc(s.handleReport)))

	// Unversioned routes (front-end compatibility - alias to v1)
	s.mux.Handle("/api/health", s.withAuth(http.HandlerFunc(s.handleHealth)))
	s.mux.Handle("/api/scan", s.withAuth(http.HandlerFunc(s.handleScan)))
	s.mux.Handle("/api/report", s.withAuth(http.HandlerFunc(s.handleReport)))
	s.mux.Handle("/health", s.withAuth(http.HandlerFunc(s.handleHealth)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	payload := map[string]string{
		"status":    "ok",
		"service":   "Cyber Health Check API",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if s.cfg.Health != nil {
		payload["backend"] = s.cfg.Health.BackendStatus(r.Context())
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1048576) // 1MB limit
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	var categories []scan.Category
	if req.Scans == nil {
		// Absent field: scan everything. An empty list still means the
		// caller selected nothing and is rejected below.
		categories = scan.Categories
	} else {
		var err error
		categories, err = scan.ParseCategories(req.Scans)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
	}

	result, err := s.cfg.Scans.Scan(r.Context(), req.Domain, categories)
	if err != nil {
		s.writeError(w, r, scanErrorStatus(err), err)
		return
	}

	metrics := scan.ComputeMetrics(result)
	writeJSON(w, http.StatusOK, ScanResponse{
		Result:   result,
		Metrics:  metrics,
		Critical: scan.CriticalIssues(result),
		Warnings: scan.Warnings(result),
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r)
		return
	}
	format := report.FormatPDF
	if q := r.URL.Query().Get("format"); q != "" {
		parsed, err := report.ParseFormat(q)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		format = parsed
	}

	r.Body = http.MaxBytesReader(w, r.Body, 8388608) // 8MB limit
	var result scan.Result
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	result.Normalize()

	doc, err := s.cfg.Reports.Report(r.Context(), &result, format)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, sharederrors.ErrEmptyResult) || errors.Is(err, sharederrors.ErrUnknownFormat) {
			status = http.StatusBadRequest
		}
		s.writeError(w, r, status, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", doc.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil && s.cfg.Logger != nil {
		s.cfg.Logger.Error("failed to write report response", zap.Error(err))
	}
}

func scanErrorStatus(err error) int {
	switch {
	case errors.Is(err, sharederrors.ErrInvalidDomain),
		errors.Is(err, sharederrors.ErrNoCategories),
		errors.Is(err, sharederrors.ErrUnknownCategory):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.RateLimit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		// Extract client IP (honor X-Forwarded-For for proxied requests)
		clientIP := r.RemoteAddr
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			if idx := strings.Index(forwarded, ","); idx > 0 {
				clientIP = strings.TrimSpace(forwarded[:idx])
			} else {
				clientIP = strings.TrimSpace(forwarded)
			}
		}
		if idx := strings.LastIndex(clientIP, ":"); idx > 0 {
			clientIP = clientIP[:idx]
		}

		limiter := s.limiters.getLimiter(clientIP, s.cfg.RateLimit, s.cfg.RateBurst)
		if !limiter.Allow() {
			if s.cfg.Logger != nil {
				s.requestLogger(r).Warn("rate_limit_exceeded",
					zap.String("client_ip", clientIP),
				)
			}
			s.writeError(w, r, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		allowOrigin := "*"
		if len(s.cfg.CORSOrigins) > 0 {
			allowed := false
			for _, allowedOrigin := range s.cfg.CORSOrigins {
				if allowedOrigin == origin {
					allowed = true
					allowOrigin = origin
					break
				}
			}
			if !allowed {
				allowOrigin = ""
			}
		}

		if allowOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Auth-Token")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(lrw, r)

		if s.cfg.Logger != nil {
			s.cfg.Logger.Info("http_request",
				zap.String("request_id", middleware.GetRequestID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Int("status", lrw.statusCode),
				zap.Duration("duration", time.Since(start)),
				zap.Int64("bytes", lrw.bytesWritten),
			)
		}
	})
}

func (s *Server) withAuth(next http.Handler) http.Handler {
	if s.cfg.AuthToken == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Auth-Token")
		// Constant-time comparison to prevent timing attacks
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AuthToken)) != 1 {
			s.writeError(w, r, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loggingResponseWriter wraps http.ResponseWriter to capture status code and bytes written
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	n, err := lrw.ResponseWriter.Write(b)
	lrw.bytesWritten += int64(n)
	return n, err
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	msg := err.Error()

	// For 5xx errors, return a generic message and log details server-side
	if status >= 500 {
		if s.cfg.Logger != nil {
			s.requestLogger(r).Error("internal_server_error",
				zap.Error(err),
				zap.Int("status", status),
			)
		}
		msg = "internal server error"
	}

	writeJSON(w, status, map[string]string{"error": msg})
}

// requestLogger creates a logger with request context (request ID, method, path)
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	if s.cfg.Logger == nil {
		return zap.NewNop()
	}
	return s.cfg.Logger.With(
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

// rateLimiterMap manages per-IP rate limiters with automatic cleanup
type rateLimiterMap struct {
	mu       sync.RWMutex
	limiters map[string]*ipLimiter
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiterMap() *rateLimiterMap {
	m := &rateLimiterMap{
		limiters: make(map[string]*ipLimiter),
	}
	go m.cleanupLoop()
	return m
}

func (m *rateLimiterMap) getLimiter(ip string, rps, burst int) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	limiter, exists := m.limiters[ip]
	if !exists {
		limiter = &ipLimiter{
			limiter:  rate.NewLimiter(rate.Limit(rps), burst),
			lastSeen: time.Now(),
		}
		m.limiters[ip] = limiter
	} else {
		limiter.lastSeen = time.Now()
	}

	return limiter.limiter
}

// cleanupLoop removes limiters that haven't been used in 5 minutes
func (m *rateLimiterMap) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		for ip, limiter := range m.limiters {
			if time.Since(limiter.lastSeen) > 5*time.Minute {
				delete(m.limiters, ip)
			}
		}
		m.mu.Unlock()
	}
}
