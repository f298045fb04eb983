package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"leanacademy/internal/app"
	"leanacademy/internal/ratelimit"
	"leanacademy/internal/util"
	"leanacademy/pkg/domain"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App                     *app.App
	RedisAddr               string
	RedisPassword           string
	LoginRateLimitPerMinute int
}

// Server exposes the HTTP API over the dispatch facade.
type Server struct {
	app          *app.App
	mux          *http.ServeMux
	loginLimiter *ratelimit.Limiter
}

// New constructs the server with routes configured. The login rate limiter
// is only active when a Redis address is supplied.
func New(cfg Config) (*Server, error) {
	if cfg.App == nil {
		return nil, errors.New("app is required")
	}
	var loginLimiter *ratelimit.Limiter
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		limit := cfg.LoginRateLimitPerMinute
		if limit <= 0 {
			limit = 10
		}
		limiter, err := ratelimit.New(
			cfg.RedisAddr, cfg.RedisPassword, "leanacademy:ratelimit:login", limit, time.Minute)
		if err != nil {
			return nil, fmt.Errorf("init login limiter: %w", err)
		}
		loginLimiter = limiter
	}
	s := &Server{
		app:          cfg.App,
		mux:          http.NewServeMux(),
		loginLimiter: loginLimiter,
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithSecurityHeaders(util.WithCORS(util.WithRequestID(util.WithRequestLog(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/api/status", s.handleStatus)

	// public content
	s.mux.HandleFunc("/api/content", s.handleContent)
	s.mux.HandleFunc("/api/courses", s.handleCourses)
	s.mux.HandleFunc("/api/courses/", s.handleCourseByID)
	s.mux.HandleFunc("/api/videos", s.handleVideos)
	s.mux.HandleFunc("/api/blog", s.handleBlog)
	s.mux.HandleFunc("/api/blog/", s.handleBlogByID)
	s.mux.HandleFunc("/api/booking-forms", s.handleBookingForms)

	// admin session
	s.mux.HandleFunc("/api/admin/login", s.handleLogin)
	s.mux.HandleFunc("/api/admin/logout", s.handleLogout)

	// admin content management
	s.mux.Handle("/api/admin/courses", s.authenticated(s.handleAdminCourses))
	s.mux.Handle("/api/admin/courses/", s.authenticated(s.handleAdminCourseByID))
	s.mux.Handle("/api/admin/course-videos", s.authenticated(s.handleAdminCourseVideos))
	s.mux.Handle("/api/admin/course-videos/", s.authenticated(s.handleAdminCourseVideoByID))
	s.mux.Handle("/api/admin/videos", s.authenticated(s.handleAdminVideos))
	s.mux.Handle("/api/admin/videos/", s.authenticated(s.handleAdminVideoByID))
	s.mux.Handle("/api/admin/blog", s.authenticated(s.handleAdminBlog))
	s.mux.Handle("/api/admin/blog/", s.authenticated(s.handleAdminBlogByID))
	s.mux.Handle("/api/admin/booking-forms", s.authenticated(s.handleAdminBookingForms))
	s.mux.Handle("/api/admin/booking-forms/", s.authenticated(s.handleAdminBookingFormByID))
	s.mux.Handle("/api/admin/users", s.authenticated(s.handleAdminUsers))
	s.mux.Handle("/api/admin/users/", s.authenticated(s.handleAdminUserByID))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStatus reports whether a remote database is configured and whether
// it currently answers a round trip. The connection check is informational;
// routing decisions happen per-operation inside the facade.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		RemoteConfigured: s.app.RemoteAvailable(),
		Connected:        s.app.TestConnection(r.Context()),
	})
}

// auth wrappers
type authHandler func(http.ResponseWriter, *http.Request, string)

func (s *Server) authenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		userID, ok := s.app.VerifySession(token)
		if !ok {
			s.audit(r, "admin.authorize", "fail", "reason", "invalid_session")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, userID)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allowLogin(w, r) {
		s.audit(r, "admin.login", "rate_limited")
		return
	}
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	user, token, err := s.app.AdminLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		s.audit(r, "admin.login", "fail", "username", req.Username, "reason", err.Error())
		writeLoginError(w, err)
		return
	}
	s.audit(r, "admin.login", "success", "user_id", user.ID)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := s.app.AdminLogout(token); err != nil {
		writeError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	s.audit(r, "admin.logout", "success")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) allowLogin(w http.ResponseWriter, r *http.Request) bool {
	if s.loginLimiter == nil {
		return true
	}
	key := clientIP(r)
	if s.loginLimiter.Allow(r.Context(), key) {
		return true
	}
	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, "too many login attempts")
	return false
}

func (s *Server) audit(r *http.Request, event, outcome string, attrs ...any) {
	logAttrs := []any{
		"event", event,
		"outcome", outcome,
		"path", r.URL.Path,
		"method", r.Method,
		"ip", clientIP(r),
		"request_id", util.RequestIDFromRequest(r),
	}
	logAttrs = append(logAttrs, attrs...)
	if outcome == "success" {
		slog.Info("security_event", logAttrs...)
		return
	}
	slog.Warn("security_event", logAttrs...)
}

type statusResponse struct {
	RemoteConfigured bool `json:"remote_configured"`
	Connected        bool `json:"connected"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string           `json:"token"`
	User  domain.AdminUser `json:"user"`
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeList sets the data-source header so clients can tell cached local
// data apart from live database rows.
func writeList(w http.ResponseWriter, src app.Source, items any, count int) {
	w.Header().Set("X-Data-Source", string(src))
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": count,
	})
}

func writeItem(w http.ResponseWriter, src app.Source, item any) {
	w.Header().Set("X-Data-Source", string(src))
	writeJSON(w, http.StatusOK, item)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeWriteError maps facade write failures onto HTTP statuses. Remote
// write failures are surfaced, never silently retried against local data.
func writeWriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrUsernameTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, app.ErrProtectedAdmin):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "database timed out")
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func writeLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, app.ErrAccountDisabled):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusBadGateway, "login failed")
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "not found")
}

// pathID extracts the trailing id from prefix-routed paths like
// /api/admin/courses/{id}.
func pathID(r *http.Request, prefix string) (string, bool) {
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
