package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"smartbudget/internal/auth"
	"smartbudget/internal/config"
	"smartbudget/internal/events"
	applog "smartbudget/internal/log"
	"smartbudget/internal/middleware/ratelimit"
	"smartbudget/internal/middleware/security"
	"smartbudget/internal/middleware/trace"
	"smartbudget/internal/storage"
)

// Server serves the JSON API.
type Server struct {
	httpServer *http.Server
	store      *storage.Store
	cfg        *config.Config
	publisher  events.Publisher
	limiter    *ratelimit.Limiter
	logger     *applog.Logger
}

// identityKey is the context key for the authenticated caller.
type identityKey struct{}

// Identity is the verified caller attached to protected requests.
type Identity struct {
	UserID int64
	Email  string
}

// NewServer wires routes and middleware and returns a ready-to-run server.
func NewServer(cfg *config.Config, store *storage.Store, publisher events.Publisher, logger *applog.Logger) *Server {
	s := &Server{
		store:     store,
		cfg:       cfg,
		publisher: publisher,
		logger:    logger.WithComponent(applog.ComponentHTTP),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/me", s.requireAuth(s.handleMe))

	mux.HandleFunc("GET /api/categories", s.handleCategories)

	mux.HandleFunc("POST /api/transactions", s.requireAuth(s.handleCreateTransaction))
	mux.HandleFunc("GET /api/transactions", s.requireAuth(s.handleListTransactions))
	mux.HandleFunc("PUT /api/transactions/{id}", s.requireAuth(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.requireAuth(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/analytics/summary", s.requireAuth(s.handleSummary))
	mux.HandleFunc("GET /api/analytics/category-breakdown", s.requireAuth(s.handleCategoryBreakdown))
	mux.HandleFunc("GET /api/analytics/trends", s.requireAuth(s.handleTrends))

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("/", s.handleRoot)

	s.limiter = ratelimit.NewLimiter(ratelimit.Config{
		RequestsPerMinute: cfg.RateLimitPerMinute,
	})

	traceMW := trace.NewMiddleware(clientIP)
	headersMW := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	corsMW := security.CORSMiddleware(security.CORSConfig{AllowedOrigin: cfg.CORSAllowedOrigin})
	limitMW := s.limiter.Middleware(clientIP, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		writeError(w, http.StatusTooManyRequests,
			"Too many requests, please try again later.", CodeRateLimited)
	})

	var handler http.Handler = mux
	handler = limitMW(handler)
	handler = corsMW(handler)
	handler = headersMW.Middleware(handler)
	handler = applog.Middleware(s.logger)(handler)
	handler = traceMW.Middleware(handler)
	handler = s.recoverPanics(handler)

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// ListenAndServe starts accepting connections.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the rate limiter and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.httpServer.Shutdown(ctx)
}

// requireAuth verifies the bearer token and attaches the caller's identity
// to the request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Access denied. No token provided.", CodeNoToken)
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims, err := auth.ParseToken([]byte(s.cfg.JWTSecret), tokenString)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				writeError(w, http.StatusUnauthorized, "Token expired.", CodeTokenExpired)
			default:
				writeError(w, http.StatusUnauthorized, "Invalid token.", CodeInvalidToken)
			}
			return
		}
		if claims.UserID == 0 {
			writeError(w, http.StatusUnauthorized, "Authentication failed.", CodeAuthError)
			return
		}

		identity := Identity{UserID: claims.UserID, Email: claims.Email}
		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		next(w, r.WithContext(ctx))
	}
}

// identityFrom returns the authenticated caller. Only reachable behind
// requireAuth, so a missing identity is a programming error.
func identityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// recoverPanics converts handler panics into the standard 500 envelope.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.ErrorContext(r.Context(), "handler panic",
					applog.FieldPath, r.URL.Path,
					"panic", rec)
				writeError(w, http.StatusInternalServerError,
					"Internal server error", CodeInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// handleRoot serves the service index at exactly "/" and the 404 envelope
// for every unmatched path.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "Route not found", CodeRouteNotFound)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"name":        "SmartBudget API",
		"version":     "1.0.0",
		"environment": s.cfg.Environment,
		"endpoints": map[string]string{
			"auth":         "/api/auth",
			"categories":   "/api/categories",
			"transactions": "/api/transactions",
			"analytics":    "/api/analytics",
			"health":       "/api/health",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.ErrorContext(r.Context(), "health check failed", applog.FieldError, err)
		writeError(w, http.StatusServiceUnavailable,
			"Database connection lost", CodeDatabaseDisconnected)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"database":    "connected",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": s.cfg.Environment,
	})
}

// clientIP extracts the caller address, trusting proxy headers first.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
