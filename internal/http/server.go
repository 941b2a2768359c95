package http

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"atletica/internal/cache"
	"atletica/internal/calendar"
	"atletica/internal/clock"
	applog "atletica/internal/log"
	"atletica/internal/middleware/ratelimit"
	appweb "atletica/web"
)

// Deps groups what the server needs to host calendar sessions.
type Deps struct {
	Index      *calendar.EventIndex
	Window     calendar.Window
	Clock      clock.Clock
	Grid       calendar.GridBuilder
	Logger     *applog.Logger
	SessionTTL time.Duration

	// RateLimitPerMinute caps POST requests per client IP.
	RateLimitPerMinute int
}

type Server struct {
	http.Server
	templates *template.Template
	sessions  *sessionStore
	limiter   *ratelimit.Limiter
	index     *calendar.EventIndex
	window    calendar.Window
	clock     clock.Clock
	logger    *applog.Logger
	slog      *applog.StructuredLogger

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, deps Deps) (*Server, error) {
	if deps.Clock == nil {
		deps.Clock = clock.NewSystem()
	}
	if deps.Logger == nil {
		deps.Logger = applog.New(applog.DefaultConfig())
	}
	if deps.Grid == nil {
		deps.Grid = calendar.IndexGrid{Index: deps.Index}
	}
	if deps.SessionTTL <= 0 {
		deps.SessionTTL = 30 * time.Minute
	}

	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		templates: t,
		index:     deps.Index,
		window:    deps.Window,
		clock:     deps.Clock,
		logger:    deps.Logger.WithComponent(applog.ComponentHTTP),
		slog:      applog.NewStructuredLogger(deps.Logger),
		limiter:   ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: deps.RateLimitPerMinute}),
	}
	grid, index, window, clk := deps.Grid, deps.Index, deps.Window, deps.Clock
	s.sessions = newSessionStore(deps.SessionTTL, func() *calendar.Session {
		return calendar.NewSession(index, window, clk, calendar.WithGridBuilder(grid))
	})

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/calendar", s.withSecurityHeaders(s.handleView))
	mux.HandleFunc("/ui/calendar", s.withSecurityHeaders(s.handleWidget))
	mux.HandleFunc("/calendar/next", s.withSecurityHeaders(s.handleNext))
	mux.HandleFunc("/calendar/prev", s.withSecurityHeaders(s.handlePrev))
	mux.HandleFunc("/calendar/select", s.withSecurityHeaders(s.handleSelect))
	mux.HandleFunc("/calendar/dismiss", s.withSecurityHeaders(s.handleDismiss))
	mux.HandleFunc("/calendar.ics", s.withSecurityHeaders(s.handleICS))

	return s, nil
}

// Sessions exposes the session store so it can be swept on a schedule.
func (s *Server) Sessions() cache.Cleaner {
	return s.sessions
}

// Limiter exposes the POST rate limiter so idle clients can be swept.
func (s *Server) Limiter() *ratelimit.Limiter {
	return s.limiter
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, a request id and
// request logging.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)

		requestID := generateRequestID()
		reqLogger := s.logger.With(applog.FieldRequestID, requestID)
		ctx := applog.WithLogger(r.Context(), reqLogger)
		r = r.WithContext(ctx)

		s.slog.LogHTTPStart(ctx, r, clientIP)
		if isSuspiciousRequest(r) {
			reqLogger.WarnContext(ctx, "Suspicious request", applog.FieldClientIP, clientIP, applog.FieldPath, r.URL.Path)
		}

		if r.Method == http.MethodPost && !s.limiter.Allow(clientIP) {
			reqLogger.WarnContext(ctx, "Rate limit exceeded", applog.FieldClientIP, clientIP, applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		setSecurityHeaders(w)
		w.Header().Set("X-Request-ID", requestID)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.slog.LogHTTPEnd(ctx, r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil || s.sessions == nil {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
