package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig contains all dependencies needed to construct the HTTP
// router. Designed for dependency injection: tests pass a service built
// around a small in-memory universe and a permissive rate limit.
type RouterConfig struct {
	// Service mediates all universe access (required).
	Service *UniverseService

	// RateLimiter is an optional pre-configured rate limiter. If nil, a
	// new one is created from RateLimitConfig (or the defaults).
	RateLimiter *IPRateLimiter

	// RateLimitConfig is used only when RateLimiter is nil.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins overrides the default allowed origins.
	CORSOrigins []string

	// SessionManager protects mutating routes when provided and enabled.
	SessionManager *SessionManager

	// DisableLogging disables the request logger middleware (useful for
	// benchmarks and quiet tests).
	DisableLogging bool
}

// NewRouter constructs the HTTP router with all middleware and routes.
//
// This function is pure: no goroutines are started and no listeners are
// opened, so the result is safe to wrap in httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = AllowedOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	limiter := cfg.RateLimiter
	if limiter == nil {
		rlCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rlCfg = *cfg.RateLimitConfig
		}
		limiter = NewIPRateLimiter(rlCfg)
	}
	r.Use(limiter.Middleware)

	h := &routerHandlers{service: cfg.Service, sessions: cfg.SessionManager}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/universe", instrument("GET", "/api/universe", h.handleGetUniverse))
		r.Get("/divisions", instrument("GET", "/api/divisions", h.handleGetDivisions))
		r.Get("/divisions/{division}/rankings", instrument("GET", "/api/divisions/{division}/rankings", h.handleGetRankings))
		r.Get("/fighters/{id}", instrument("GET", "/api/fighters/{id}", h.handleGetFighter))
		r.Get("/fighters/{id}/history", instrument("GET", "/api/fighters/{id}/history", h.handleGetHistory))
		r.Get("/fighters/{id}/replay/{bout}", instrument("GET", "/api/fighters/{id}/replay/{bout}", h.handleGetReplay))
		r.Get("/results/recent", instrument("GET", "/api/results/recent", h.handleGetRecent))
		r.Get("/hof", instrument("GET", "/api/hof", h.handleGetHOF))

		if cfg.SessionManager != nil {
			r.Post("/login", h.handleLogin)
		}

		r.Group(func(r chi.Router) {
			if cfg.SessionManager != nil {
				r.Use(cfg.SessionManager.Middleware)
			}
			r.Post("/universe/advance", instrument("POST", "/api/universe/advance", h.handleAdvance))
			r.Post("/universe/save", instrument("POST", "/api/universe/save", h.handleSave))
		})
	})

	return r
}

// instrument wraps a handler with route-pattern request metrics.
func instrument(method, endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		RecordRequest(method, endpoint, time.Since(start))
	}
}
