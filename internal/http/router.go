package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/product-console/internal/auth"
	"github.com/rogerio-castellano/product-console/internal/http/handlers"
	rl "github.com/rogerio-castellano/product-console/internal/http/rate_limiter"
	"go.uber.org/zap"
)

// RouterConfig carries the dependencies of the console router.
type RouterConfig struct {
	Server     *handlers.Server
	Signer     *auth.Signer
	CookieName string
	SessionTTL time.Duration
	Limiter    *rl.Limiter
	// Metrics, when set, is served on /metrics.
	Metrics http.Handler
	Logger  *zap.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(Recoverer(logger))

	r.Get("/healthz", cfg.Server.Health)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware(cfg.Signer, cfg.CookieName, cfg.SessionTTL, logger))
		r.Get("/", cfg.Server.ConsolePage)

		actions := r
		if cfg.Limiter != nil {
			actions = r.With(RateLimitMiddleware(cfg.Limiter, logger))
		}
		actions.Post("/products/actions/{action}", cfg.Server.ProductAction)
		actions.Post("/session/reset", cfg.Server.ResetSession)
	})
	return r
}
