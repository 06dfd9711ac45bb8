package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/apiempleados/api-empleados/internal/auth"
	"github.com/apiempleados/api-empleados/internal/employees"
	"github.com/apiempleados/api-empleados/internal/observability"
	"github.com/apiempleados/api-empleados/internal/platform/httpx"
)

// Pinger reports backing store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Responder        httpx.Responder
	Gate             *auth.Gate
	AuthHandler      *auth.Handler
	EmployeesHandler *employees.Handler
	Metrics          *observability.Metrics
	DB               Pinger
}

// NewRouter constructs the chi.Router. Every route outside the gate's public
// prefixes requires a bearer token.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:    params.Logger,
		Config:    params.Config,
		Metrics:   params.Metrics,
		Responder: params.Responder,
	}) {
		r.Use(mw)
	}
	r.Use(params.Gate.Middleware)

	r.NotFound(params.Responder.NotFound)
	r.MethodNotAllowed(params.Responder.MethodNotAllowed)

	r.Get("/healthz", healthHandler(params.DB, params.Logger))
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Use(AuthRateLimit(params.Config))
		params.AuthHandler.MountRoutes(r)
	})
	r.Get("/me", params.AuthHandler.Me)

	if params.EmployeesHandler != nil {
		r.Route("/employees", params.EmployeesHandler.MountRoutes)
	}

	return r
}

func healthHandler(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				if logger != nil {
					logger.Warn("health check failed", slog.Any("error", err))
				}
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
