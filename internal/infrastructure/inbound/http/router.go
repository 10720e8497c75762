package delivery_http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	post_service "devlog-post-service/internal/domain/ports/input/post"
	ports "devlog-post-service/internal/domain/ports/output"
	"devlog-post-service/internal/infrastructure/inbound/http/middleware"
	post_http "devlog-post-service/internal/infrastructure/inbound/http/post"
	"devlog-post-service/internal/infrastructure/inbound/http/response"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// HealthCheck checks one dependency for /health.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

func NewRouter(
	postService post_service.Service,
	auth *middleware.JWTAuth,
	log ports.Logger,
	metrics ports.MetricsProvider,
	checks ...HealthCheck,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics(metrics))
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, http.StatusNotFound, response.KindNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, http.StatusMethodNotAllowed, response.KindValidation, "method not allowed")
	})

	r.Get("/health", healthHandler(checks, log))

	post_http.RegisterRoutes(r, postService, validator.New(validator.WithRequiredStructEnabled()), auth.RequireAuth, log)

	return r
}

func healthHandler(checks []HealthCheck, log ports.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		for _, check := range checks {
			if err := check.Check(ctx); err != nil {
				log.Warn("Health check failed", slog.String("dependency", check.Name), slog.String("error", err.Error()))
				response.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status":     "unavailable",
					"dependency": check.Name,
				})
				return
			}
		}
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
