// Package httptransport assembles the HTTP surface: the public formatting
// endpoint, the admin configuration endpoints, and the operational routes.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cpfhandler "switchyard/internal/cpf/handler"
	"switchyard/internal/platform/middleware"
	rollouthandler "switchyard/internal/rollout/handler"
	"switchyard/pkg/platform/httputil"
)

// HealthChecker reports backing-store connectivity. Nil checkers are skipped,
// the memory-backed deployment has nothing to probe.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router mounts.
type Deps struct {
	Logger         *slog.Logger
	CPF            *cpfhandler.Handler
	Rollout        *rollouthandler.Handler
	TokenValidator middleware.TokenValidator
	Health         HealthChecker
}

// NewRouter wires all endpoints. Admin configuration routes sit behind the
// bearer token middleware; everything else is public.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", handleHealth(deps.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	deps.CPF.Register(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(deps.TokenValidator, deps.Logger))
		deps.Rollout.RegisterAdmin(r)
	})

	return r
}

func handleHealth(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.Health(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  err.Error(),
				})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
