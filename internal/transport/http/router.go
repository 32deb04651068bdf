// Package httptransport composes the module handlers into the service's HTTP
// surface. Routing and middleware only; behavior lives in the services.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docseal/internal/platform/middleware"
	"docseal/pkg/platform/httputil"
)

// Registrar is implemented by every module handler.
type Registrar interface {
	Register(r chi.Router)
}

// Deps carries everything the router needs from main.
type Deps struct {
	Logger    *slog.Logger
	Validator middleware.TokenValidator

	Verification Registrar
	Diff         Registrar
	Duplicate    Registrar
	Proof        Registrar

	// Healthchecks run on /healthz; a nil check is skipped.
	Healthchecks []func() error
}

// NewRouter builds the full route tree. API routes sit behind bearer auth;
// health and metrics stay open for the platform probes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)

	r.Get("/healthz", handleHealth(deps.Healthchecks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		api.Use(middleware.RequireAuth(deps.Validator, deps.Logger))
		deps.Verification.Register(api)
		deps.Diff.Register(api)
		deps.Duplicate.Register(api)
		deps.Proof.Register(api)
	})

	return r
}

func handleHealth(checks []func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if check == nil {
				continue
			}
			if err := check(); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
				})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
