package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/healthprobe/internal/httpapi/middleware"
	"github.com/hamed0406/healthprobe/internal/notify"
	"github.com/hamed0406/healthprobe/internal/registry"
)

// Server exposes the registered health checks as probe endpoints.
type Server struct {
	Logger   *zap.Logger
	Registry *registry.Registry
	Notifier *notify.Throttled // optional
}

func NewServer(l *zap.Logger, reg *registry.Registry, n *notify.Throttled) *Server {
	return &Server{Logger: l, Registry: reg, Notifier: n}
}

// Router wires the probe and API routes. allowedOrigins nil/empty means
// allow-all (local dev).
func (s *Server) Router(keys middleware.Keys, allowedOrigins []string, publicRPM, publicBurst, adminRPM, adminBurst int) http.Handler {
	r := chi.NewRouter()

	if len(allowedOrigins) == 0 {
		r.Use(cors.AllowAll().Handler)
	} else {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Authorization", "X-API-Key", "Content-Type"},
		}))
	}

	// Process liveness: no auth, no rate limit, never touches the targets.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAny(keys))
		r.Use(middleware.RateLimit(publicRPM, publicBurst))
		r.Get("/readyz", s.handleReady)
		r.Get("/api/checks", s.handleListChecks)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(keys))
		r.Use(middleware.RateLimit(adminRPM, adminBurst))
		r.Post("/api/checks/{name}/run", s.handleRunCheck)
	})

	return r
}
