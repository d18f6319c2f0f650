package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/permdeck/permdeck/internal/logger"
	"github.com/permdeck/permdeck/pkg/api/auth"
	"github.com/permdeck/permdeck/pkg/api/handlers"
	"github.com/permdeck/permdeck/pkg/api/middleware"
	"github.com/permdeck/permdeck/pkg/metrics"
)

// RouterDeps bundles the collaborators the router wires into handlers.
type RouterDeps struct {
	// Domains provides the active permission domain. It must also
	// implement handlers.DomainActivator when Store is set.
	Domains handlers.DomainActivator

	// Store persists domain snapshots. Nil disables the snapshot routes.
	Store handlers.SnapshotStore

	// JWT issues and validates API tokens. Nil disables authentication.
	JWT *auth.JWTService

	// AdminUsername and AdminPasswordHash back the login endpoint.
	AdminUsername     string
	AdminPasswordHash string

	// RequestTimeout bounds handler execution per request.
	RequestTimeout time.Duration

	// HTTPMetrics records per-request Prometheus metrics. Nil disables
	// instrumentation.
	HTTPMetrics *metrics.HTTPMetrics
}

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//
// Health and login routes are unauthenticated. Everything under /api/v1 is
// protected by JWT bearer auth when deps.JWT is set.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	timeout := deps.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	// Middleware stack - order matters
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Middleware)
	}
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(timeout))

	healthHandler := handlers.NewHealthHandler(deps.Domains)
	permissionsHandler := handlers.NewPermissionsHandler(deps.Domains)
	grantsHandler := handlers.NewGrantsHandler(deps.Domains)
	directoryHandler := handlers.NewDirectoryHandler(deps.Domains)

	// Health routes - unauthenticated
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	r.Route("/api/v1", func(r chi.Router) {
		if deps.JWT != nil {
			authHandler := handlers.NewAuthHandler(deps.AdminUsername, deps.AdminPasswordHash, deps.JWT)
			r.Post("/auth/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.JWTAuth(deps.JWT))
				r.Get("/auth/me", authHandler.Me)
				mountDomainRoutes(r, permissionsHandler, grantsHandler, directoryHandler)
				mountSnapshotRoutes(r, deps)
			})
			return
		}

		mountDomainRoutes(r, permissionsHandler, grantsHandler, directoryHandler)
		mountSnapshotRoutes(r, deps)
	})

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	return r
}

func mountDomainRoutes(r chi.Router, perms *handlers.PermissionsHandler, grants *handlers.GrantsHandler, dir *handlers.DirectoryHandler) {
	r.Get("/permissions/effective", perms.Effective)
	r.Get("/permissions/grouped", perms.Grouped)
	r.Get("/permissions/attribution", perms.Attribution)

	r.Post("/grants", grants.Set)
	r.Post("/grants/group", grants.SetGroup)

	r.Get("/principals", dir.ListPrincipals)
	r.Get("/principals/{name}", dir.GetPrincipal)
	r.Get("/files", dir.ListFiles)
}

func mountSnapshotRoutes(r chi.Router, deps RouterDeps) {
	if deps.Store == nil {
		return
	}
	snapshots := handlers.NewSnapshotsHandler(deps.Domains, deps.Store)
	r.Get("/snapshots", snapshots.List)
	r.Post("/snapshots", snapshots.Save)
	r.Post("/snapshots/{name}/restore", snapshots.Restore)
	r.Delete("/snapshots/{name}", snapshots.Delete)
}

// requestLogger is a custom middleware that logs requests using the internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := chimw.GetReqID(r.Context())

		logger.Debug("API request started",
			logger.KeyRequestID, requestID,
			logger.KeyMethod, r.Method,
			logger.KeyRoute, r.URL.Path,
			logger.KeyClientIP, r.RemoteAddr,
		)

		// Wrap response writer to capture status code
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logger.Info("API request completed",
			logger.KeyRequestID, requestID,
			logger.KeyMethod, r.Method,
			logger.KeyRoute, r.URL.Path,
			logger.KeyStatusCode, ww.Status(),
			"bytes", ww.BytesWritten(),
			logger.KeyDurationMs, float64(duration.Microseconds())/1000.0,
		)
	})
}
