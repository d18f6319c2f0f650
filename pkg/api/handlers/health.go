package handlers

import (
	"net/http"
)

// HealthHandler handles health check endpoints.
//
// Health endpoints are unauthenticated and provide:
//   - Liveness probe: Is the server process running?
//   - Readiness probe: Is a permission domain loaded and serving?
type HealthHandler struct {
	domains DomainSource
}

// NewHealthHandler creates a new health handler.
//
// The domains parameter may be nil, in which case the readiness check
// reports unhealthy.
func NewHealthHandler(domains DomainSource) *HealthHandler {
	return &HealthHandler{domains: domains}
}

// Liveness handles GET /health - simple liveness probe.
//
// Returns 200 OK if the server process is running. This endpoint is designed
// for Kubernetes liveness probes and should always succeed as long as the
// HTTP server is responsive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthyResponse(map[string]string{
		"service": "permdeck",
	}))
}

// Readiness handles GET /health/ready - readiness probe.
//
// Returns 200 OK when a permission domain is loaded, with counts of the
// principals and files it serves. Returns 503 Service Unavailable before
// the first successful seed load.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	d, ok := currentDomain(w, h.domains)
	if !ok {
		return
	}

	users, err := d.Directory().ListUsers()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse(err.Error()))
		return
	}
	groups, err := d.Directory().ListGroups()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, healthyResponse(map[string]interface{}{
		"domain": d.Name(),
		"users":  len(users),
		"groups": len(groups),
		"files":  len(d.Tree().List()),
	}))
}
