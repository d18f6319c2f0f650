package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/permdeck/permdeck/pkg/acl"
	"github.com/permdeck/permdeck/pkg/domain"
)

// DomainSource provides the currently active permission domain.
// *domain.Manager satisfies it; tests substitute a static source.
type DomainSource interface {
	Current() *domain.Domain
}

// decodeJSONBody decodes a JSON request body into the provided pointer.
// Returns true if successful, false if decoding fails (error response is written automatically).
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "Invalid request body")
		return false
	}
	return true
}

// currentDomain resolves the active domain, writing 503 when none is loaded.
func currentDomain(w http.ResponseWriter, src DomainSource) (*domain.Domain, bool) {
	if src == nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse("no domain loaded"))
		return nil, false
	}
	d := src.Current()
	if d == nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse("no domain loaded"))
		return nil, false
	}
	return d, true
}

// pathUserParams extracts the required path and user query parameters.
// Writes 400 and returns false when either is missing.
func pathUserParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	path := r.URL.Query().Get("path")
	user := r.URL.Query().Get("user")
	if path == "" || user == "" {
		BadRequest(w, "Query parameters 'path' and 'user' are required")
		return "", "", false
	}
	return path, user, true
}

// writeEngineError maps an evaluation or mutation error to an HTTP response.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case acl.IsUnknownFile(err), acl.IsUnknownPrincipal(err):
		NotFound(w, err.Error())
	case acl.IsGroupAttributed(err), acl.IsInheritedGrant(err):
		Conflict(w, err.Error())
	case acl.IsCycleDetected(err):
		Conflict(w, err.Error())
	default:
		var engineErr *acl.EngineError
		if errors.As(err, &engineErr) && engineErr.Code == acl.ErrInvalidArgument {
			BadRequest(w, err.Error())
			return
		}
		InternalServerError(w, err.Error())
	}
}
