package handlers

import (
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/permdeck/permdeck/internal/telemetry"
	"github.com/permdeck/permdeck/pkg/acl"
	"github.com/permdeck/permdeck/pkg/engine"
)

// PermissionsHandler handles read-only permission evaluation endpoints.
type PermissionsHandler struct {
	domains DomainSource
}

// NewPermissionsHandler creates a new PermissionsHandler.
func NewPermissionsHandler(domains DomainSource) *PermissionsHandler {
	return &PermissionsHandler{domains: domains}
}

// EffectiveResponse is the response body for GET /api/v1/permissions/effective.
type EffectiveResponse struct {
	Path string `json:"path"`
	User string `json:"user"`
	// States maps every catalog permission to allowed, denied, or unset.
	States map[string]engine.PermissionState `json:"states"`
	// Allow and Deny carry the supporting ACEs with their source files.
	Allow map[acl.Permission][]engine.Provenance `json:"allow"`
	Deny  map[acl.Permission][]engine.Provenance `json:"deny"`
}

// Effective handles GET /api/v1/permissions/effective?path=&user=.
// Returns the user's effective permission set on the file, with provenance.
func (h *PermissionsHandler) Effective(w http.ResponseWriter, r *http.Request) {
	d, ok := currentDomain(w, h.domains)
	if !ok {
		return
	}
	path, user, ok := pathUserParams(w, r)
	if !ok {
		return
	}

	ctx, span := telemetry.StartEvaluationSpan(r.Context(), path, user)
	defer span.End()

	set, err := d.Engine().EffectivePermissions(path, user)
	if err != nil {
		telemetry.RecordError(ctx, err)
		writeEngineError(w, err)
		return
	}

	states := make(map[string]engine.PermissionState, len(acl.AllPermissions()))
	for _, p := range acl.AllPermissions() {
		states[p.String()] = set.State(p)
	}

	WriteJSONOK(w, EffectiveResponse{
		Path:   path,
		User:   user,
		States: states,
		Allow:  set.Allow,
		Deny:   set.Deny,
	})
}

// GroupedResponse is the response body for GET /api/v1/permissions/grouped.
type GroupedResponse struct {
	Path  string                                     `json:"path"`
	User  string                                     `json:"user"`
	Allow map[acl.PermissionGroup]engine.GroupStatus `json:"allow"`
	Deny  map[acl.PermissionGroup]engine.GroupStatus `json:"deny"`
}

// Grouped handles GET /api/v1/permissions/grouped?path=&user=.
// Returns the effective set folded onto the permission-group catalog.
func (h *PermissionsHandler) Grouped(w http.ResponseWriter, r *http.Request) {
	d, ok := currentDomain(w, h.domains)
	if !ok {
		return
	}
	path, user, ok := pathUserParams(w, r)
	if !ok {
		return
	}

	ctx, span := telemetry.StartSpan(r.Context(), telemetry.SpanAggregate,
		trace.WithAttributes(
			telemetry.Path(path),
			telemetry.Principal(user),
		))
	defer span.End()

	set, err := d.Engine().GroupedPermissions(path, user)
	if err != nil {
		telemetry.RecordError(ctx, err)
		writeEngineError(w, err)
		return
	}

	WriteJSONOK(w, GroupedResponse{
		Path:  path,
		User:  user,
		Allow: set.Allow,
		Deny:  set.Deny,
	})
}

// AttributionResponse is the response body for GET /api/v1/permissions/attribution.
type AttributionResponse struct {
	Path       string `json:"path"`
	User       string `json:"user"`
	Permission string `json:"permission"`
	Effect     string `json:"effect"`
	// Attributed is true when the grant comes solely from group membership.
	Attributed bool   `json:"attributed"`
	Group      string `json:"group,omitempty"`
}

// Attribution handles GET /api/v1/permissions/attribution?path=&user=&permission=&effect=.
// Reports whether the user's grant originates from group membership rather
// than a direct ACE, and names the responsible group.
func (h *PermissionsHandler) Attribution(w http.ResponseWriter, r *http.Request) {
	d, ok := currentDomain(w, h.domains)
	if !ok {
		return
	}
	path, user, ok := pathUserParams(w, r)
	if !ok {
		return
	}

	perm, err := acl.ParsePermission(r.URL.Query().Get("permission"))
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	effect := acl.Allow
	if raw := r.URL.Query().Get("effect"); raw != "" {
		effect, err = acl.ParseEffect(raw)
		if err != nil {
			BadRequest(w, err.Error())
			return
		}
	}

	ctx, span := telemetry.StartSpan(r.Context(), telemetry.SpanAttribute,
		trace.WithAttributes(
			telemetry.Path(path),
			telemetry.Principal(user),
			telemetry.Permission(perm.String()),
			telemetry.Effect(effect.String()),
		))
	defer span.End()

	group, attributed, err := d.Engine().AttributedGroup(path, user, perm, effect)
	if err != nil {
		telemetry.RecordError(ctx, err)
		writeEngineError(w, err)
		return
	}

	WriteJSONOK(w, AttributionResponse{
		Path:       path,
		User:       user,
		Permission: perm.String(),
		Effect:     effect.String(),
		Attributed: attributed,
		Group:      group,
	})
}
