package handlers

import (
	"net/http"

	"github.com/permdeck/permdeck/internal/logger"
	"github.com/permdeck/permdeck/internal/telemetry"
	"github.com/permdeck/permdeck/pkg/acl"
)

// GrantsHandler handles permission mutation endpoints.
type GrantsHandler struct {
	domains DomainSource
}

// NewGrantsHandler creates a new GrantsHandler.
func NewGrantsHandler(domains DomainSource) *GrantsHandler {
	return &GrantsHandler{domains: domains}
}

// SetGrantRequest is the request body for POST /api/v1/grants.
type SetGrantRequest struct {
	Path       string `json:"path"`
	User       string `json:"user"`
	Permission string `json:"permission"`
	Effect     string `json:"effect"`
	// Present adds the grant when true and retracts it when false.
	Present *bool `json:"present"`
}

// SetGroupGrantRequest is the request body for POST /api/v1/grants/group.
type SetGroupGrantRequest struct {
	Path    string `json:"path"`
	User    string `json:"user"`
	Group   string `json:"group"`
	Effect  string `json:"effect"`
	Present *bool  `json:"present"`
}

// GrantResponse echoes the applied mutation.
type GrantResponse struct {
	Path       string `json:"path"`
	User       string `json:"user"`
	Permission string `json:"permission,omitempty"`
	Group      string `json:"group,omitempty"`
	Effect     string `json:"effect"`
	Present    bool   `json:"present"`
}

// Set handles POST /api/v1/grants.
// Adds or retracts a single direct permission for a user on a file.
func (h *GrantsHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req SetGrantRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Path == "" || req.User == "" {
		BadRequest(w, "Fields 'path' and 'user' are required")
		return
	}
	if req.Present == nil {
		BadRequest(w, "Field 'present' is required")
		return
	}

	perm, err := acl.ParsePermission(req.Permission)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}
	effect, err := parseEffectDefault(req.Effect)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	d, ok := currentDomain(w, h.domains)
	if !ok {
		return
	}

	ctx, span := telemetry.StartMutationSpan(r.Context(), req.Path, req.User,
		telemetry.Permission(perm.String()),
		telemetry.Effect(effect.String()),
		telemetry.Present(*req.Present),
	)
	defer span.End()

	if err := d.Engine().SetPermission(req.Path, req.User, perm, effect, *req.Present); err != nil {
		telemetry.RecordError(ctx, err)
		writeEngineError(w, err)
		return
	}

	logger.InfoCtx(ctx, "Permission updated",
		logger.Path(req.Path),
		logger.Principal(req.User),
		logger.Permission(perm),
		logger.Effect(effect),
		logger.KeyPresent, *req.Present,
	)

	WriteJSONOK(w, GrantResponse{
		Path:       req.Path,
		User:       req.User,
		Permission: perm.String(),
		Effect:     effect.String(),
		Present:    *req.Present,
	})
}

// SetGroup handles POST /api/v1/grants/group.
// Adds or retracts a whole permission group for a user on a file.
func (h *GrantsHandler) SetGroup(w http.ResponseWriter, r *http.Request) {
	var req SetGroupGrantRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Path == "" || req.User == "" {
		BadRequest(w, "Fields 'path' and 'user' are required")
		return
	}
	if req.Present == nil {
		BadRequest(w, "Field 'present' is required")
		return
	}

	group, err := acl.ParsePermissionGroup(req.Group)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}
	effect, err := parseEffectDefault(req.Effect)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	d, ok := currentDomain(w, h.domains)
	if !ok {
		return
	}

	ctx, span := telemetry.StartMutationSpan(r.Context(), req.Path, req.User,
		telemetry.Group(group.String()),
		telemetry.Effect(effect.String()),
		telemetry.Present(*req.Present),
	)
	defer span.End()

	if err := d.Engine().SetPermissionGroup(req.Path, req.User, group, effect, *req.Present); err != nil {
		telemetry.RecordError(ctx, err)
		writeEngineError(w, err)
		return
	}

	logger.InfoCtx(ctx, "Permission group updated",
		logger.Path(req.Path),
		logger.Principal(req.User),
		logger.KeyGroup, group.String(),
		logger.Effect(effect),
		logger.KeyPresent, *req.Present,
	)

	WriteJSONOK(w, GrantResponse{
		Path:    req.Path,
		User:    req.User,
		Group:   group.String(),
		Effect:  effect.String(),
		Present: *req.Present,
	})
}

// parseEffectDefault parses an effect string, defaulting to allow when empty.
func parseEffectDefault(raw string) (acl.Effect, error) {
	if raw == "" {
		return acl.Allow, nil
	}
	return acl.ParseEffect(raw)
}
