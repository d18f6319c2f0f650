package apiclient

import (
	"github.com/permdeck/permdeck/pkg/acl"
	"github.com/permdeck/permdeck/pkg/engine"
)

// EffectivePermissions is the payload of the effective-permissions endpoint.
type EffectivePermissions struct {
	Path   string                                 `json:"path"`
	User   string                                 `json:"user"`
	States map[string]engine.PermissionState      `json:"states"`
	Allow  map[acl.Permission][]engine.Provenance `json:"allow"`
	Deny   map[acl.Permission][]engine.Provenance `json:"deny"`
}

// GroupedPermissions is the payload of the grouped-permissions endpoint.
type GroupedPermissions struct {
	Path  string                                     `json:"path"`
	User  string                                     `json:"user"`
	Allow map[acl.PermissionGroup]engine.GroupStatus `json:"allow"`
	Deny  map[acl.PermissionGroup]engine.GroupStatus `json:"deny"`
}

// Attribution is the payload of the attribution endpoint.
type Attribution struct {
	Path       string `json:"path"`
	User       string `json:"user"`
	Permission string `json:"permission"`
	Effect     string `json:"effect"`
	Attributed bool   `json:"attributed"`
	Group      string `json:"group,omitempty"`
}

// EffectivePermissions returns the user's effective permission set on a file.
func (c *Client) EffectivePermissions(path, user string) (*EffectivePermissions, error) {
	return getResource[EffectivePermissions](c, queryPath("/api/v1/permissions/effective", map[string]string{
		"path": path,
		"user": user,
	}))
}

// GroupedPermissions returns the effective set folded onto the
// permission-group catalog.
func (c *Client) GroupedPermissions(path, user string) (*GroupedPermissions, error) {
	return getResource[GroupedPermissions](c, queryPath("/api/v1/permissions/grouped", map[string]string{
		"path": path,
		"user": user,
	}))
}

// Attribution reports whether a grant originates from group membership.
func (c *Client) Attribution(path, user, permission, effect string) (*Attribution, error) {
	return getResource[Attribution](c, queryPath("/api/v1/permissions/attribution", map[string]string{
		"path":       path,
		"user":       user,
		"permission": permission,
		"effect":     effect,
	}))
}
