package apiclient

// Grant echoes a successfully applied mutation.
type Grant struct {
	Path       string `json:"path"`
	User       string `json:"user"`
	Permission string `json:"permission,omitempty"`
	Group      string `json:"group,omitempty"`
	Effect     string `json:"effect"`
	Present    bool   `json:"present"`
}

type setGrantRequest struct {
	Path       string `json:"path"`
	User       string `json:"user"`
	Permission string `json:"permission,omitempty"`
	Group      string `json:"group,omitempty"`
	Effect     string `json:"effect,omitempty"`
	Present    bool   `json:"present"`
}

// SetGrant adds (present=true) or retracts (present=false) a single direct
// permission for a user on a file.
func (c *Client) SetGrant(path, user, permission, effect string, present bool) (*Grant, error) {
	return createResource[Grant](c, "/api/v1/grants", setGrantRequest{
		Path:       path,
		User:       user,
		Permission: permission,
		Effect:     effect,
		Present:    present,
	})
}

// SetGroupGrant adds or retracts a whole permission group for a user on a file.
func (c *Client) SetGroupGrant(path, user, group, effect string, present bool) (*Grant, error) {
	return createResource[Grant](c, "/api/v1/grants/group", setGrantRequest{
		Path:    path,
		User:    user,
		Group:   group,
		Effect:  effect,
		Present: present,
	})
}
