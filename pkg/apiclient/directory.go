package apiclient

import "github.com/permdeck/permdeck/pkg/acl"

// Principal is one entry in the principal listing.
type Principal struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	DisplayName string   `json:"display_name,omitempty"`
	Members     []string `json:"members,omitempty"`
	Groups      []string `json:"groups,omitempty"`
}

// File is one entry in the file listing.
type File struct {
	Path        string    `json:"path"`
	Parent      string    `json:"parent,omitempty"`
	Inheritance bool      `json:"inheritance"`
	ACL         []acl.ACE `json:"acl"`
}

// ListPrincipals lists all users and groups in the active domain.
func (c *Client) ListPrincipals() ([]Principal, error) {
	return listResources[Principal](c, "/api/v1/principals")
}

// GetPrincipal returns one principal with its transitive group memberships.
func (c *Client) GetPrincipal(name string) (*Principal, error) {
	return getResource[Principal](c, resourcePath("/api/v1/principals/%s", name))
}

// ListFiles lists every file in the active domain with its direct ACL.
func (c *Client) ListFiles() ([]File, error) {
	return listResources[File](c, "/api/v1/files")
}
