package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/permdeck/permdeck/pkg/acl"
	"github.com/permdeck/permdeck/pkg/directory"
)

// DirectoryHandler handles principal and file listing endpoints.
type DirectoryHandler struct {
	domains DomainSource
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(domains DomainSource) *DirectoryHandler {
	return &DirectoryHandler{domains: domains}
}

// PrincipalResponse is one entry in the principal listing.
type PrincipalResponse struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"` // "user" or "group"
	DisplayName string   `json:"display_name,omitempty"`
	Members     []string `json:"members,omitempty"`
	// Groups lists the groups containing this principal, direct and nested.
	Groups []string `json:"groups,omitempty"`
}

// ListPrincipals handles GET /api/v1/principals.
// Lists all users and groups in the active domain.
func (h *DirectoryHandler) ListPrincipals(w http.ResponseWriter, r *http.Request) {
	d, ok := currentDomain(w, h.domains)
	if !ok {
		return
	}

	users, err := d.Directory().ListUsers()
	if err != nil {
		InternalServerError(w, err.Error())
		return
	}
	groups, err := d.Directory().ListGroups()
	if err != nil {
		InternalServerError(w, err.Error())
		return
	}

	out := make([]PrincipalResponse, 0, len(users)+len(groups))
	for _, u := range users {
		out = append(out, PrincipalResponse{
			Name:        u.Name,
			Kind:        "user",
			DisplayName: u.DisplayName,
		})
	}
	for _, g := range groups {
		out = append(out, PrincipalResponse{
			Name:    g.Name,
			Kind:    "group",
			Members: g.Members,
		})
	}

	WriteJSONOK(w, out)
}

// GetPrincipal handles GET /api/v1/principals/{name}.
// Returns one principal with its transitive group memberships.
func (h *DirectoryHandler) GetPrincipal(w http.ResponseWriter, r *http.Request) {
	d, ok := currentDomain(w, h.domains)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	isUser, err := d.Directory().IsUser(name)
	if err != nil {
		if errors.Is(err, directory.ErrPrincipalNotFound) {
			NotFound(w, "Principal not found")
			return
		}
		InternalServerError(w, err.Error())
		return
	}

	resp := PrincipalResponse{Name: name}
	if isUser {
		resp.Kind = "user"
		u, err := d.Directory().LookupUser(name)
		if err != nil {
			InternalServerError(w, err.Error())
			return
		}
		resp.DisplayName = u.DisplayName
	} else {
		resp.Kind = "group"
		members, err := d.Directory().Members(name)
		if err != nil {
			InternalServerError(w, err.Error())
			return
		}
		resp.Members = members
	}

	containing, err := directory.GroupsContaining(d.Directory(), name)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	resp.Groups = containing

	WriteJSONOK(w, resp)
}

// FileResponse is one entry in the file listing.
type FileResponse struct {
	Path        string    `json:"path"`
	Parent      string    `json:"parent,omitempty"`
	Inheritance bool      `json:"inheritance"`
	ACL         []acl.ACE `json:"acl"`
}

// ListFiles handles GET /api/v1/files.
// Lists every file in the active domain with its direct ACL.
func (h *DirectoryHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	d, ok := currentDomain(w, h.domains)
	if !ok {
		return
	}

	files := d.Tree().List()
	out := make([]FileResponse, 0, len(files))
	for _, f := range files {
		entry := FileResponse{
			Path:        f.Path(),
			Inheritance: f.InheritanceEnabled(),
			ACL:         f.DirectACL(),
		}
		if p := f.Parent(); p != nil {
			entry.Parent = p.Path()
		}
		out = append(out, entry)
	}

	WriteJSONOK(w, out)
}
