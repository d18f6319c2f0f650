package apiclient

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/permdeck/permdeck/pkg/api"
	"github.com/permdeck/permdeck/pkg/api/auth"
	"github.com/permdeck/permdeck/pkg/domain"
)

const clientSeed = `
name: corp
users:
  - name: alice
  - name: bob
groups:
  - name: staff
    members: [alice, bob]
files:
  - path: /docs
    acl:
      - principal: staff
        permission: read-data
        effect: allow
`

type staticDomains struct {
	d *domain.Domain
}

func (s *staticDomains) Current() *domain.Domain { return s.d }
func (s *staticDomains) Set(d *domain.Domain)    { s.d = d }

func newTestServer(t *testing.T, jwt *auth.JWTService) *httptest.Server {
	t.Helper()

	seed, err := domain.ParseSeed([]byte(clientSeed))
	if err != nil {
		t.Fatalf("parsing seed: %v", err)
	}
	d, err := domain.FromSeed(seed)
	if err != nil {
		t.Fatalf("building domain: %v", err)
	}

	hash, err := auth.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	router := api.NewRouter(api.RouterDeps{
		Domains:           &staticDomains{d: d},
		JWT:               jwt,
		AdminUsername:     "admin",
		AdminPasswordHash: hash,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientEffectivePermissions(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(srv.URL)

	eff, err := c.EffectivePermissions("/docs", "bob")
	if err != nil {
		t.Fatalf("EffectivePermissions: %v", err)
	}
	if eff.States["read-data"] != "allowed" {
		t.Errorf("read-data state = %s, want allowed", eff.States["read-data"])
	}
	if eff.User != "bob" {
		t.Errorf("user = %s, want bob", eff.User)
	}
}

func TestClientUnknownFileIsNotFound(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(srv.URL)

	_, err := c.EffectivePermissions("/nope", "bob")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if !apiErr.IsNotFound() {
		t.Errorf("expected not-found error, got status %d", apiErr.StatusCode)
	}
}

func TestClientGrantRoundTrip(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(srv.URL)

	if _, err := c.SetGrant("/docs", "alice", "delete", "allow", true); err != nil {
		t.Fatalf("SetGrant: %v", err)
	}

	eff, err := c.EffectivePermissions("/docs", "alice")
	if err != nil {
		t.Fatalf("EffectivePermissions: %v", err)
	}
	if eff.States["delete"] != "allowed" {
		t.Errorf("delete state = %s, want allowed", eff.States["delete"])
	}
}

func TestClientGroupAttributedRevokeIsConflict(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(srv.URL)

	_, err := c.SetGrant("/docs", "bob", "read-data", "allow", false)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if !apiErr.IsConflict() {
		t.Errorf("expected conflict error, got status %d", apiErr.StatusCode)
	}
}

func TestClientAttribution(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(srv.URL)

	attr, err := c.Attribution("/docs", "bob", "read-data", "allow")
	if err != nil {
		t.Fatalf("Attribution: %v", err)
	}
	if !attr.Attributed || attr.Group != "staff" {
		t.Errorf("attribution = %+v, want attributed via staff", attr)
	}
}

func TestClientListings(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(srv.URL)

	principals, err := c.ListPrincipals()
	if err != nil {
		t.Fatalf("ListPrincipals: %v", err)
	}
	if len(principals) != 3 {
		t.Errorf("principals = %d, want 3", len(principals))
	}

	files, err := c.ListFiles()
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 1 || files[0].Path != "/docs" {
		t.Errorf("files = %+v, want [/docs]", files)
	}
}

func TestClientLoginFlow(t *testing.T) {
	jwt := auth.NewJWTService("test-secret", time.Hour)
	srv := newTestServer(t, jwt)
	c := New(srv.URL)

	// Unauthenticated request is refused
	_, err := c.ListPrincipals()
	var apiErr *APIError
	if !errors.As(err, &apiErr) || !apiErr.IsAuthError() {
		t.Fatalf("expected auth error, got %v", err)
	}

	resp, err := c.Login("admin", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected non-empty access token")
	}

	if _, err := c.ListPrincipals(); err != nil {
		t.Errorf("authenticated ListPrincipals: %v", err)
	}
}

func TestClientReady(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(srv.URL)

	if !c.Healthy() {
		t.Error("expected server to be healthy")
	}

	ready, err := c.Ready()
	if err != nil {
		t.Fatalf("Ready: %v", err)
	}
	if ready.Domain != "corp" || ready.Users != 2 {
		t.Errorf("readiness = %+v, want corp with 2 users", ready)
	}
}
