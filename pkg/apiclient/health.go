package apiclient

import "net/http"

// Readiness is the payload of the readiness endpoint.
type Readiness struct {
	Domain string `json:"domain"`
	Users  int    `json:"users"`
	Groups int    `json:"groups"`
	Files  int    `json:"files"`
}

// Healthy reports whether the server answers the liveness probe.
func (c *Client) Healthy() bool {
	resp, err := c.httpClient.Get(c.baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

// Ready returns the readiness payload, or an error when no domain is loaded.
func (c *Client) Ready() (*Readiness, error) {
	return getResource[Readiness](c, "/health/ready")
}
