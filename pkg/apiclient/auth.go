package apiclient

import "time"

// LoginResponse is the payload returned by the login endpoint.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
}

// Login authenticates with the admin credential and stores the returned
// token on the client for subsequent requests.
func (c *Client) Login(username, password string) (*LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	resp, err := createResource[LoginResponse](c, "/api/v1/auth/login", body)
	if err != nil {
		return nil, err
	}
	c.token = resp.AccessToken
	return resp, nil
}
