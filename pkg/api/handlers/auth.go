package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/permdeck/permdeck/internal/logger"
	"github.com/permdeck/permdeck/pkg/api/auth"
	"github.com/permdeck/permdeck/pkg/api/middleware"
)

// AuthHandler handles authentication-related API endpoints.
//
// PermDeck has a single admin credential configured at init time; the login
// endpoint checks it and issues a bearer token for the rest of the API.
type AuthHandler struct {
	adminUsername string
	passwordHash  string
	jwtService    *auth.JWTService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(adminUsername, passwordHash string, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		adminUsername: adminUsername,
		passwordHash:  passwordHash,
		jwtService:    jwtService,
	}
}

// LoginRequest is the request body for POST /api/v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the response body for POST /api/v1/auth/login.
type LoginResponse struct {
	auth.Token
	Username string `json:"username"`
}

// Login handles POST /api/v1/auth/login.
// Authenticates the admin credential and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Username == "" || req.Password == "" {
		BadRequest(w, "Username and password are required")
		return
	}

	if h.passwordHash == "" {
		logger.WarnCtx(r.Context(), "Login attempted but no admin password hash is configured")
		Unauthorized(w, "Invalid username or password")
		return
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.adminUsername)) == 1
	passwordErr := auth.VerifyPassword(h.passwordHash, req.Password)
	if !usernameMatch || passwordErr != nil {
		if passwordErr != nil && !errors.Is(passwordErr, auth.ErrInvalidCredentials) {
			InternalServerError(w, "Authentication failed")
			return
		}
		Unauthorized(w, "Invalid username or password")
		return
	}

	token, err := h.jwtService.GenerateToken(req.Username)
	if err != nil {
		InternalServerError(w, "Failed to generate token")
		return
	}

	WriteJSONOK(w, LoginResponse{Token: *token, Username: req.Username})
}

// Me handles GET /api/v1/auth/me.
// Returns the current authenticated user's information.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	WriteJSONOK(w, map[string]interface{}{
		"username":   claims.Username,
		"expires_at": claims.ExpiresAt,
	})
}
