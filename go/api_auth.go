package storefrontserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	identitydomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	identityports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/authz"
)

// AuthAPI exposes the identity provider: sign-up, sign-in, and session upkeep.
type AuthAPI struct {
	service identityports.Service
	gate    authz.Authorizer
	limiter *IPRateLimiter
}

// NewAuthAPI creates an AuthAPI. Register and Login share limiter; nil disables throttling.
func NewAuthAPI(service identityports.Service, gate authz.Authorizer, limiter *IPRateLimiter) AuthAPI {
	return AuthAPI{service: service, gate: gate, limiter: limiter}
}

// RegisterRequest is the sign-up body.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// LoginRequest is the sign-in body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User describes the signed-in identity and whether it holds admin rights.
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	IsAdmin     bool   `json:"isAdmin"`
}

// Session is returned whenever a token is issued.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// Post /v1/auth/register
// Create an account and sign in
func (api *AuthAPI) Register(c *gin.Context) {
	if !allowRequest(c, api.limiter) {
		return
	}
	var payload RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := api.service.Register(c.Request.Context(), identityports.RegisterInput{
		Email:       payload.Email,
		Password:    payload.Password,
		DisplayName: payload.DisplayName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.session(result))
}

// Post /v1/auth/login
// Sign in with email and password
func (api *AuthAPI) Login(c *gin.Context) {
	if !allowRequest(c, api.limiter) {
		return
	}
	var payload LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := api.service.SignIn(c.Request.Context(), identityports.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.session(result))
}

// Post /v1/auth/refresh
// Extend the current session
func (api *AuthAPI) Refresh(c *gin.Context) {
	token := tokenFrom(c)
	if token == "" {
		respondServiceError(c, apperrors.ErrUnauthenticated)
		return
	}
	result, err := api.service.Refresh(c.Request.Context(), token)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.session(result))
}

// Post /v1/auth/logout
// Revoke the current session
func (api *AuthAPI) Logout(c *gin.Context) {
	if token := tokenFrom(c); token != "" {
		if err := api.service.SignOut(c.Request.Context(), token); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/auth/me
// Describe the signed-in identity
func (api *AuthAPI) Me(c *gin.Context) {
	identity := identityFrom(c)
	auth, ok := identitydomain.AsAuthenticated(identity)
	if !ok {
		respondServiceError(c, apperrors.ErrUnauthenticated)
		return
	}
	c.JSON(http.StatusOK, api.user(auth))
}

func (api *AuthAPI) session(result *identityports.AuthResult) Session {
	return Session{Token: result.Token, ExpiresAt: result.ExpiresAt, User: api.user(result.Identity)}
}

func (api *AuthAPI) user(auth identitydomain.Authenticated) User {
	return User{
		UID:         auth.UID,
		Email:       auth.Email,
		DisplayName: auth.DisplayName,
		IsAdmin:     api.gate != nil && api.gate.IsAuthorized(auth),
	}
}
