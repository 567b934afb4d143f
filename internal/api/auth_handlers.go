package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/quicksplit/internal/auth"
)

// AuthHandlers serves registration and login.
type AuthHandlers struct {
	authn auth.Authenticator
	jwt   *auth.JWTManager
}

// NewAuthHandlers creates the auth handler set.
func NewAuthHandlers(authn auth.Authenticator, jwt *auth.JWTManager) *AuthHandlers {
	return &AuthHandlers{authn: authn, jwt: jwt}
}

// Register creates a new account and returns a session token.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authn.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.jwt.Generate(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		Token:  token,
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	})
}

// Login authenticates an existing account and returns a session token.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authn.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.jwt.Generate(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Token:  token,
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	})
}
