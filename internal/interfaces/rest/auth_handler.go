package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/franchisepulse/backend/pkg/auth"
	"github.com/franchisepulse/backend/pkg/config"
	"github.com/franchisepulse/backend/pkg/errors"
	"github.com/franchisepulse/backend/pkg/utils"
)

// AuthHandler issues JWTs for the single env-configured admin account.
type AuthHandler struct {
	adminEmail   string
	passwordHash string
}

// NewAuthHandler reads ADMIN_EMAIL and ADMIN_PASSWORD_HASH from the
// environment.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		adminEmail:   config.String("ADMIN_EMAIL", "admin@franchisepulse.local"),
		passwordHash: config.String("ADMIN_PASSWORD_HASH", ""),
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSON(c, &req) {
		return
	}

	if h.passwordHash == "" {
		RespondAppError(c, errors.NewInternalError("admin login is not configured", nil))
		return
	}

	if !strings.EqualFold(req.Email, h.adminEmail) || !auth.VerifyPassword(req.Password, h.passwordHash) {
		RespondAppError(c, errors.NewUnauthorizedError("invalid credentials"))
		return
	}

	session := auth.UserSession{
		ID:    utils.GenerateID(),
		Email: h.adminEmail,
		Role:  auth.RoleAdmin,
	}
	token, err := auth.GenerateToken(session)
	if err != nil {
		RespondAppError(c, errors.NewInternalError("failed to generate token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  session,
	})
}
