package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franchisepulse/backend/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLoginRouter(t *testing.T) *gin.Engine {
	t.Helper()
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD_HASH", hash)

	router := gin.New()
	router.POST("/api/auth/login", NewAuthHandler().Login)
	return router
}

func postLogin(t *testing.T, router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSuccessReturnsValidToken(t *testing.T) {
	router := newLoginRouter(t)

	w := postLogin(t, router, gin.H{"email": "admin@example.com", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string           `json:"token"`
		User  auth.UserSession `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, auth.RoleAdmin, resp.User.Role)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.User.Email)
	assert.True(t, claims.User.IsAdmin())
}

func TestLoginIsCaseInsensitiveOnEmail(t *testing.T) {
	router := newLoginRouter(t)
	w := postLogin(t, router, gin.H{"email": "ADMIN@Example.com", "password": "s3cret"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := newLoginRouter(t)

	w := postLogin(t, router, gin.H{"email": "admin@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postLogin(t, router, gin.H{"email": "intruder@example.com", "password": "s3cret"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsMissingFields(t *testing.T) {
	router := newLoginRouter(t)
	w := postLogin(t, router, gin.H{"email": "admin@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginFailsWhenUnconfigured(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	router := gin.New()
	router.POST("/api/auth/login", NewAuthHandler().Login)

	w := postLogin(t, router, gin.H{"email": "admin@example.com", "password": "s3cret"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
