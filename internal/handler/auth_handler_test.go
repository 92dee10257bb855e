package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawhaven/shelter-api/internal/dto"
	"github.com/pawhaven/shelter-api/internal/middleware"
	"github.com/pawhaven/shelter-api/internal/service"
	"github.com/pawhaven/shelter-api/pkg/config"
)

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	return service.NewAuthService(config.AuthConfig{
		JWTSecret:         "test-secret",
		TokenExpiration:   time.Hour,
		AdminEmail:        "admin@pawhaven.org",
		AdminName:         "Shelter Admin",
		AdminPasswordHash: string(hash),
	}, zap.NewNop())
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func buildAuthRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	gin.SetMode(gin.TestMode)
	auth := newTestAuthService(t)
	router := gin.New()
	router.POST("/auth/login", NewAuthHandler(auth).Login)
	router.GET("/admin/ping", middleware.JWT(auth), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router, auth
}

func TestAuthLoginSuccess(t *testing.T) {
	router, _ := buildAuthRouter(t)

	body := bytes.NewBufferString(`{"email":"Admin@PawHaven.org","password":"correct horse"}`)
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"token"`)
	require.Contains(t, resp.Body.String(), `"admin@pawhaven.org"`)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	router, _ := buildAuthRouter(t)

	body := bytes.NewBufferString(`{"email":"admin@pawhaven.org","password":"wrong"}`)
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	resp := performRequest(router, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Contains(t, resp.Body.String(), `"UNAUTHORIZED"`)
}

func TestAuthLoginBindFailure(t *testing.T) {
	router, _ := buildAuthRouter(t)

	body := bytes.NewBufferString(`{"email":"not-an-email"}`)
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	resp := performRequest(router, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), `"VALIDATION_ERROR"`)
	require.Contains(t, resp.Body.String(), `"email"`)
}

func TestJWTMiddlewareProtectsAdminRoutes(t *testing.T) {
	router, auth := buildAuthRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	req, _ = http.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Token abc")
	resp = performRequest(router, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	req, _ = http.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp = performRequest(router, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	login, err := auth.Login(dto.LoginRequest{Email: "admin@pawhaven.org", Password: "correct horse"})
	require.NoError(t, err)

	req, _ = http.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp = performRequest(router, req)
	require.Equal(t, http.StatusNoContent, resp.Code)
}
