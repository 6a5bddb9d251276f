package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SPS-2025/school-portal-service/internal/identity"
	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/session"
	"github.com/SPS-2025/school-portal-service/internal/store"
	"github.com/SPS-2025/school-portal-service/internal/utils"
)

func newAuthTestEnv(t *testing.T) (*session.Registry, *AuthMiddleware, *gin.Engine) {
	return newAuthTestEnvTTL(t, time.Hour)
}

func newAuthTestEnvTTL(t *testing.T, ttl time.Duration) (*session.Registry, *AuthMiddleware, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := utils.NewDevelopmentLogger()
	provider := identity.NewMemoryProvider()
	registry := session.NewRegistry(func() *session.Manager {
		return session.NewManager(
			provider,
			store.NewMemoryProfileStore(),
			store.NewMemoryBlobStore(),
			session.NewLogNotifier(logger),
			logger,
		)
	}, ttl)
	auth := NewAuthMiddleware(registry, "test-secret", logger)

	router := gin.New()
	sessioned := router.Group("", auth.RequireSession())
	sessioned.GET("/session", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session_id": SessionIDFromContext(c)})
	})
	sessioned.GET("/me", auth.RequireAuthenticated(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(ctxKeyUserID)})
	})
	sessioned.GET("/staff", auth.RequireRoles(models.RoleTeacher, models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return registry, auth, router
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	_, _, router := newAuthTestEnv(t)
	rec := doRequest(router, "/session", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedToken(t *testing.T) {
	_, _, router := newAuthTestEnv(t)
	rec := doRequest(router, "/session", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_TokenForRemovedSession(t *testing.T) {
	registry, auth, router := newAuthTestEnv(t)

	id, _ := registry.Create()
	token, err := auth.IssueToken(id)
	require.NoError(t, err)

	registry.Remove(id)
	rec := doRequest(router, "/session", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ValidSessionToken(t *testing.T) {
	registry, auth, router := newAuthTestEnv(t)

	id, _ := registry.Create()
	token, err := auth.IssueToken(id)
	require.NoError(t, err)

	rec := doRequest(router, "/session", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), id)
}

func TestAuthMiddleware_RequireAuthenticated(t *testing.T) {
	registry, auth, router := newAuthTestEnv(t)

	id, mgr := registry.Create()
	token, err := auth.IssueToken(id)
	require.NoError(t, err)

	// Session exists but nobody signed in.
	rec := doRequest(router, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, err = mgr.Signup(context.Background(), "a@x.com", "pw123456")
	require.NoError(t, err)

	rec = doRequest(router, "/me", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), mgr.User().ID)
}

func TestAuthMiddleware_RequireRolesRejectsStudent(t *testing.T) {
	registry, auth, router := newAuthTestEnv(t)

	id, mgr := registry.Create()
	token, err := auth.IssueToken(id)
	require.NoError(t, err)

	_, err = mgr.Signup(context.Background(), "a@x.com", "pw123456")
	require.NoError(t, err)

	rec := doRequest(router, "/staff", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthMiddleware_ExpiredSessionYields401(t *testing.T) {
	registry, auth, router := newAuthTestEnvTTL(t, time.Millisecond)

	id, _ := registry.Create()
	token, err := auth.IssueToken(id)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	rec := doRequest(router, "/session", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, registry.Len())
}

func TestAuthMiddleware_RejectsTokenSignedWithOtherSecret(t *testing.T) {
	registry, _, router := newAuthTestEnv(t)

	other := NewAuthMiddleware(registry, "different-secret", utils.NewDevelopmentLogger())
	id, _ := registry.Create()
	token, err := other.IssueToken(id)
	require.NoError(t, err)

	rec := doRequest(router, "/session", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
