package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/session"
	"github.com/SPS-2025/school-portal-service/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const (
	ctxKeySessionID = "session_id"
	ctxKeyManager   = "session_manager"
	ctxKeyUserID    = "user_id"
)

// sessionClaims carries the opaque session id in the bearer token. The token
// itself holds no profile data; the registry's manager is authoritative.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// AuthMiddleware issues and verifies session bearer tokens.
type AuthMiddleware struct {
	registry *session.Registry
	secret   []byte
	tokenTTL time.Duration
	logger   utils.Logger
}

func NewAuthMiddleware(registry *session.Registry, secret string, logger utils.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		registry: registry,
		secret:   []byte(secret),
		tokenTTL: 24 * time.Hour,
		logger:   logger,
	}
}

// IssueToken signs a bearer token for a registry session.
func (m *AuthMiddleware) IssueToken(sessionID string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
			Issuer:    "school-portal-service",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// parseToken verifies the signature and returns the embedded session id.
func (m *AuthMiddleware) parseToken(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", fmt.Errorf("invalid session token")
	}
	return claims.SessionID, nil
}

// RequireSession resolves the bearer token to a registry session manager.
// The manager is attached to the request context even when still anonymous;
// RequireAuthenticated gates the signed-in-only routes.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing bearer token",
				Code:    "unauthorized",
			})
			return
		}

		sessionID, err := m.parseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			m.logger.Warn("Rejected session token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid session token",
				Code:    "unauthorized",
			})
			return
		}

		mgr, ok := m.registry.Get(sessionID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Session expired",
				Code:    "unauthorized",
			})
			return
		}

		c.Set(ctxKeySessionID, sessionID)
		c.Set(ctxKeyManager, mgr)
		if user := mgr.User(); user != nil {
			c.Set(ctxKeyUserID, user.ID)
		}
		c.Next()
	}
}

// RequireAuthenticated rejects requests whose session has no signed-in user.
func (m *AuthMiddleware) RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		mgr := ManagerFromContext(c)
		if mgr == nil || mgr.User() == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
				Code:    "unauthorized",
			})
			return
		}
		c.Next()
	}
}

// RequireRoles allows only signed-in users holding one of the given roles.
func (m *AuthMiddleware) RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		mgr := ManagerFromContext(c)
		if mgr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
				Code:    "unauthorized",
			})
			return
		}
		user := mgr.User()
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
				Code:    "unauthorized",
			})
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Message: "Insufficient permissions",
			Code:    "forbidden",
		})
	}
}

// ManagerFromContext returns the session manager attached by RequireSession.
func ManagerFromContext(c *gin.Context) *session.Manager {
	value, exists := c.Get(ctxKeyManager)
	if !exists {
		return nil
	}
	mgr, _ := value.(*session.Manager)
	return mgr
}

// SessionIDFromContext returns the session id attached by RequireSession.
func SessionIDFromContext(c *gin.Context) string {
	return c.GetString(ctxKeySessionID)
}
