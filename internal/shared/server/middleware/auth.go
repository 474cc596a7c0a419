package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"genius-backend/internal/shared/auth"
	"genius-backend/internal/shared/server/respond"
)

const (
	adminIDKey    = "adminId"
	adminEmailKey = "adminEmail"
	adminNameKey  = "adminName"
	sessionKey    = "sessionToken"
)

// SessionVerifier checks a bearer session token and returns its claims.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (auth.Claims, error)
}

// AdminSession requires a valid admin session on every request of the group it guards.
func AdminSession(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if verifier == nil {
			respond.Error(c, http.StatusServiceUnavailable, "auth_not_configured", "admin sessions are not configured", nil)
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrSessionStoreUnavailable) {
				respond.StoreUnavailable(c, err)
				return
			}
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(adminIDKey, claims.Subject)
		if claims.Email != "" {
			c.Set(adminEmailKey, claims.Email)
		}
		if claims.Name != "" {
			c.Set(adminNameKey, claims.Name)
		}
		c.Set(sessionKey, token)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	if token == "" {
		return "", false
	}
	return token, true
}

// AdminIDFromContext fetches the admin ID set by AdminSession.
func AdminIDFromContext(c *gin.Context) string {
	return stringFromContext(c, adminIDKey)
}

// AdminEmailFromContext fetches the admin email set by AdminSession.
func AdminEmailFromContext(c *gin.Context) string {
	return stringFromContext(c, adminEmailKey)
}

// AdminNameFromContext fetches the admin display name set by AdminSession.
func AdminNameFromContext(c *gin.Context) string {
	return stringFromContext(c, adminNameKey)
}

// SessionTokenFromContext returns the raw bearer token accepted by AdminSession.
func SessionTokenFromContext(c *gin.Context) string {
	return stringFromContext(c, sessionKey)
}

func stringFromContext(c *gin.Context, key string) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(key)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
