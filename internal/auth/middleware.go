package auth

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	dom "taskvault/internal/domain"
)

const contextKeyUserID = "user_id"

// CredentialChecker resolves a username/password pair to a user.
// Implemented by service.UserService; kept small so tests can fake it.
type CredentialChecker interface {
	CheckCredentials(ctx context.Context, username, password string) (dom.User, error)
}

// UserIDFromContext returns the authenticated user ID set by RequireBasicAuth.
// uuid.Nil if not set.
func UserIDFromContext(c *gin.Context) uuid.UUID {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// RequireBasicAuth returns a middleware that authenticates the request with
// HTTP Basic credentials and stores the resolved user ID in the gin context.
// Any failure (missing header, wrong scheme, bad base64, no colon, unknown
// user, wrong password) responds 401 and aborts.
func RequireBasicAuth(users CredentialChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := parseBasicAuth(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c)
			return
		}
		u, err := users.CheckCredentials(c.Request.Context(), username, password)
		if err != nil {
			unauthorized(c)
			return
		}
		c.Set(contextKeyUserID, u.ID)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
}

// parseBasicAuth extracts username and password from an
// "Authorization: Basic base64(user:pass)" header value.
func parseBasicAuth(header string) (username, password string, ok bool) {
	const prefix = "Basic "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return "", "", false
	}
	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return "", "", false
	}
	return username, password, true
}
