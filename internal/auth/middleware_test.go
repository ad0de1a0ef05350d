package auth

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "taskvault/internal/domain"
)

type fakeChecker struct {
	username string
	password string
	user     dom.User
}

func (f *fakeChecker) CheckCredentials(_ context.Context, username, password string) (dom.User, error) {
	if username == f.username && password == f.password {
		return f.user, nil
	}
	return dom.User{}, assert.AnError
}

func basicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func newAuthTestRouter(checker CredentialChecker, captured *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/tasks", RequireBasicAuth(checker))
	g.GET("/", func(c *gin.Context) {
		*captured = UserIDFromContext(c)
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireBasicAuth_Success(t *testing.T) {
	aliceID := uuid.New()
	checker := &fakeChecker{username: "alice", password: "pw1", user: dom.User{ID: aliceID, Username: "alice"}}

	var captured uuid.UUID
	r := newAuthTestRouter(checker, &captured)

	req := httptest.NewRequest(http.MethodGet, "/tasks/", nil)
	req.Header.Set("Authorization", basicHeader("alice", "pw1"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, aliceID, captured)
}

func TestRequireBasicAuth_Rejections(t *testing.T) {
	checker := &fakeChecker{username: "alice", password: "pw1", user: dom.User{ID: uuid.New()}}

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Bearer abcdef"},
		{name: "bad base64", header: "Basic ???not-base64???"},
		{name: "no colon in payload", header: "Basic " + base64.StdEncoding.EncodeToString([]byte("alicepw1"))},
		{name: "unknown user", header: basicHeader("mallory", "pw1")},
		{name: "wrong password", header: basicHeader("alice", "wrong")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured uuid.UUID
			r := newAuthTestRouter(checker, &captured)

			req := httptest.NewRequest(http.MethodGet, "/tasks/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, uuid.Nil, captured, "handler must not run on rejection")
		})
	}
}

func TestParseBasicAuth(t *testing.T) {
	t.Run("password may contain colons", func(t *testing.T) {
		// Split on the FIRST colon only.
		user, pass, ok := parseBasicAuth(basicHeader("alice", "pw:with:colons"))
		require.True(t, ok)
		assert.Equal(t, "alice", user)
		assert.Equal(t, "pw:with:colons", pass)
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		raw := "basic " + base64.StdEncoding.EncodeToString([]byte("alice:pw"))
		_, _, ok := parseBasicAuth(raw)
		assert.True(t, ok)
	})
}
