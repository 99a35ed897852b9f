package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"socialmedia/backend/internal/apperror"
	"socialmedia/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubTokens map[string]string

func (s stubTokens) ParseToken(token string) (string, error) {
	if username, ok := s[token]; ok {
		return username, nil
	}
	return "", errors.New("invalid token")
}

type stubUsers map[string]*models.User

func (s stubUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if username == "broken" {
		return nil, errors.New("db down")
	}
	if u, ok := s[username]; ok {
		return u, nil
	}
	return nil, apperror.NotFound("user %s not found", username)
}

func newRouter(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append(middleware, func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.String(http.StatusOK, user.Username)
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokens := stubTokens{"good": "alice", "ghost": "nobody", "fail": "broken"}
	users := stubUsers{
		"alice": {ID: 1, Username: "alice"},
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK, wantBody: "alice"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", wantStatus: http.StatusUnauthorized},
		{name: "unknown user", header: "Bearer ghost", wantStatus: http.StatusUnauthorized},
		{name: "lookup failure", header: "Bearer fail", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(AuthMiddleware(tokens, users))
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tokens := stubTokens{"admin": "root", "user": "alice"}
	users := stubUsers{
		"root":  {ID: 1, Username: "root", Roles: []models.Role{{Name: models.RoleUser}, {Name: models.RoleAdmin}}},
		"alice": {ID: 2, Username: "alice", Roles: []models.Role{{Name: models.RoleUser}}},
	}
	r := newRouter(AuthMiddleware(tokens, users), RequireRole(models.RoleAdmin))

	for token, want := range map[string]int{"admin": http.StatusOK, "user": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, token)
	}

	// without AuthMiddleware there is no user
	bare := newRouter(RequireRole(models.RoleAdmin))
	w := httptest.NewRecorder()
	bare.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
