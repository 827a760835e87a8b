package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// staticTokens accepts the tokens it was built with and nothing else.
type staticTokens map[string]string

func (s staticTokens) ValidateToken(token string) (string, error) {
	userID, ok := s[token]
	if !ok {
		return "", errors.New("unknown token")
	}
	return userID, nil
}

func whoamiRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(mw)
	router.GET("/whoami", func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, userID)
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	router := whoamiRouter(AuthMiddleware(staticTokens{"good-token": "user-123"}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer good-token", http.StatusOK, "user-123"},
		{"missing header", "", http.StatusUnauthorized, "authorization header required"},
		{"scheme only", "Bearer", http.StatusUnauthorized, "invalid authorization header format"},
		{"wrong scheme", "Token good-token", http.StatusUnauthorized, "invalid authorization header format"},
		{"no separator", "Bearergood-token", http.StatusUnauthorized, "invalid authorization header format"},
		{"extra field", "Bearer good-token extra", http.StatusUnauthorized, "invalid authorization header format"},
		{"unknown token", "Bearer forged", http.StatusUnauthorized, "invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestLocalOwnerMiddleware(t *testing.T) {
	router := whoamiRouter(LocalOwnerMiddleware(LocalOwnerID))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer ignored")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "local", w.Body.String())
}

func TestGetUserID_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	assert.False(t, ok)
}
