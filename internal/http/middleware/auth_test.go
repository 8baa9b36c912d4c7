package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nurpe/tourbook/internal/auth"
	"github.com/nurpe/tourbook/internal/model"
)

type stubSessions map[string]model.Principal

func (s stubSessions) GetSession(token string) auth.Session {
	principal, ok := s[token]
	if !ok {
		return auth.Session{}
	}
	return auth.Session{Valid: true, Principal: principal}
}

func setupRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", handler, func(c *gin.Context) {
		principal, ok := MustPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "role": principal.Role})
	})
	return router
}

func TestAuth(t *testing.T) {
	sessions := stubSessions{"good": {UserID: uuid.New(), Role: model.RoleUser}}
	router := setupRouter(Auth(sessions, "session"))

	tests := []struct {
		name   string
		header string
		cookie string
		status int
	}{
		{"bearer token", "Bearer good", "", http.StatusOK},
		{"session cookie", "", "good", http.StatusOK},
		{"missing token", "", "", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	sessions := stubSessions{"good": {UserID: uuid.New(), Role: model.RoleAdmin}}
	router := setupRouter(OptionalAuth(sessions, "session"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}
