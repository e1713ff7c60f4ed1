package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ntvhs/portal-backend/internal/middleware"
)

type stubAuth struct {
	accept string
}

func (s *stubAuth) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	return "", time.Time{}, errors.New("not implemented")
}

func (s *stubAuth) Validate(ctx context.Context, token string) error {
	if token == s.accept {
		return nil
	}
	return errors.New("invalid token")
}

func (s *stubAuth) Logout(ctx context.Context, token string) error { return nil }

func protectedRouter(accept string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequireAdmin(&stubAuth{accept: accept}))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestRequireAdmin(t *testing.T) {
	router := protectedRouter("good-token")

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer good-token", http.StatusOK},
		{"wrong token", "Bearer bad-token", http.StatusUnauthorized},
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic good-token", http.StatusUnauthorized},
		{"bare token", "good-token", http.StatusUnauthorized},
		{"case-insensitive scheme", "bearer good-token", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, rec.Code, tc.want)
		}
	}
}
