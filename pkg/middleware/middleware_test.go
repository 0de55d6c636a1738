package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/captive-portal-api/internal/domain"
)

type stubValidator struct {
	claims *domain.Claims
	err    error
}

func (s stubValidator) ValidateToken(string) (*domain.Claims, error) {
	return s.claims, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	admin := &domain.Claims{UserEmail: "admin@portal.local", UserRoleID: RoleAdmin}

	tests := []struct {
		name      string
		path      string
		header    string
		validator stubValidator
		status    int
	}{
		{name: "portal route is public", path: "/v1/portal/login", status: http.StatusNoContent},
		{name: "admin login is public", path: "/v1/admin/login", status: http.StatusNoContent},
		{name: "admin route without header", path: "/v1/admin/ads", status: http.StatusUnauthorized},
		{name: "admin route without bearer", path: "/v1/admin/ads", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "admin route with bad token", path: "/v1/admin/ads", header: "Bearer bad", validator: stubValidator{err: errors.New("bad")}, status: http.StatusUnauthorized},
		{name: "admin route with token", path: "/v1/admin/ads", header: "Bearer good", validator: stubValidator{claims: admin}, status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.validator)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	run := func(claims *domain.Claims) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
		rec := httptest.NewRecorder()
		h := AuthMiddleware(stubValidator{claims: claims})(AdminOnly()(okHandler()))
		if claims != nil {
			req.Header.Set("Authorization", "Bearer token")
		}
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, run(&domain.Claims{UserRoleID: RoleAdmin}))
	assert.Equal(t, http.StatusForbidden, run(&domain.Claims{UserRoleID: 7}))
	assert.Equal(t, http.StatusUnauthorized, run(nil))
}

func TestCors(t *testing.T) {
	h := Cors([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/rate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/rate", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/v1/rate", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogPanicMiddleware(t *testing.T) {
	h := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLoggingMiddleware_KeepsStatus(t *testing.T) {
	h := LoggingMiddleware()(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
