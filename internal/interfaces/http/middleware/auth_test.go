package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	identityapp "github.com/foodhub/backend/internal/application/identity"
	"github.com/foodhub/backend/internal/domain/identity"
	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/foodhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	principals map[string]*identityapp.Principal
	err        error
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*identityapp.Principal, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.principals[token]
	if !ok {
		return nil, shared.NewAuthenticationError("Invalid token")
	}
	return p, nil
}

func newAuthRouter(a Authenticator) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	protected := router.Group("/", RequireAuth(a))
	protected.GET("/me", func(c *gin.Context) {
		p, _ := GetPrincipal(c)
		c.String(http.StatusOK, p.UserID)
	})
	protected.GET("/merchant", RequireMerchant(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRequireAuth(t *testing.T) {
	a := &stubAuthenticator{principals: map[string]*identityapp.Principal{
		"customer-token": {UserID: "u1", Role: identity.RoleCustomer},
		"merchant-token": {UserID: "m1", Role: identity.RoleMerchant},
	}}
	router := newAuthRouter(a)

	tests := []struct {
		name    string
		header  string
		status  int
		code    string
		message string
	}{
		{"missing header", "", http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authorization token is required"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authorization header must use the Bearer scheme"},
		{"empty bearer", "Bearer  ", http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authorization token is required"},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error)
			assert.Equal(t, tt.message, resp.Message)
			assert.NotEmpty(t, resp.RequestID)
		})
	}

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(AuthHeaderKey, "Bearer customer-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1", w.Body.String())
	})

	t.Run("unexpected failure is a 500", func(t *testing.T) {
		broken := newAuthRouter(&stubAuthenticator{err: errors.New("boom")})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(AuthHeaderKey, "Bearer x")
		w := httptest.NewRecorder()
		broken.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", decodeResponse(t, w).Message)
	})
}

func TestRequireMerchant(t *testing.T) {
	router := newAuthRouter(&stubAuthenticator{principals: map[string]*identityapp.Principal{
		"customer-token": {UserID: "u1", Role: identity.RoleCustomer},
		"merchant-token": {UserID: "m1", Role: identity.RoleMerchant},
		"admin-token":    {UserID: "a1", Role: identity.RoleAdmin},
	}})

	for token, status := range map[string]int{
		"customer-token": http.StatusForbidden,
		"merchant-token": http.StatusNoContent,
		"admin-token":    http.StatusNoContent,
	} {
		t.Run(token, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/merchant", nil)
			req.Header.Set(AuthHeaderKey, "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, status, w.Code)
		})
	}

	t.Run("without RequireAuth", func(t *testing.T) {
		r := gin.New()
		r.GET("/merchant", RequireMerchant(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/merchant", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
