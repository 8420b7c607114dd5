package middleware

import (
	"context"
	"errors"
	"strings"

	identityapp "github.com/foodhub/backend/internal/application/identity"
	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/foodhub/backend/internal/infrastructure/logger"
	"github.com/foodhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth context keys
const (
	PrincipalKey  = "principal"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Authenticator resolves a bearer token into a caller
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*identityapp.Principal, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// resolved principal in the gin context
func RequireAuth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader(AuthHeaderKey))
		if err != nil {
			abortWithError(c, err)
			return
		}

		principal, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(PrincipalKey, principal)
		ctx := logger.WithUserID(c.Request.Context(), principal.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireMerchant rejects callers that may not manage a restaurant. It must
// run after RequireAuth.
func RequireMerchant() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			abortWithError(c, shared.NewAuthenticationError("Authentication required"))
			return
		}
		if !principal.CanManageRestaurant() {
			abortWithError(c, shared.NewAuthorizationError("Merchant access required"))
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the caller stored by RequireAuth
func GetPrincipal(c *gin.Context) (*identityapp.Principal, bool) {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*identityapp.Principal)
	return p, ok && p != nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", shared.NewAuthenticationError("Authorization token is required")
	}
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", shared.NewAuthenticationError("Authorization header must use the Bearer scheme")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if token == "" {
		return "", shared.NewAuthenticationError("Authorization token is required")
	}
	return token, nil
}

// abortWithError writes the error envelope for err and stops the chain
func abortWithError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		logger.L(c.Request.Context()).Error("Middleware failure", zap.Error(err))
		c.AbortWithStatusJSON(dto.GetHTTPStatus(dto.ErrCodeInternal),
			dto.NewErrorResponse(dto.ErrCodeInternal, "Internal server error", GetRequestID(c)))
		return
	}

	code := dto.NormalizeErrorCode(domainErr.Code)
	if code == dto.ErrCodePersistence {
		logger.L(c.Request.Context()).Error("Middleware persistence failure", zap.Error(err))
	}
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code),
		dto.NewErrorResponse(code, domainErr.Message, GetRequestID(c)))
}
