// Package handler contains the gin handlers of the FoodHub API.
package handler

import (
	"errors"
	"net/http"

	identityapp "github.com/foodhub/backend/internal/application/identity"
	"github.com/foodhub/backend/internal/domain/ordering"
	"github.com/foodhub/backend/internal/domain/review"
	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/foodhub/backend/internal/infrastructure/logger"
	"github.com/foodhub/backend/internal/interfaces/http/dto"
	"github.com/foodhub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMessage sends a 200 response with a message
func (h *BaseHandler) SuccessWithMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.NewMessageResponse(message, data))
}

// Created sends a 201 response with a message
func (h *BaseHandler) Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, dto.NewMessageResponse(message, data))
}

// Error sends an error response, deriving the status from the code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message, middleware.GetRequestID(c)))
}

// HandleError maps err to the error envelope. Causes of persistence and
// unexpected errors are logged, never returned.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	log := logger.L(c.Request.Context())

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		if dto.GetHTTPStatus(code) >= http.StatusInternalServerError {
			log.Error("Request failed", zap.String("code", domainErr.Code), zap.Error(err))
		}
		h.Error(c, code, domainErr.Message)
		return
	}

	log.Error("Unexpected error", zap.Error(err))
	h.Error(c, dto.ErrCodeInternal, "An unexpected error occurred")
}

// BindJSON binds the request body and answers 400 on failure
func (h *BaseHandler) BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// Principal returns the authenticated caller or answers 401
func (h *BaseHandler) Principal(c *gin.Context) (*identityapp.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		h.HandleError(c, shared.NewAuthenticationError("Authentication required"))
		return nil, false
	}
	return p, true
}

func customerOf(p *identityapp.Principal) ordering.Customer {
	return ordering.Customer{
		ID:          p.UserID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Phone:       p.Phone,
	}
}

func authorOf(p *identityapp.Principal) review.Author {
	return review.Author{ID: p.UserID, DisplayName: p.DisplayName}
}

// sessionOf keys per-login state such as the cart. Tokens issued before
// sessions existed fall back to the user id.
func sessionOf(p *identityapp.Principal) string {
	if p.SessionID != "" {
		return p.SessionID
	}
	return "user:" + p.UserID
}
