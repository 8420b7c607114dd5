package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foodhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationInput struct {
	Email  string `json:"email" binding:"required,email"`
	Name   string `json:"name" binding:"max=5"`
	Rating int    `json:"rating" binding:"gte=1,lte=5"`
	Status string `json:"status" binding:"omitempty,orderstatus"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req validationInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
	})
	return router
}

type validationEnvelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Error   string                 `json:"error"`
	Data    []dto.ValidationDetail `json:"data"`
}

func postValidation(t *testing.T, router *gin.Engine, body string) (int, validationEnvelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env validationEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func detailFor(details []dto.ValidationDetail, field string) string {
	for _, d := range details {
		if d.Field == field {
			return d.Message
		}
	}
	return ""
}

func TestHandleValidationError(t *testing.T) {
	router := newValidationRouter()

	t.Run("reports json field names", func(t *testing.T) {
		code, env := postValidation(t, router, `{"email":"bad","name":"toolong","rating":9,"status":"lost"}`)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.False(t, env.Success)
		assert.Equal(t, dto.ErrCodeValidation, env.Error)
		assert.Equal(t, "Request validation failed", env.Message)
		assert.Equal(t, "Invalid email format", detailFor(env.Data, "email"))
		assert.Equal(t, "Must be at most 5 characters", detailFor(env.Data, "name"))
		assert.Equal(t, "Must be less than or equal to 5", detailFor(env.Data, "rating"))
		assert.Equal(t, "Invalid status", detailFor(env.Data, "status"))
	})

	t.Run("missing required field", func(t *testing.T) {
		_, env := postValidation(t, router, `{"rating":3}`)
		assert.Equal(t, "This field is required", detailFor(env.Data, "email"))
	})

	t.Run("malformed json", func(t *testing.T) {
		code, env := postValidation(t, router, `{"email":`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, env.Error)
		assert.Empty(t, env.Data)
	})

	t.Run("valid input", func(t *testing.T) {
		code, env := postValidation(t, router, `{"email":"a@b.co","name":"ann","rating":4,"status":"preparing"}`)
		assert.Equal(t, http.StatusOK, code)
		assert.True(t, env.Success)
	})
}
