package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodePersistence, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidJSON, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeRequestInProgress, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestDomainErrorStatus(t *testing.T) {
	tests := []struct {
		err      *shared.DomainError
		expected int
	}{
		{shared.NewValidationError("No items in order"), http.StatusBadRequest},
		{shared.NewAuthenticationError("Invalid token"), http.StatusUnauthorized},
		{shared.NewAuthorizationError("Not your restaurant"), http.StatusForbidden},
		{shared.NewNotFoundError("Order not found"), http.StatusNotFound},
		{shared.NewPersistenceError("create order", nil), http.StatusInternalServerError},
		{shared.NewInvalidStateError("Cannot change order status"), http.StatusUnprocessableEntity},
		{shared.NewConflictError("Email is already registered"), http.StatusConflict},
		{shared.NewDomainError("INTERNAL_ERROR", "boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(NormalizeErrorCode(tt.err.Code)))
		})
	}
}

func TestNormalizeErrorCode_PassesThrough(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
	assert.Equal(t, "SOMETHING_ELSE", NormalizeErrorCode("SOMETHING_ELSE"))
}

func TestResponse_JSONShape(t *testing.T) {
	raw, err := json.Marshal(NewErrorResponse(ErrCodeValidation, "No items in order", "req-1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"No items in order","error":"ERR_VALIDATION","requestId":"req-1"}`, string(raw))

	raw, err = json.Marshal(NewSuccessResponse([]string{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":[]}`, string(raw))

	raw, err = json.Marshal(NewMessageResponse("Logged out", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"Logged out"}`, string(raw))
}
