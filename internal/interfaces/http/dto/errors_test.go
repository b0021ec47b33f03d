package dto

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidJSON, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeUnsupportedType, http.StatusUnsupportedMediaType},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeRenderCanceled, StatusClientClosedRequest},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"INVALID_INPUT", ErrCodeInvalidInput},
		{"VALIDATION_ERROR", ErrCodeValidation},
		{ErrCodeNotFound, ErrCodeNotFound},
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	fixed := time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC)
	orig := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = orig })

	resp := NewErrorResponseWithRequestID(ErrCodeInternal, "An unexpected error occurred", "req-1")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Equal(t, fixed, resp.Error.Timestamp)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": false,
		"error": {
			"code": "ERR_INTERNAL",
			"message": "An unexpected error occurred",
			"request_id": "req-1",
			"timestamp": "2025-03-05T14:30:00Z"
		}
	}`, string(raw))
}

func TestNewValidationErrorResponse(t *testing.T) {
	fields := map[string][]string{
		"date":                {"Date has wrong format."},
		"technicians[0].name": {"This field is required.", "Second message."},
	}

	resp := NewValidationErrorResponse("Request validation failed", "req-2", fields, []string{"date", "technicians[0].name"})

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, fields, resp.Error.Fields)
	assert.Equal(t, []ValidationDetail{
		{Field: "date", Message: "Date has wrong format."},
		{Field: "technicians[0].name", Message: "This field is required."},
		{Field: "technicians[0].name", Message: "Second message."},
	}, resp.Error.Details)
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"status": "ok"})
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}
