package dto

import "time"

// Response represents a standard API response
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo represents error details.
// Fields maps each rejected payload path to its messages; Details carries the
// same information as a flat list for clients that prefer one.
type ErrorInfo struct {
	Code      string              `json:"code"`
	Message   string              `json:"message"`
	RequestID string              `json:"request_id,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
	Fields    map[string][]string `json:"fields,omitempty"`
	Details   []ValidationDetail  `json:"details,omitempty"`
}

// ValidationDetail is one failed rule on one field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// now is replaced in tests
var now = func() time.Time { return time.Now().UTC() }

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return NewErrorResponseWithRequestID(code, message, "")
}

// NewErrorResponseWithRequestID creates an error response carrying the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
			Timestamp: now(),
		},
	}
}

// NewValidationErrorResponse creates a 400 body from a field → messages map.
// Details are ordered by the given field order.
func NewValidationErrorResponse(message, requestID string, fields map[string][]string, order []string) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, message, requestID)
	resp.Error.Fields = fields
	for _, f := range order {
		for _, msg := range fields[f] {
			resp.Error.Details = append(resp.Error.Details, ValidationDetail{Field: f, Message: msg})
		}
	}
	return resp
}
