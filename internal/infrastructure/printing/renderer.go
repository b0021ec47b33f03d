package printing

import (
	"context"
	"time"

	"github.com/maintenance/backend/internal/domain/workorder"
)

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	// PDFData is the raw PDF file content
	PDFData []byte
	// Filename is the suggested download name
	Filename string
	// PageCount is the number of pages in the PDF
	PageCount int
	// RenderDuration is how long the rendering took
	RenderDuration time.Duration
}

// PDFRenderer defines the interface for rendering work orders to PDF
type PDFRenderer interface {
	// Render lays out a validated work order and serializes it to PDF.
	// The order is never modified.
	Render(ctx context.Context, order *workorder.WorkOrder) (*RenderResult, error)
}

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderFailed   = "RENDER_FAILED"
	ErrCodeRenderCanceled = "RENDER_CANCELED"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeLayoutOverflow = "LAYOUT_OVERFLOW"
	ErrCodeAssetFailed    = "ASSET_FAILED"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
