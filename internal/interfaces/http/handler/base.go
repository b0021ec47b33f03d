package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maintenance/backend/internal/domain/shared"
	domain "github.com/maintenance/backend/internal/domain/workorder"
	"github.com/maintenance/backend/internal/infrastructure/logger"
	infra "github.com/maintenance/backend/internal/infrastructure/printing"
	"github.com/maintenance/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RequestIDHeader is the header fallback when no RequestID middleware ran
const RequestIDHeader = "X-Request-ID"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(logger.GinRequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, code, message string) {
	h.Error(c, http.StatusBadRequest, code, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError sends a 400 response listing every rejected field
func (h *BaseHandler) ValidationError(c *gin.Context, verr *domain.ValidationError) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		getRequestID(c),
		verr.Fields,
		verr.FieldNames(),
	))
}

// HandleError maps an application error to an HTTP response.
// Internal causes are logged, never echoed to the client.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		h.ValidationError(c, verr)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.ErrorWithCode(c, dto.NormalizeErrorCode(domainErr.Code), domainErr.Message)
		return
	}

	_ = c.Error(err)

	var rerr *infra.RenderError
	if errors.As(err, &rerr) && rerr.Code == infra.ErrCodeRenderCanceled {
		logger.GetGinLogger(c).Info("Client went away during render", zap.Error(err))
		h.ErrorWithCode(c, dto.ErrCodeRenderCanceled, "Request canceled")
		return
	}

	logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
	h.InternalError(c, "An unexpected error occurred")
}
