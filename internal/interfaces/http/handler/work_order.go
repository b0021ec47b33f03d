package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	workorderapp "github.com/maintenance/backend/internal/application/workorder"
	"github.com/maintenance/backend/internal/interfaces/http/dto"
)

// PageCountHeader reports how many pages the returned PDF has
const PageCountHeader = "X-Page-Count"

// WorkOrderHandler handles work order document endpoints
type WorkOrderHandler struct {
	BaseHandler
	documentService *workorderapp.DocumentService
}

// NewWorkOrderHandler creates a new WorkOrderHandler
func NewWorkOrderHandler(documentService *workorderapp.DocumentService) *WorkOrderHandler {
	return &WorkOrderHandler{
		documentService: documentService,
	}
}

// GeneratePDF godoc
//
//	@ID				generateWorkOrderPdf
//	@Summary		Render a work order sheet
//	@Description	Validates a work order and returns it as a paginated PDF download
//	@Tags			work-orders
//	@Accept			json
//	@Produce		application/pdf
//	@Success		200	{file}		binary
//	@Failure		400	{object}	dto.Response
//	@Failure		413	{object}	dto.Response
//	@Failure		500	{object}	dto.Response
//	@Router			/work-orders/pdf [post]
func (h *WorkOrderHandler) GeneratePDF(c *gin.Context) {
	if !acceptsJSON(c.GetHeader("Content-Type")) {
		h.ErrorWithCode(c, dto.ErrCodeUnsupportedType, "Content-Type must be application/json")
		return
	}

	payload, ok := h.decodeObject(c)
	if !ok {
		return
	}

	doc, err := h.documentService.Generate(c.Request.Context(), payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	c.Header(PageCountHeader, strconv.Itoa(doc.PageCount))
	c.Header("Content-Length", strconv.Itoa(doc.Size()))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}

// decodeObject reads the body as a JSON object, keeping numbers as
// json.Number so decimal quantities are not rounded through float64.
// It writes the error response itself and reports false on failure.
func (h *WorkOrderHandler) decodeObject(c *gin.Context) (map[string]any, bool) {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			h.ErrorWithCode(c, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
		case errors.Is(err, io.EOF):
			h.BadRequest(c, dto.ErrCodeBadRequest, "Request body is empty")
		default:
			h.BadRequest(c, dto.ErrCodeInvalidJSON, "Request body is not valid JSON")
		}
		return nil, false
	}
	if dec.More() {
		h.BadRequest(c, dto.ErrCodeInvalidJSON, "Request body must contain a single JSON object")
		return nil, false
	}

	payload, ok := body.(map[string]any)
	if !ok {
		h.BadRequest(c, dto.ErrCodeInvalidJSON, "Request body must be a JSON object")
		return nil, false
	}
	return payload, true
}

// acceptsJSON allows a missing Content-Type and any JSON media type
func acceptsJSON(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

// ListCatalogs godoc
//
//	@ID				listWorkOrderCatalogs
//	@Summary		List reference data
//	@Description	Returns every allow-list a work order field is checked against
//	@Tags			work-orders
//	@Produce		json
//	@Success		200	{object}	dto.Response
//	@Router			/work-orders/catalogs [get]
func (h *WorkOrderHandler) ListCatalogs(c *gin.Context) {
	h.Success(c, h.documentService.Catalogs())
}

// GetCatalog godoc
//
//	@ID				getWorkOrderCatalog
//	@Summary		Get one allow-list
//	@Tags			work-orders
//	@Produce		json
//	@Param			name	path		string	true	"Catalog name"	Enums(boards, vehicles, units, maintenance_types, priorities)
//	@Success		200		{object}	dto.Response
//	@Failure		404		{object}	dto.Response
//	@Router			/work-orders/catalogs/{name} [get]
func (h *WorkOrderHandler) GetCatalog(c *gin.Context) {
	catalog, err := h.documentService.Catalog(c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, catalog)
}
