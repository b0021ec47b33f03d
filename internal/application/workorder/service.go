package workorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maintenance/backend/internal/domain/shared"
	domain "github.com/maintenance/backend/internal/domain/workorder"
	"github.com/maintenance/backend/internal/infrastructure/logger"
	infra "github.com/maintenance/backend/internal/infrastructure/printing"
	"github.com/maintenance/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DocumentService validates work order payloads and renders them to PDF
type DocumentService struct {
	validator *Validator
	renderer  infra.PDFRenderer
	metrics   *telemetry.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewDocumentService creates a new DocumentService. metrics may be nil.
func NewDocumentService(renderer infra.PDFRenderer, metrics *telemetry.Metrics, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		validator: NewValidator(),
		renderer:  renderer,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Validate checks a payload without rendering it
func (s *DocumentService) Validate(payload map[string]any) (*domain.WorkOrder, error) {
	return s.validator.Validate(payload)
}

// Generate validates the payload and renders the work order sheet.
// A *domain.ValidationError means the renderer was never called; any other
// error wraps an *infra.RenderError.
func (s *DocumentService) Generate(ctx context.Context, payload map[string]any) (*RenderedDocument, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "workorder", "generate")
	defer span.End()
	log := logger.WithTraceContext(ctx, logger.FromContextOr(ctx, s.logger))

	order, err := s.validator.Validate(payload)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			fields := verr.FieldNames()
			s.metrics.ObserveValidationFailure(fields)
			telemetry.SetAttributes(span, telemetry.SpanAttrFieldCount, len(fields))
			log.Info("Work order rejected", zap.Strings("fields", fields))
			return nil, err
		}
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to validate work order: %w", err)
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrBoardID, order.BoardID,
		telemetry.SpanAttrCircuitID, order.CircuitID,
		telemetry.SpanAttrDate, order.Date.Format(domain.DateLayout),
	)

	start := s.now()
	result, err := s.renderer.Render(ctx, order)
	if err != nil {
		outcome := telemetry.OutcomeFailed
		code := infra.ErrCodeRenderFailed
		var rerr *infra.RenderError
		if errors.As(err, &rerr) {
			code = rerr.Code
			if rerr.Code == infra.ErrCodeRenderCanceled {
				outcome = telemetry.OutcomeCanceled
			}
		}
		s.metrics.ObserveFailure(outcome)
		telemetry.SetAttributes(span, telemetry.SpanAttrErrorCode, code)
		telemetry.RecordError(span, err)
		log.Error("Failed to render work order",
			zap.String("board_id", order.BoardID),
			zap.String("circuit_id", order.CircuitID),
			zap.String("code", code),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to render work order: %w", err)
	}

	elapsed := result.RenderDuration
	if elapsed == 0 {
		elapsed = s.now().Sub(start)
	}
	s.metrics.ObserveRender(elapsed, result.PageCount, len(result.PDFData))
	telemetry.SetAttributes(span,
		telemetry.SpanAttrPageCount, result.PageCount,
		telemetry.SpanAttrBytes, len(result.PDFData),
		telemetry.SpanAttrFilename, result.Filename,
	)
	telemetry.SetOK(span)

	log.Info("Work order document generated",
		zap.String("filename", result.Filename),
		zap.Int("pages", result.PageCount),
		zap.Int("bytes", len(result.PDFData)),
		zap.Duration("duration", elapsed),
	)

	return &RenderedDocument{
		Content:     result.PDFData,
		Filename:    result.Filename,
		ContentType: ContentTypePDF,
		PageCount:   result.PageCount,
	}, nil
}

// Catalogs returns every allow-list in a stable order
func (s *DocumentService) Catalogs() []CatalogResponse {
	all := domain.AllCatalogs()
	out := make([]CatalogResponse, len(all))
	for i, c := range all {
		out[i] = toCatalogResponse(c)
	}
	return out
}

// Catalog returns one allow-list by name
func (s *DocumentService) Catalog(name string) (*CatalogResponse, error) {
	c, ok := domain.CatalogByName(name)
	if !ok {
		return nil, shared.NotFoundf("Catalog %q not found", name)
	}
	resp := toCatalogResponse(c)
	return &resp, nil
}
