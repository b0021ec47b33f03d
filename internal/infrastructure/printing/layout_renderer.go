package printing

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/maintenance/backend/internal/domain/printing"
	"github.com/maintenance/backend/internal/domain/workorder"
	"go.uber.org/zap"
)

const (
	defaultTitle   = "Work Order"
	defaultAuthor  = "Maintenance"
	defaultCreator = "maintenance work-order service"

	logoImageName = "logo"
	logoMaxHeight = 16.0
	logoMaxWidth  = 60.0
	logoGap       = 4.0

	footerTimeLayout = "02/01/2006 15:04"
)

// RendererConfig contains configuration for the layout renderer
type RendererConfig struct {
	// PaperSize defines the output paper dimensions (default A4)
	PaperSize printing.PaperSize
	// Orientation defines portrait or landscape (default portrait)
	Orientation printing.Orientation
	// Margins in millimeters (default 18mm on every side)
	Margins printing.Margins
	// Title, Author and Creator are written to the PDF metadata
	Title   string
	Author  string
	Creator string
	// Logo probes for the optional logo (default: no logo)
	Logo LogoProvider
	// Clock returns the generation time printed in the footer and metadata
	Clock func() time.Time
	// Location is the time zone of the footer timestamp (default UTC)
	Location *time.Location
	// DisableCompression writes uncompressed content streams
	DisableCompression bool
	// Logger for debug output
	Logger *zap.Logger
}

// LayoutRenderer renders work orders with the fixed work-order layout.
// It holds no per-render state and is safe for concurrent use.
type LayoutRenderer struct {
	config *RendererConfig
	logger *zap.Logger
}

// placedLogo is a logo that decoded successfully, with its printed size
type placedLogo struct {
	asset         *LogoAsset
	width, height float64
}

// NewLayoutRenderer creates a renderer, filling in defaults
func NewLayoutRenderer(config *RendererConfig) (*LayoutRenderer, error) {
	if config == nil {
		config = &RendererConfig{}
	}
	cfg := *config

	if cfg.PaperSize == "" {
		cfg.PaperSize = printing.PaperSizeA4
	}
	if !cfg.PaperSize.IsValid() {
		return nil, NewRenderError(ErrCodeInvalidInput, fmt.Sprintf("unsupported paper size %q", cfg.PaperSize), nil)
	}
	if cfg.Orientation == "" {
		cfg.Orientation = printing.OrientationPortrait
	}
	if !cfg.Orientation.IsValid() {
		return nil, NewRenderError(ErrCodeInvalidInput, fmt.Sprintf("unsupported orientation %q", cfg.Orientation), nil)
	}
	if cfg.Margins.IsZero() {
		cfg.Margins = printing.DefaultMargins()
	}
	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}
	if cfg.Author == "" {
		cfg.Author = defaultAuthor
	}
	if cfg.Creator == "" {
		cfg.Creator = defaultCreator
	}
	if cfg.Logo == nil {
		cfg.Logo = NoLogo{}
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	pageWidth, pageHeight := printing.PageSize(cfg.PaperSize, cfg.Orientation)
	if w, h := cfg.Margins.ContentBox(pageWidth, pageHeight); w < 100 || h < 100 {
		return nil, NewRenderError(ErrCodeInvalidInput, "margins leave too little room for the layout", nil)
	}

	return &LayoutRenderer{config: &cfg, logger: cfg.Logger}, nil
}

func (r *LayoutRenderer) landscape() bool {
	return r.config.Orientation == printing.OrientationLandscape
}

// Render implements PDFRenderer
func (r *LayoutRenderer) Render(ctx context.Context, order *workorder.WorkOrder) (result *RenderResult, err error) {
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("Panic while rendering work order", zap.Any("panic", p))
			result = nil
			err = NewRenderError(ErrCodeRenderFailed, "unexpected failure while rendering", fmt.Errorf("%v", p))
		}
	}()

	if order == nil {
		return nil, NewRenderError(ErrCodeInvalidInput, "work order is required", nil)
	}
	if order.Date.IsZero() {
		return nil, NewRenderError(ErrCodeInvalidInput, "work order has no date", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeRenderCanceled, "rendering canceled", err)
	}

	m := newMeasurer()
	logo := r.resolveLogo(ctx, m)

	pageWidth, pageHeight := printing.PageSize(r.config.PaperSize, r.config.Orientation)
	engine := newLayoutEngine(m, pageWidth, pageHeight, r.config.Margins)
	pages, err := engine.layout(ctx, buildWorkOrderLayout(order, logo))
	if err != nil {
		return nil, err
	}
	if err := m.pdf.Error(); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to measure text", err)
	}

	footer := footerInfo{generatedAt: r.config.Clock().In(r.config.Location).Format(footerTimeLayout)}
	if tech, ok := order.Responsible(); ok {
		footer.responsible = tech.Name
	}

	data, err := r.emit(pages, logo, footer)
	if err != nil {
		return nil, err
	}

	result = &RenderResult{
		PDFData:        data,
		Filename:       workorder.SuggestedFilename(order),
		PageCount:      len(pages),
		RenderDuration: time.Since(start),
	}

	r.logger.Debug("Work order rendered",
		zap.String("filename", result.Filename),
		zap.Int("pages", result.PageCount),
		zap.Int("bytes", len(result.PDFData)),
		zap.Bool("logo", logo != nil),
		zap.Duration("duration", result.RenderDuration),
	)
	return result, nil
}

// resolveLogo probes the provider and checks the image decodes. Any failure
// leaves the logo out.
func (r *LayoutRenderer) resolveLogo(ctx context.Context, m *measurer) *placedLogo {
	asset, ok := r.config.Logo.Logo(ctx)
	if !ok || asset == nil {
		return nil
	}
	info := m.pdf.RegisterImageOptionsReader(logoImageName, fpdf.ImageOptions{ImageType: asset.ImageType}, bytes.NewReader(asset.Data))
	if err := m.pdf.Error(); err != nil || info == nil {
		r.logger.Warn("Logo could not be decoded, rendering without it",
			zap.String("source", asset.Source),
			zap.Error(err),
		)
		m.pdf.ClearError()
		return nil
	}
	w, h := info.Width(), info.Height()
	if w <= 0 || h <= 0 {
		return nil
	}
	height := logoMaxHeight
	width := height * w / h
	if width > logoMaxWidth {
		width = logoMaxWidth
		height = width * h / w
	}
	return &placedLogo{asset: asset, width: width, height: height}
}

var _ PDFRenderer = (*LayoutRenderer)(nil)
