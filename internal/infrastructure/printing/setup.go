package printing

import (
	"fmt"
	"strings"

	"github.com/maintenance/backend/internal/domain/printing"
	infraconfig "github.com/maintenance/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewLogoProvider builds the logo source selected by render.logo_source
func NewLogoProvider(cfg *infraconfig.Config, logger *zap.Logger) (LogoProvider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Render.LogoSource {
	case infraconfig.LogoSourceFile:
		return NewFileLogoProvider(cfg.Render.LogoPath, logger), nil
	case infraconfig.LogoSourceS3:
		p, err := NewS3LogoProvider(&cfg.Storage,
			WithS3Logger(logger),
			WithLogoRefresh(cfg.Storage.LogoRefresh),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 logo provider: %w", err)
		}
		return p, nil
	case infraconfig.LogoSourceNone, "":
		return NoLogo{}, nil
	default:
		return nil, fmt.Errorf("unknown logo source %q", cfg.Render.LogoSource)
	}
}

// RendererConfigFrom maps the render section of the application config
func RendererConfigFrom(cfg infraconfig.RenderConfig, logo LogoProvider, logger *zap.Logger) (*RendererConfig, error) {
	paper, ok := printing.ParsePaperSize(cfg.PaperSize)
	if !ok {
		return nil, fmt.Errorf("unsupported paper size %q", cfg.PaperSize)
	}
	orientation := printing.Orientation(strings.ToUpper(strings.TrimSpace(cfg.Orientation)))
	if !orientation.IsValid() {
		return nil, fmt.Errorf("unsupported orientation %q", cfg.Orientation)
	}
	margins, err := printing.UniformMargins(cfg.MarginMM)
	if err != nil {
		return nil, fmt.Errorf("invalid margins: %w", err)
	}

	return &RendererConfig{
		PaperSize:   paper,
		Orientation: orientation,
		Margins:     margins,
		Title:       cfg.Title,
		Author:      cfg.Author,
		Logo:        logo,
		Location:    cfg.Location(),
		Logger:      logger,
	}, nil
}
