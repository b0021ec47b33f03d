package printing

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// maxLogoBytes bounds the size of a logo read from any source
const maxLogoBytes = 4 << 20

// LogoAsset is an image ready to be embedded in the document
type LogoAsset struct {
	// Source identifies where the image came from, for logging
	Source string
	// Data is the encoded image
	Data []byte
	// ImageType is the fpdf image type: PNG, JPG or GIF
	ImageType string
}

// LogoProvider probes for the logo printed at the top of the first page.
// A missing or unusable logo is reported as (nil, false), never as an error.
// Implementations must be safe for concurrent use.
type LogoProvider interface {
	Logo(ctx context.Context) (*LogoAsset, bool)
}

// NoLogo is a LogoProvider that never has a logo
type NoLogo struct{}

// Logo implements LogoProvider
func (NoLogo) Logo(context.Context) (*LogoAsset, bool) {
	return nil, false
}

// NewLogoAsset wraps raw image bytes, sniffing the image type.
// It returns false for empty, oversized or non-image content.
func NewLogoAsset(source string, data []byte) (*LogoAsset, bool) {
	if len(data) == 0 || len(data) > maxLogoBytes {
		return nil, false
	}
	imageType, ok := sniffImageType(data)
	if !ok {
		return nil, false
	}
	return &LogoAsset{Source: source, Data: data, ImageType: imageType}, true
}

func sniffImageType(data []byte) (string, bool) {
	switch http.DetectContentType(data) {
	case "image/png":
		return "PNG", true
	case "image/jpeg":
		return "JPG", true
	case "image/gif":
		return "GIF", true
	}
	return "", false
}

// FileLogoProvider reads the logo from a path on the local file system on
// every probe, so a logo dropped in place later is picked up.
type FileLogoProvider struct {
	path   string
	logger *zap.Logger
}

// NewFileLogoProvider creates a FileLogoProvider for path
func NewFileLogoProvider(path string, logger *zap.Logger) *FileLogoProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileLogoProvider{path: path, logger: logger}
}

// Logo implements LogoProvider
func (p *FileLogoProvider) Logo(ctx context.Context) (*LogoAsset, bool) {
	if p.path == "" || ctx.Err() != nil {
		return nil, false
	}
	info, err := os.Stat(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.logger.Debug("Logo not found, rendering without it", zap.String("path", p.path))
		} else {
			p.logger.Warn("Failed to stat logo", zap.String("path", p.path), zap.Error(err))
		}
		return nil, false
	}
	if info.IsDir() || info.Size() > maxLogoBytes {
		p.logger.Warn("Logo path is not a usable file", zap.String("path", p.path), zap.Int64("size", info.Size()))
		return nil, false
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		p.logger.Warn("Failed to read logo", zap.String("path", p.path), zap.Error(err))
		return nil, false
	}
	asset, ok := NewLogoAsset(p.path, data)
	if !ok {
		p.logger.Warn("Logo is not a PNG, JPEG or GIF image", zap.String("path", p.path))
	}
	return asset, ok
}

var (
	_ LogoProvider = NoLogo{}
	_ LogoProvider = (*FileLogoProvider)(nil)
)
