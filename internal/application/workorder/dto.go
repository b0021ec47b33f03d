package workorder

import (
	domain "github.com/maintenance/backend/internal/domain/workorder"
)

// ContentTypePDF is the media type of every rendered document
const ContentTypePDF = "application/pdf"

// RenderedDocument is a finished work order sheet ready for download
type RenderedDocument struct {
	Content     []byte
	Filename    string
	ContentType string
	PageCount   int
}

// Size returns the document length in bytes
func (d *RenderedDocument) Size() int {
	return len(d.Content)
}

// OptionResponse is one allow-list entry
type OptionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CatalogResponse is an allow-list as served to form clients
type CatalogResponse struct {
	Name    string           `json:"name"`
	Options []OptionResponse `json:"options"`
}

func toCatalogResponse(c domain.Catalog) CatalogResponse {
	opts := c.Options()
	resp := CatalogResponse{Name: c.Name(), Options: make([]OptionResponse, len(opts))}
	for i, o := range opts {
		resp.Options[i] = OptionResponse{Value: o.Value, Label: o.Label}
	}
	return resp
}
