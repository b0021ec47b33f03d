package printing

import "github.com/maintenance/backend/internal/domain/shared"

// Margins represents the page margins in millimeters
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// NewMargins creates a new Margins value object
func NewMargins(top, right, bottom, left float64) (Margins, error) {
	if top < 0 || right < 0 || bottom < 0 || left < 0 {
		return Margins{}, shared.NewDomainError(shared.CodeInvalidMargins, "Margins cannot be negative")
	}
	if top > 100 || right > 100 || bottom > 100 || left > 100 {
		return Margins{}, shared.NewDomainError(shared.CodeInvalidMargins, "Margins cannot exceed 100mm")
	}
	return Margins{
		Top:    top,
		Right:  right,
		Bottom: bottom,
		Left:   left,
	}, nil
}

// UniformMargins returns margins with the same value on every side
func UniformMargins(mm float64) (Margins, error) {
	return NewMargins(mm, mm, mm, mm)
}

// DefaultMargins returns the margins used for work-order sheets
func DefaultMargins() Margins {
	return Margins{
		Top:    18,
		Right:  18,
		Bottom: 18,
		Left:   18,
	}
}

// IsZero returns true if all margins are zero
func (m Margins) IsZero() bool {
	return m.Top == 0 && m.Right == 0 && m.Bottom == 0 && m.Left == 0
}

// ContentBox returns the printable area of a page of the given size
func (m Margins) ContentBox(pageWidth, pageHeight float64) (width, height float64) {
	return pageWidth - m.Left - m.Right, pageHeight - m.Top - m.Bottom
}
