package printing

import (
	"context"

	"github.com/maintenance/backend/internal/domain/printing"
)

// layoutEpsilon absorbs float rounding when comparing vertical positions
const layoutEpsilon = 0.01

// flowable is a block placed in document order and paginated by the engine
type flowable interface {
	// minHeight is the height of the leading part that cannot be split
	minHeight(e *layoutEngine) float64
	draw(e *layoutEngine) error
}

// keeper is implemented by flowables that must share a page with the
// start of the next flowable
type keeper interface {
	keepWithNext() bool
}

// layoutEngine is the first rendering pass: it flows content down the
// frame of each page and records a snapshot per page.
type layoutEngine struct {
	m   *measurer
	rec *recorder

	left, top, width, bottom float64
	y                        float64
}

func newLayoutEngine(m *measurer, pageWidth, pageHeight float64, margins printing.Margins) *layoutEngine {
	width, _ := margins.ContentBox(pageWidth, pageHeight)
	return &layoutEngine{
		m:      m,
		rec:    &recorder{},
		left:   margins.Left,
		top:    margins.Top,
		width:  width,
		bottom: pageHeight - margins.Bottom,
		y:      margins.Top,
	}
}

func (e *layoutEngine) frameHeight() float64 {
	return e.bottom - e.top
}

func (e *layoutEngine) remaining() float64 {
	return e.bottom - e.y
}

func (e *layoutEngine) atTop() bool {
	return e.y <= e.top+layoutEpsilon
}

// advance moves the cursor down by dy, stopping at the bottom of the frame
func (e *layoutEngine) advance(dy float64) {
	e.y = min(e.y+dy, e.bottom)
}

func (e *layoutEngine) newPage() {
	e.rec.closePage(e.y)
	e.rec.beginPage()
	e.y = e.top
}

// keepSpace starts a new page unless h fits below the cursor. A block
// taller than the frame is placed at the top of a fresh page.
func (e *layoutEngine) keepSpace(h float64) {
	if h > e.remaining()+layoutEpsilon && !e.atTop() {
		e.newPage()
	}
}

// layout runs the first pass and returns one snapshot per page
func (e *layoutEngine) layout(ctx context.Context, flows []flowable) ([]*PageSnapshot, error) {
	e.rec.beginPage()
	for i, f := range flows {
		if err := ctx.Err(); err != nil {
			return nil, NewRenderError(ErrCodeRenderCanceled, "rendering canceled", err)
		}
		if k, ok := f.(keeper); ok && k.keepWithNext() && i+1 < len(flows) {
			e.keepSpace(f.minHeight(e) + flows[i+1].minHeight(e))
		}
		if err := f.draw(e); err != nil {
			return nil, err
		}
	}
	e.rec.closePage(e.y)
	return e.rec.pages, nil
}
