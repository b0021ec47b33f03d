package printing

import (
	"fmt"
	"strings"
)

// paragraph is a block of wrapped text in a single style
type paragraph struct {
	text  string
	style textStyle
	keep  bool

	lines []string
}

func newParagraph(text string, style textStyle) *paragraph {
	return &paragraph{text: strings.TrimRight(encodeText(text), " \n"), style: style}
}

// newHeading returns a paragraph kept on the same page as what follows it
func newHeading(text string, style textStyle) *paragraph {
	p := newParagraph(text, style)
	p.keep = true
	return p
}

func (p *paragraph) keepWithNext() bool {
	return p.keep
}

func (p *paragraph) wrapped(e *layoutEngine) []string {
	if p.lines == nil {
		p.lines = e.m.wrap(p.style.font, p.text, e.width)
	}
	return p.lines
}

func (p *paragraph) minHeight(e *layoutEngine) float64 {
	lead := p.style.leadingMM()
	before := p.style.spaceBefore * ptToMM
	if p.keep {
		return before + float64(len(p.wrapped(e)))*lead + p.style.spaceAfter*ptToMM
	}
	return before + lead
}

func (p *paragraph) draw(e *layoutEngine) error {
	lead := p.style.leadingMM()
	if lead > e.frameHeight() {
		return NewRenderError(ErrCodeLayoutOverflow, "text line is taller than the page frame", nil)
	}
	if !e.atTop() {
		e.advance(p.style.spaceBefore * ptToMM)
	}
	for _, line := range p.wrapped(e) {
		e.keepSpace(lead)
		if line != "" {
			e.rec.text(e.left, textBaseline(e.y, p.style), line, p.style)
		}
		e.y += lead
	}
	e.advance(p.style.spaceAfter * ptToMM)
	return nil
}

// spacer is vertical white space in mm. It never starts a page.
type spacer struct {
	height float64
}

func newSpacer(pt float64) *spacer {
	return &spacer{height: pt * ptToMM}
}

func (s *spacer) minHeight(*layoutEngine) float64 { return 0 }

func (s *spacer) draw(e *layoutEngine) error {
	if !e.atTop() {
		e.advance(s.height)
	}
	return nil
}

// imageBlock places a registered image at the left edge of the frame
type imageBlock struct {
	name      string
	imageType string
	width     float64
	height    float64
	gap       float64
}

func (b *imageBlock) minHeight(*layoutEngine) float64 {
	return b.height + b.gap
}

func (b *imageBlock) draw(e *layoutEngine) error {
	if b.height > e.frameHeight() {
		return NewRenderError(ErrCodeLayoutOverflow, "image is taller than the page frame", nil)
	}
	e.keepSpace(b.height)
	e.rec.image(b.name, b.imageType, e.left, e.y, b.width, b.height)
	e.y += b.height
	e.advance(b.gap)
	return nil
}

// Cell alignment
const (
	alignLeft   = "L"
	alignCenter = "C"
	alignRight  = "R"
)

type column struct {
	width float64
	align string
	style textStyle
}

// table is a grid of text cells. Rows are never split; when a row does not
// fit, the table continues on the next page and the header row is repeated.
type table struct {
	columns []column
	header  []string
	rows    [][]string
	// shadeFirstRow shades the first body row when there is no header
	shadeFirstRow bool
}

type laidRow struct {
	cells  [][]string
	styles []textStyle
	height float64
	fill   *rgb
}

func newTable(columns []column, header []string, rows [][]string) *table {
	t := &table{columns: columns}
	if header != nil {
		t.header = encodeRow(header)
	}
	for _, r := range rows {
		t.rows = append(t.rows, encodeRow(r))
	}
	return t
}

func encodeRow(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = encodeText(c)
	}
	return out
}

func (t *table) totalWidth() float64 {
	w := 0.0
	for _, c := range t.columns {
		w += c.width
	}
	return w
}

func (t *table) layoutRow(e *layoutEngine, cells []string, header bool) laidRow {
	row := laidRow{cells: make([][]string, len(t.columns)), styles: make([]textStyle, len(t.columns))}
	maxLines := 1
	lead := 0.0
	for i, col := range t.columns {
		style := col.style
		if header {
			style = styleCellStrong
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		lines := e.m.wrap(style.font, text, col.width-2*cellPadX)
		row.cells[i] = lines
		row.styles[i] = style
		maxLines = max(maxLines, len(lines))
		lead = max(lead, style.leadingMM())
	}
	row.height = float64(maxLines)*lead + 2*cellPadY
	return row
}

func (t *table) laidOut(e *layoutEngine) (*laidRow, []laidRow) {
	var header *laidRow
	if t.header != nil {
		h := t.layoutRow(e, t.header, true)
		h.fill = &tableHeaderFill
		header = &h
	}
	body := make([]laidRow, 0, len(t.rows))
	for i, cells := range t.rows {
		r := t.layoutRow(e, cells, false)
		if i == 0 && header == nil && t.shadeFirstRow {
			r.fill = &tableShadeFill
		}
		body = append(body, r)
	}
	return header, body
}

func (t *table) minHeight(e *layoutEngine) float64 {
	header, body := t.laidOut(e)
	h := 0.0
	if header != nil {
		h += header.height
	}
	if len(body) > 0 {
		h += body[0].height
	}
	return h
}

func (t *table) draw(e *layoutEngine) error {
	header, body := t.laidOut(e)
	headerHeight := 0.0
	if header != nil {
		headerHeight = header.height
	}
	for i, r := range body {
		if headerHeight+r.height > e.frameHeight()+layoutEpsilon {
			return NewRenderError(ErrCodeLayoutOverflow,
				fmt.Sprintf("table row %d is taller than the page frame", i+1), nil)
		}
	}

	first := headerHeight
	if len(body) > 0 {
		first += body[0].height
	}
	e.keepSpace(first)

	x0 := e.left + (e.width-t.totalWidth())/2
	seg := tableSegment{top: e.y}
	if header != nil {
		t.drawRow(e, x0, header, &seg)
	}
	for i := range body {
		if e.y+body[i].height > e.bottom+layoutEpsilon {
			t.closeSegment(e, x0, &seg)
			e.newPage()
			seg = tableSegment{top: e.y}
			if header != nil {
				t.drawRow(e, x0, header, &seg)
			}
		}
		t.drawRow(e, x0, &body[i], &seg)
	}
	t.closeSegment(e, x0, &seg)
	return nil
}

// tableSegment is the part of a table that sits on one page
type tableSegment struct {
	top        float64
	rowBottoms []float64
}

func (t *table) drawRow(e *layoutEngine, x0 float64, row *laidRow, seg *tableSegment) {
	width := t.totalWidth()
	if row.fill != nil {
		e.rec.fillRect(x0, e.y, width, row.height, *row.fill)
	}
	x := x0
	for i, col := range t.columns {
		style := row.styles[i]
		lines := row.cells[i]
		lead := style.leadingMM()
		// vertically centered in the row
		ty := e.y + (row.height-float64(len(lines))*lead)/2
		for _, line := range lines {
			if line != "" {
				e.rec.text(alignedX(e, x, col, style, line), textBaseline(ty, style), line, style)
			}
			ty += lead
		}
		x += col.width
	}
	e.y += row.height
	seg.rowBottoms = append(seg.rowBottoms, e.y)
}

func alignedX(e *layoutEngine, x float64, col column, style textStyle, line string) float64 {
	switch col.align {
	case alignCenter:
		return x + (col.width-e.m.width(style.font, line))/2
	case alignRight:
		return x + col.width - cellPadX - e.m.width(style.font, line)
	default:
		return x + cellPadX
	}
}

// closeSegment draws the inner grid and the outer box of a page segment
func (t *table) closeSegment(e *layoutEngine, x0 float64, seg *tableSegment) {
	if len(seg.rowBottoms) == 0 {
		return
	}
	width := t.totalWidth()
	bottom := seg.rowBottoms[len(seg.rowBottoms)-1]
	for _, y := range seg.rowBottoms[:len(seg.rowBottoms)-1] {
		e.rec.line(x0, y, x0+width, y, tableGridColor, tableGridWidth)
	}
	x := x0
	for _, col := range t.columns[:len(t.columns)-1] {
		x += col.width
		e.rec.line(x, seg.top, x, bottom, tableGridColor, tableGridWidth)
	}
	e.rec.strokeRect(x0, seg.top, width, bottom-seg.top, tableBoxColor, tableBoxWidth)
}
