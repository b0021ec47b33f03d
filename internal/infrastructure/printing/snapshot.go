package printing

type opKind uint8

const (
	opText opKind = iota
	opRect
	opLine
	opImage
)

// drawOp is one recorded drawing instruction. Coordinates are in mm from
// the top-left corner of the page.
type drawOp struct {
	kind opKind
	x, y float64
	// w and h are the size of rectangles and images, or the end point of lines
	w, h      float64
	text      string
	font      font
	color     rgb
	fill      rgb
	rectStyle string
	lineWidth float64
	image     string
	imageType string
}

// drawState is the graphics state in effect at the end of a page
type drawState struct {
	font      font
	textColor rgb
	drawColor rgb
	fillColor rgb
	lineWidth float64
	cursorY   float64
}

// PageSnapshot is the complete display list of one laid-out page, without
// its footer. Snapshots are opaque outside this package.
type PageSnapshot struct {
	ops   []drawOp
	state drawState
}

// Len returns the number of recorded draw operations
func (p *PageSnapshot) Len() int {
	return len(p.ops)
}

// texts returns the strings drawn on the page, in drawing order
func (p *PageSnapshot) texts() []string {
	var out []string
	for _, op := range p.ops {
		if op.kind == opText {
			out = append(out, op.text)
		}
	}
	return out
}

// recorder collects draw operations into page snapshots during layout
type recorder struct {
	pages []*PageSnapshot
	cur   *PageSnapshot
	state drawState
}

func (r *recorder) beginPage() {
	r.cur = &PageSnapshot{}
	r.pages = append(r.pages, r.cur)
}

// closePage freezes the state of the current page
func (r *recorder) closePage(cursorY float64) {
	if r.cur == nil {
		return
	}
	r.state.cursorY = cursorY
	r.cur.state = r.state
	r.cur = nil
}

func (r *recorder) add(op drawOp) {
	r.cur.ops = append(r.cur.ops, op)
}

func (r *recorder) text(x, baseline float64, s string, st textStyle) {
	r.state.font = st.font
	r.state.textColor = st.color
	r.add(drawOp{kind: opText, x: x, y: baseline, text: s, font: st.font, color: st.color})
}

func (r *recorder) fillRect(x, y, w, h float64, fill rgb) {
	r.state.fillColor = fill
	r.add(drawOp{kind: opRect, x: x, y: y, w: w, h: h, fill: fill, rectStyle: "F"})
}

func (r *recorder) strokeRect(x, y, w, h float64, color rgb, width float64) {
	r.state.drawColor = color
	r.state.lineWidth = width
	r.add(drawOp{kind: opRect, x: x, y: y, w: w, h: h, color: color, rectStyle: "D", lineWidth: width})
}

func (r *recorder) line(x1, y1, x2, y2 float64, color rgb, width float64) {
	r.state.drawColor = color
	r.state.lineWidth = width
	r.add(drawOp{kind: opLine, x: x1, y: y1, w: x2, h: y2, color: color, lineWidth: width})
}

func (r *recorder) image(name, imageType string, x, y, w, h float64) {
	r.add(drawOp{kind: opImage, x: x, y: y, w: w, h: h, image: name, imageType: imageType})
}
