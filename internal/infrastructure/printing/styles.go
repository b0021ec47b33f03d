package printing

// ptToMM converts typographic points to millimeters
const ptToMM = 25.4 / 72

type rgb struct {
	r, g, b int
}

func grey(v int) rgb {
	return rgb{v, v, v}
}

type font struct {
	family string
	style  string
	size   float64 // pt
}

// sizeMM returns the font size in millimeters
func (f font) sizeMM() float64 {
	return f.size * ptToMM
}

// textStyle describes how a block of text is set. Leading and spacing are
// in points, like the font size.
type textStyle struct {
	font        font
	leading     float64
	color       rgb
	spaceBefore float64
	spaceAfter  float64
}

func (s textStyle) leadingMM() float64 {
	return s.leading * ptToMM
}

const fontFamily = "Helvetica"

var (
	styleTitle   = textStyle{font: font{fontFamily, "B", 16}, leading: 18, color: grey(0x22), spaceAfter: 8}
	styleHeading = textStyle{font: font{fontFamily, "B", 11}, leading: 14, color: grey(0x44), spaceBefore: 10, spaceAfter: 4}
	styleBody    = textStyle{font: font{fontFamily, "", 10}, leading: 13, color: grey(0)}
	styleLabel   = textStyle{font: font{fontFamily, "B", 9}, leading: 12, color: grey(0x77)}
	styleSmall   = textStyle{font: font{fontFamily, "", 9}, leading: 12, color: grey(0x66)}
	styleFooter  = textStyle{font: font{fontFamily, "", 8}, leading: 10, color: grey(0x66)}

	styleCell       = textStyle{font: font{fontFamily, "", 9}, leading: 11, color: grey(0x33)}
	styleCellStrong = textStyle{font: font{fontFamily, "B", 9}, leading: 11, color: grey(0x33)}
)

// Table decoration
var (
	tableGridColor  = grey(0xDD)
	tableBoxColor   = grey(0xBB)
	tableHeaderFill = grey(0xF1)
	tableShadeFill  = grey(0xF5)
)

const (
	tableGridWidth = 0.25 * ptToMM
	tableBoxWidth  = 0.6 * ptToMM
	cellPadX       = 6 * ptToMM
	cellPadY       = 3 * ptToMM
)

// textBaseline returns the baseline for a line whose box starts at top
func textBaseline(top float64, s textStyle) float64 {
	return top + s.leadingMM()/2 + s.font.sizeMM()*0.35
}
