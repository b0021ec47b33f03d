package printing

import (
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// unencodable runes are printed as this byte
const replacementByte = '?'

// encodeText converts UTF-8 text into the Windows-1252 byte string the PDF
// core fonts expect. Line feeds survive, tabs become spaces and every other
// control character is dropped.
func encodeText(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteByte('\n')
		case r == '\t':
			b.WriteByte(' ')
		case unicode.IsControl(r):
			continue
		default:
			if c, ok := charmap.Windows1252.EncodeRune(r); ok {
				b.WriteByte(c)
			} else {
				b.WriteByte(replacementByte)
			}
		}
	}
	return b.String()
}

// measurer answers text width questions for the layout pass. It owns a
// scratch fpdf document that is never serialized.
type measurer struct {
	pdf *fpdf.Fpdf
}

func newMeasurer() *measurer {
	pdf := fpdf.New("P", "mm", "A4", "")
	// SplitLines reserves the cell margin on both sides; widths here are net
	pdf.SetCellMargin(0)
	return &measurer{pdf: pdf}
}

// width returns the width in mm of an encoded string set in f
func (m *measurer) width(f font, s string) float64 {
	m.pdf.SetFont(f.family, f.style, f.size)
	return m.pdf.GetStringWidth(s)
}

// wrap breaks encoded text into lines no wider than maxWidth. Explicit line
// feeds always break and blank lines are kept; runs of spaces collapse to
// one. A word wider than the line is split between bytes.
func (m *measurer) wrap(f font, text string, maxWidth float64) []string {
	m.pdf.SetFont(f.family, f.style, f.size)
	// SplitLines rounds the width up to a whole glyph unit; shave that unit
	// off so no line ends up wider than maxWidth
	_, unitSize := m.pdf.GetFontSize()
	splitWidth := maxWidth - unitSize/1000

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		para = collapseSpaces(para)
		if para == "" {
			lines = append(lines, "")
			continue
		}
		for _, line := range m.pdf.SplitLines([]byte(para), splitWidth) {
			lines = append(lines, string(line))
		}
	}
	return lines
}

// collapseSpaces trims ASCII spaces and squeezes inner runs to one. It
// works on bytes because the text is already Windows-1252 encoded.
func collapseSpaces(s string) string {
	words := strings.Split(s, " ")
	kept := words[:0]
	for _, w := range words {
		if w != "" {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
