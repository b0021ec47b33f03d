package workorder

import (
	"strings"
	"unicode"
)

const (
	filenamePrefix    = "WO"
	filenameSeparator = '_'
	filenameExt       = ".pdf"
)

// SuggestedFilename derives the download name of the printed sheet:
// WO_{board}_{circuit}_{YYYYMMDD}.pdf. It is a pure function of the board,
// circuit and date; identical orders always get identical names.
func SuggestedFilename(w *WorkOrder) string {
	var b strings.Builder
	b.WriteString(filenamePrefix)
	for _, part := range []string{w.BoardID, w.CircuitID, w.Date.Format("20060102")} {
		if clean := sanitizeFilenamePart(part); clean != "" {
			b.WriteByte(filenameSeparator)
			b.WriteString(clean)
		}
	}
	b.WriteString(filenameExt)
	return b.String()
}

// sanitizeFilenamePart maps every rune outside letters, digits, '-' and '.'
// to the separator, collapses separator runs and trims them at both ends.
func sanitizeFilenamePart(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range strings.TrimSpace(s) {
		if r == '-' || r == '.' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte(filenameSeparator)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return strings.Trim(b.String(), "._")
}
