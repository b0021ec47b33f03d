package printing

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// footerGap is the distance between the content frame and the footer rule
const footerGap = 4.0

// footerInfo is the per-document text stamped on every page
type footerInfo struct {
	generatedAt string
	responsible string
}

// emit is the second rendering pass: it replays every page snapshot into a
// fresh document, stamps the footer now that the page count is known and
// serializes the result.
func (r *LayoutRenderer) emit(pages []*PageSnapshot, logo *placedLogo, footer footerInfo) ([]byte, error) {
	pdf := r.newDocument()
	if logo != nil {
		pdf.RegisterImageOptionsReader(logoImageName, fpdf.ImageOptions{ImageType: logo.asset.ImageType}, bytes.NewReader(logo.asset.Data))
	}

	total := len(pages)
	for i, page := range pages {
		pdf.AddPage()
		replay(pdf, page)
		r.stampFooter(pdf, footer, i+1, total)
	}
	if err := pdf.Error(); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to compose document", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to serialize document", err)
	}
	return buf.Bytes(), nil
}

func (r *LayoutRenderer) newDocument() *fpdf.Fpdf {
	width, height := r.config.PaperSize.Dimensions()
	orientation := "P"
	if r.landscape() {
		orientation = "L"
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	m := r.config.Margins
	pdf.SetMargins(m.Left, m.Top, m.Right)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(!r.config.DisableCompression)
	pdf.SetTitle(r.config.Title, true)
	pdf.SetAuthor(r.config.Author, true)
	pdf.SetCreator(r.config.Creator, true)

	now := r.config.Clock()
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetCatalogSort(true)
	return pdf
}

// replay draws a snapshot's display list and restores its final state
func replay(pdf *fpdf.Fpdf, page *PageSnapshot) {
	for _, op := range page.ops {
		switch op.kind {
		case opText:
			pdf.SetFont(op.font.family, op.font.style, op.font.size)
			pdf.SetTextColor(op.color.r, op.color.g, op.color.b)
			pdf.Text(op.x, op.y, op.text)
		case opRect:
			if op.rectStyle == "F" {
				pdf.SetFillColor(op.fill.r, op.fill.g, op.fill.b)
			} else {
				pdf.SetLineWidth(op.lineWidth)
				pdf.SetDrawColor(op.color.r, op.color.g, op.color.b)
			}
			pdf.Rect(op.x, op.y, op.w, op.h, op.rectStyle)
		case opLine:
			pdf.SetLineWidth(op.lineWidth)
			pdf.SetDrawColor(op.color.r, op.color.g, op.color.b)
			pdf.Line(op.x, op.y, op.w, op.h)
		case opImage:
			pdf.ImageOptions(op.image, op.x, op.y, op.w, op.h, false, fpdf.ImageOptions{ImageType: op.imageType}, 0, "")
		}
	}
	restoreState(pdf, page.state)
}

func restoreState(pdf *fpdf.Fpdf, s drawState) {
	if s.font.family != "" {
		pdf.SetFont(s.font.family, s.font.style, s.font.size)
	}
	pdf.SetTextColor(s.textColor.r, s.textColor.g, s.textColor.b)
	pdf.SetDrawColor(s.drawColor.r, s.drawColor.g, s.drawColor.b)
	pdf.SetFillColor(s.fillColor.r, s.fillColor.g, s.fillColor.b)
	if s.lineWidth > 0 {
		pdf.SetLineWidth(s.lineWidth)
	}
	pdf.SetY(s.cursorY)
}

// stampFooter draws the rule and the three footer fields below the frame
func (r *LayoutRenderer) stampFooter(pdf *fpdf.Fpdf, info footerInfo, page, total int) {
	pageWidth, pageHeight := pdf.GetPageSize()
	m := r.config.Margins
	left, right := m.Left, pageWidth-m.Right
	ruleY := pageHeight - m.Bottom + footerGap

	pdf.SetLineWidth(tableGridWidth)
	pdf.SetDrawColor(tableBoxColor.r, tableBoxColor.g, tableBoxColor.b)
	pdf.Line(left, ruleY, right, ruleY)

	st := styleFooter
	pdf.SetFont(st.font.family, st.font.style, st.font.size)
	pdf.SetTextColor(st.color.r, st.color.g, st.color.b)
	baseline := textBaseline(ruleY+1, st)

	generated := encodeText("Generated " + info.generatedAt)
	pdf.Text(left, baseline, generated)

	if info.responsible != "" {
		resp := encodeText("Responsible: " + info.responsible)
		pdf.Text((left+right-pdf.GetStringWidth(resp))/2, baseline, resp)
	}

	counter := encodeText(fmt.Sprintf("Page %d of %d", page, total))
	pdf.Text(right-pdf.GetStringWidth(counter), baseline, counter)
}
