package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer writes an A4 document. Every report page starts a new PDF
// page; a card that overflows continues on an extra page.
type PDFRenderer struct {
	// PerPage is the number of cards per page. Zero means DefaultPerPage.
	PerPage int

	uncompressed bool
}

const (
	pdfMargin = 15.0
	pdfWidth  = 210.0 - 2*pdfMargin
	pdfLine   = 6.0
	pdfFont   = "Helvetica"
)

type rgb struct{ r, g, b int }

var (
	pdfInk        = rgb{31, 41, 55}
	pdfMuted      = rgb{107, 114, 128}
	pdfRule       = rgb{209, 213, 219}
	pdfCorrectBg  = rgb{220, 252, 231}
	pdfCorrectInk = rgb{22, 101, 52}
	pdfWrongBg    = rgb{254, 226, 226}
	pdfWrongInk   = rgb{153, 27, 27}
)

func (p *PDFRenderer) Extension() string { return "pdf" }

func (p *PDFRenderer) Render(w io.Writer, r Report) error {
	doc := buildDocument(r, p.PerPage)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!p.uncompressed)
	pdf.SetTitle("Quiz Report: "+r.Topic, true)
	pdf.SetCreator("quizbit", true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin+10)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfMargin - 5)
		pdf.SetFont(pdfFont, "", 8)
		textColor(pdf, pdfMuted)
		pdf.SetDrawColor(pdfRule.r, pdfRule.g, pdfRule.b)
		pdf.CellFormat(pdfWidth/2, 5, "Generated by quizbit", "T", 0, "L", false, 0, "")
		pdf.CellFormat(pdfWidth/2, 5, fmt.Sprintf("Page %d / {nb}", pdf.PageNo()), "T", 0, "R", false, 0, "")
	})

	for i, pg := range doc.Pages {
		pdf.AddPage()
		if i == 0 {
			pdfHeader(pdf, tr, doc)
		}
		for _, c := range pg.Cards {
			pdfCard(pdf, tr, c)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func pdfHeader(pdf *fpdf.Fpdf, tr func(string) string, doc document) {
	textColor(pdf, pdfInk)
	pdf.SetFont(pdfFont, "B", 20)
	pdf.CellFormat(pdfWidth, 10, "Quiz Report", "", 1, "L", false, 0, "")

	pdf.SetFont(pdfFont, "", 11)
	pdf.CellFormat(pdfWidth, pdfLine, tr("Topic: "+doc.Topic), "", 1, "L", false, 0, "")
	pdf.CellFormat(pdfWidth, pdfLine, fmt.Sprintf("Score: %d / %d (%d%%)", doc.Score, doc.Total, doc.Percent), "", 1, "L", false, 0, "")
	pdf.CellFormat(pdfWidth, pdfLine, "Date: "+doc.Date, "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func pdfCard(pdf *fpdf.Fpdf, tr func(string) string, c card) {
	textColor(pdf, pdfInk)
	pdf.SetFont(pdfFont, "B", 12)
	pdf.MultiCell(pdfWidth, pdfLine, tr(fmt.Sprintf("%d. %s", c.Number, c.Question)), "", "L", false)
	pdf.Ln(1)

	pdf.SetFont(pdfFont, "", 11)
	for _, o := range c.Options {
		ink, fill := pdfInk, false
		switch {
		case o.IsCorrect:
			ink, fill = pdfCorrectInk, true
			pdf.SetFillColor(pdfCorrectBg.r, pdfCorrectBg.g, pdfCorrectBg.b)
		case o.IsSelected:
			ink, fill = pdfWrongInk, true
			pdf.SetFillColor(pdfWrongBg.r, pdfWrongBg.g, pdfWrongBg.b)
		}
		textColor(pdf, ink)
		pdf.MultiCell(pdfWidth, pdfLine, tr(o.Label+". "+o.Text), "", "L", fill)
	}
	pdf.Ln(1)

	textColor(pdf, pdfInk)
	answer := "Not Answered"
	if c.Answered {
		answer = c.Answer
	}
	pdf.MultiCell(pdfWidth, pdfLine, tr("Your Answer: "+answer), "", "L", false)
	pdf.MultiCell(pdfWidth, pdfLine, tr("Correct Answer: "+c.Correct), "", "L", false)
	if c.Explanation != "" {
		pdf.SetFont(pdfFont, "I", 10)
		textColor(pdf, pdfMuted)
		pdf.MultiCell(pdfWidth, pdfLine, tr("Explanation: "+c.Explanation), "", "L", false)
	}

	y := pdf.GetY() + 3
	pdf.SetDrawColor(pdfRule.r, pdfRule.g, pdfRule.b)
	pdf.Line(pdfMargin, y, pdfMargin+pdfWidth, y)
	pdf.SetY(y + 4)
}

func textColor(pdf *fpdf.Fpdf, c rgb) {
	pdf.SetTextColor(c.r, c.g, c.b)
}
