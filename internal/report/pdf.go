package report

import (
	"io"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
)

const (
	pdfMargin   = 36.0
	pdfRowH     = 12.0
	pdfFontSize = 8.0
)

// WritePDF renders the selected sections as an A4 landscape document
func WritePDF(w io.Writer, r *arena.Report, sections arena.Reporting) error {
	if r == nil {
		return errors.InvalidArgument("report is required")
	}

	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle("Arena report", true)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	usable := pageW - 2*pdfMargin

	for _, t := range tables(r, sections) {
		pdf.SetTextColor(80, 50, 30)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(usable, 18, t.title, "", 1, "L", false, 0, "")

		cols := len(t.header)
		if cols == 0 && len(t.rows) > 0 {
			cols = len(t.rows[0])
		}
		if cols == 0 {
			continue
		}
		colW := usable / float64(cols)

		if len(t.header) > 0 {
			pdf.SetFont("Helvetica", "B", pdfFontSize)
			pdf.SetFillColor(245, 235, 210)
			for _, h := range t.header {
				pdf.CellFormat(colW, pdfRowH, h, "B", 0, "L", true, 0, "")
			}
			pdf.Ln(-1)
		}

		pdf.SetFont("Helvetica", "", pdfFontSize)
		pdf.SetTextColor(40, 25, 15)
		if len(t.rows) == 0 {
			pdf.CellFormat(usable, pdfRowH, "(none)", "", 1, "L", false, 0, "")
		}
		for _, row := range t.rows {
			for _, cell := range row {
				pdf.CellFormat(colW, pdfRowH, cell, "", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(pdfRowH)
	}

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "failed to render pdf")
	}
	return nil
}
