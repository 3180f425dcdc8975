package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
)

const fontFamily = "Helvetica"

// PDF lays out the report and writes it as a PDF document to w.
func PDF(w io.Writer, r models.AnalysisResult, meta Meta) error {
	return writePDF(w, r, meta, true)
}

func writePDF(w io.Writer, r models.AnalysisResult, meta Meta, compress bool) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(docTitle, true)
	pdf.SetCreator("reportaudit", true)
	pdf.SetCreationDate(meta.Now)
	pdf.SetModificationDate(meta.Now)

	// Core fonts are cp1252; translate before measuring or drawing.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	measure := func(s string, f Font) float64 {
		pdf.SetFont(fontFamily, f.Style, f.Size)
		return pdf.GetStringWidth(tr(s))
	}

	doc := LayoutPDF(r, meta, measure)
	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			switch op.Kind {
			case OpRect:
				pdf.SetFillColor(op.Fill.R, op.Fill.G, op.Fill.B)
				pdf.SetDrawColor(op.Draw.R, op.Draw.G, op.Draw.B)
				pdf.Rect(op.X, op.Y, op.W, op.H, op.Style)
			case OpText:
				pdf.SetFont(fontFamily, op.Font.Style, op.Font.Size)
				pdf.SetTextColor(op.Color.R, op.Color.G, op.Color.B)
				pdf.Text(op.X, op.Y, tr(op.Text))
			}
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
