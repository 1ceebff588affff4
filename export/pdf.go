package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"

	"climate-science-service/query"
)

// PDFRenderer draws a result set as a landscape table. Journal titles are
// shortened through the abbreviation lookup so bibliographic rows stay on
// one line.
type PDFRenderer struct {
	journals Abbreviations
}

func NewPDFRenderer(journals Abbreviations) *PDFRenderer {
	return &PDFRenderer{journals: journals}
}

// Render produces the finished document.
func (r *PDFRenderer) Render(title string, result *query.ResultSet) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()
	// Core fonts are cp1252; database text is UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right
	columnWidth := usable / float64(len(result.Columns))

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for _, column := range result.Columns {
		pdf.CellFormat(columnWidth, 7, truncate(pdf, tr(column), columnWidth), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, record := range result.Records {
		for _, column := range result.Columns {
			text := formatValue(record[column])
			if column == "journal" {
				text = r.journals.Shorten(text)
			}
			pdf.CellFormat(columnWidth, 6, truncate(pdf, tr(text), columnWidth), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// truncate shortens a cell value until it fits the column, marking the cut.
func truncate(pdf *fpdf.Fpdf, text string, width float64) string {
	const padding = 2
	if pdf.GetStringWidth(text) <= width-padding {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width-padding {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
