package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidthMM  = 277.0 // A4 landscape minus margins
	rowHeightMM  = 7.0
	fontFamily   = "Helvetica"
	maxCellChars = 60
)

// PDFExporter renders datasets as a landscape table with repeated headers and page footers.
type PDFExporter struct {
	now func() time.Time
}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{now: time.Now}
}

// ContentType of the rendered bytes.
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Extension of the rendered file.
func (e *PDFExporter) Extension() string { return "pdf" }

// Render lays out every row; long values are truncated to keep rows single-line.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Columns) == 0 {
		return nil, fmt.Errorf("pdf requires at least one column")
	}
	widths := columnWidths(data.Columns)
	generated := e.now().Format("Jan 2, 2006 3:04 PM")

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Generated %s - page %d/{nb}", generated, pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	header := func() {
		pdf.SetFont(fontFamily, "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, col := range data.Columns {
			pdf.CellFormat(widths[i], 8, col.Title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(fontFamily, "", 8)
	}

	pdf.AddPage()
	if data.Title != "" {
		pdf.SetFont(fontFamily, "B", 14)
		pdf.CellFormat(0, 10, data.Title, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range data.Rows {
		if pdf.GetY()+rowHeightMM > pageHeight-bottom-5 {
			pdf.AddPage()
			header()
		}
		for i, value := range data.record(row) {
			pdf.CellFormat(widths[i], rowHeightMM, truncate(value), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(data.Rows) == 0 {
		pdf.CellFormat(0, rowHeightMM, "No records", "1", 1, "C", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func columnWidths(columns []Column) []float64 {
	total := 0.0
	for _, col := range columns {
		total += weight(col)
	}
	widths := make([]float64, len(columns))
	for i, col := range columns {
		widths[i] = pageWidthMM * weight(col) / total
	}
	return widths
}

func weight(col Column) float64 {
	if col.Weight <= 0 {
		return 1
	}
	return col.Weight
}

func truncate(value string) string {
	runes := []rune(value)
	if len(runes) <= maxCellChars {
		return value
	}
	return string(runes[:maxCellChars-3]) + "..."
}
