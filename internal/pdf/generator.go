package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/ecoreports/internal/model"
)

const fontFamily = "Helvetica"

// Generator renders report sheets with the PDF core fonts, so text is limited
// to the cp1252 range. Other runes are replaced.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(sheet model.ReportSheet) ([]byte, error) {
	report := sheet.Detail.Report

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle("Trash report "+report.ID.String(), true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 10, "Trash report", "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 9)
	pdf.CellFormat(0, 5, "Generated "+formatDateTime(sheet.GeneratedAt), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	fields := [][2]string{
		{"Report ID", report.ID.String()},
		{"Reporter", report.UserID.String()},
		{"Status", report.Status.Display()},
		{"Severity", fmt.Sprintf("%d - %s", int(report.Severity), report.Severity.Display())},
		{"Recurring", formatBool(report.IsRecurring)},
		{"Location", fmt.Sprintf("%.6f, %.6f", report.Latitude, report.Longitude)},
		{"Image", safeValue(report.Image)},
		{"Created", formatDateTime(report.CreatedAt)},
		{"Updated", formatDateTime(report.UpdatedAt)},
	}
	for _, field := range fields {
		drawField(pdf, field[0], tr(field[1]))
	}

	pdf.Ln(2)
	sectionTitle(pdf, "Description")
	pdf.SetFont(fontFamily, "", 10)
	pdf.MultiCell(0, 5, tr(safeValue(report.Description)), "", "L", false)

	if len(sheet.History) > 0 {
		pdf.Ln(2)
		sectionTitle(pdf, "Status history")
		widths := []float64{45, 35, 35, 65}
		drawTableRow(pdf, []string{"Changed at", "From", "To", "Changed by"}, widths, true)
		for _, change := range sheet.History {
			drawTableRow(pdf, []string{
				formatDateTime(change.CreatedAt),
				change.OldStatus.Display(),
				change.NewStatus.Display(),
				change.ChangedBy.String(),
			}, widths, false)
		}
	}

	pdf.Ln(2)
	sectionTitle(pdf, fmt.Sprintf("Comments (%d)", len(sheet.Detail.Comments)))
	if len(sheet.Detail.Comments) == 0 {
		pdf.SetFont(fontFamily, "I", 10)
		pdf.CellFormat(0, 6, "No comments yet.", "", 1, "L", false, 0, "")
	}
	for _, comment := range sheet.Detail.Comments {
		pdf.SetFont(fontFamily, "B", 9)
		pdf.CellFormat(0, 5, fmt.Sprintf("%s  %s", formatDateTime(comment.CreatedAt), comment.UserID.String()), "", 1, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 10)
		pdf.MultiCell(0, 5, tr(comment.Content), "", "L", false)
		pdf.Ln(1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func drawField(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont(fontFamily, "B", 10)
	pdf.CellFormat(35, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func drawTableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontFamily, style, 9)
	for i, col := range cols {
		pdf.CellFormat(widths[i], 7, col, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatBool(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("02.01.2006 15:04")
}
