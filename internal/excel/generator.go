package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/ecoreports/internal/model"
)

const (
	summarySheet = "Summary"
	reportsSheet = "Reports"
	maxSheetName = 31
)

var detailHeaders = []string{
	"ID",
	"Created",
	"Updated",
	"Status",
	"Severity",
	"Recurring",
	"Latitude",
	"Longitude",
	"Description",
	"Image",
	"Reporter",
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes a summary sheet, a sheet with every report and one sheet
// per status that has at least one report.
func (g *Generator) Generate(export model.ReportExport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	counts := export.StatusCounts()
	if err := g.writeSummary(file, summarySheet, export, counts); err != nil {
		return nil, err
	}

	if _, err := file.NewSheet(reportsSheet); err != nil {
		return nil, err
	}
	if err := g.writeDetail(file, reportsSheet, export.Reports); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}, reportsSheet: {}}
	for _, count := range counts {
		if count.Count == 0 {
			continue
		}
		sheetName := buildSheetName(count.Status.Display(), usedNames)
		usedNames[sheetName] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		if err := g.writeDetail(file, sheetName, filterByStatus(export.Reports, count.Status)); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, export model.ReportExport, counts []model.StatusCount) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	statusFilter := "All"
	if export.Filter.Status != nil {
		statusFilter = export.Filter.Status.Display()
	}

	set("A1", "Generated at")
	set("B1", formatDateTime(export.GeneratedAt))
	set("A2", "Generated by")
	set("B2", export.GeneratedBy)
	set("A3", "Status filter")
	set("B3", statusFilter)
	set("A4", "Search")
	set("B4", export.Filter.Search)
	set("A5", "Total reports")
	set("B5", len(export.Reports))

	tableRow := 7
	set(fmt.Sprintf("A%d", tableRow), "Status")
	set(fmt.Sprintf("B%d", tableRow), "Reports")
	for i, count := range counts {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), count.Status.Display())
		set(fmt.Sprintf("B%d", row), count.Count)
	}

	_ = file.SetColWidth(sheet, "A", "A", 20)
	_ = file.SetColWidth(sheet, "B", "B", 30)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, reports []model.TrashReport) error {
	for i, header := range detailHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		_ = file.SetCellValue(sheet, cell, header)
	}

	for i, report := range reports {
		row := []interface{}{
			report.ID.String(),
			formatDateTime(report.CreatedAt),
			formatDateTime(report.UpdatedAt),
			report.Status.Display(),
			report.Severity.Display(),
			formatBool(report.IsRecurring),
			report.Latitude,
			report.Longitude,
			report.Description,
			report.Image,
			report.UserID.String(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 38)
	_ = file.SetColWidth(sheet, "B", "C", 20)
	_ = file.SetColWidth(sheet, "D", "F", 12)
	_ = file.SetColWidth(sheet, "G", "H", 12)
	_ = file.SetColWidth(sheet, "I", "I", 60)
	_ = file.SetColWidth(sheet, "J", "K", 38)
	return nil
}

func filterByStatus(reports []model.TrashReport, status model.ReportStatus) []model.TrashReport {
	var result []model.TrashReport
	for _, report := range reports {
		if report.Status == status {
			result = append(result, report)
		}
	}
	return result
}

func buildSheetName(name string, used map[string]struct{}) string {
	base := sanitizeSheetName("Status - " + name)
	if len(base) > maxSheetName {
		base = base[:maxSheetName]
	}

	candidate := base
	counter := 2
	for {
		if _, exists := used[candidate]; !exists {
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > maxSheetName {
			trimmed = trimmed[:maxSheetName-len(suffix)]
		}
		candidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Sheet"
	}
	return value
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

func formatBool(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}
