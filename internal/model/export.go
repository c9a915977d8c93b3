package model

import "time"

// ReportExport is the input of the spreadsheet export.
type ReportExport struct {
	GeneratedAt time.Time
	GeneratedBy string
	Filter      ReportFilter
	Reports     []TrashReport
}

// StatusCounts returns the number of reports per status, in ReportStatuses order.
func (e ReportExport) StatusCounts() []StatusCount {
	counts := make(map[ReportStatus]int, len(ReportStatuses))
	for _, report := range e.Reports {
		counts[report.Status]++
	}
	result := make([]StatusCount, 0, len(ReportStatuses))
	for _, status := range ReportStatuses {
		result = append(result, StatusCount{Status: status, Count: counts[status]})
	}
	return result
}

type StatusCount struct {
	Status ReportStatus
	Count  int
}

// ReportSheet is the input of the single report PDF.
type ReportSheet struct {
	Detail      ReportDetail
	History     []ReportStatusChange
	GeneratedAt time.Time
}
