package model

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const ReportPageSize = 10

type ReportOrder string

const (
	OrderCreatedAtAsc  ReportOrder = "created_at_asc"
	OrderCreatedAtDesc ReportOrder = "created_at_desc"
	OrderSeverityAsc   ReportOrder = "severity_asc"
	OrderSeverityDesc  ReportOrder = "severity_desc"
)

// ReportFilter is the part of a report query that narrows the result set.
type ReportFilter struct {
	Status *ReportStatus
	Search string
}

type ReportQuery struct {
	ReportFilter
	OrderBy ReportOrder
	Page    int
}

// ParseReportOrder accepts both the enum names and the legacy sort tokens
// ("created_at", "-created_at", "severity", "-severity"). Anything else falls
// back to newest first.
func ParseReportOrder(raw string) ReportOrder {
	switch strings.TrimSpace(raw) {
	case "created_at", string(OrderCreatedAtAsc):
		return OrderCreatedAtAsc
	case "-created_at", string(OrderCreatedAtDesc):
		return OrderCreatedAtDesc
	case "severity", string(OrderSeverityAsc):
		return OrderSeverityAsc
	case "-severity", string(OrderSeverityDesc):
		return OrderSeverityDesc
	default:
		return OrderCreatedAtDesc
	}
}

// ParseReportQuery maps raw request parameters onto a ReportQuery.
// Unrecognized values never fail, they fall back to defaults.
func ParseReportQuery(status, search, orderBy, page string) ReportQuery {
	query := ReportQuery{
		ReportFilter: ReportFilter{Search: strings.TrimSpace(search)},
		OrderBy:      ParseReportOrder(orderBy),
		Page:         1,
	}
	if parsed, ok := ParseReportStatus(strings.TrimSpace(status)); ok {
		query.Status = &parsed
	}
	query.Page = parsePage(strings.TrimSpace(page))
	return query
}

// parsePage returns 1 for anything unparseable. A positive number too large
// for an int maps to math.MaxInt so that it clamps to the last page.
func parsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err == nil {
		return n
	}
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
		return math.MaxInt
	}
	return 1
}
