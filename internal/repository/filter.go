package repository

import (
	"strings"

	"github.com/nurpe/ecoreports/internal/model"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func buildReportFilter(filter model.ReportFilter) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		conditions = append(conditions, "description ILIKE ?")
		args = append(args, "%"+likeEscaper.Replace(search)+"%")
	}
	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func orderClause(order model.ReportOrder) string {
	switch order {
	case model.OrderCreatedAtAsc:
		return "created_at ASC, id ASC"
	case model.OrderSeverityAsc:
		return "severity ASC, id ASC"
	case model.OrderSeverityDesc:
		return "severity DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}
