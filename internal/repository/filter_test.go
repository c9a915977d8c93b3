package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nurpe/ecoreports/internal/model"
)

func TestBuildReportFilter(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		where, args := buildReportFilter(model.ReportFilter{})
		assert.Equal(t, "", where)
		assert.Empty(t, args)
	})

	t.Run("status and search", func(t *testing.T) {
		status := model.ReportStatusVerified
		where, args := buildReportFilter(model.ReportFilter{Status: &status, Search: " plastic "})
		assert.Equal(t, " WHERE status = ? AND description ILIKE ?", where)
		assert.Equal(t, []interface{}{"verified", "%plastic%"}, args)
	})

	t.Run("search escapes like wildcards", func(t *testing.T) {
		where, args := buildReportFilter(model.ReportFilter{Search: `50%_off\`})
		assert.Equal(t, " WHERE description ILIKE ?", where)
		assert.Equal(t, []interface{}{`%50\%\_off\\%`}, args)
	})
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "created_at DESC, id DESC", orderClause(model.OrderCreatedAtDesc))
	assert.Equal(t, "created_at ASC, id ASC", orderClause(model.OrderCreatedAtAsc))
	assert.Equal(t, "severity ASC, id ASC", orderClause(model.OrderSeverityAsc))
	assert.Equal(t, "severity DESC, id DESC", orderClause(model.OrderSeverityDesc))
	assert.Equal(t, "created_at DESC, id DESC", orderClause(""))
}
