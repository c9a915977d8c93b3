package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReportQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q := ParseReportQuery("", "", "", "")
		assert.Nil(t, q.Status)
		assert.Equal(t, "", q.Search)
		assert.Equal(t, OrderCreatedAtDesc, q.OrderBy)
		assert.Equal(t, 1, q.Page)
	})

	t.Run("recognized values", func(t *testing.T) {
		q := ParseReportQuery("solved", "  bottles ", "-severity", "3")
		require.NotNil(t, q.Status)
		assert.Equal(t, ReportStatusSolved, *q.Status)
		assert.Equal(t, "bottles", q.Search)
		assert.Equal(t, OrderSeverityDesc, q.OrderBy)
		assert.Equal(t, 3, q.Page)
	})

	t.Run("unrecognized values fall back to defaults", func(t *testing.T) {
		q := ParseReportQuery("archived", "", "name", "abc")
		assert.Nil(t, q.Status)
		assert.Equal(t, OrderCreatedAtDesc, q.OrderBy)
		assert.Equal(t, 1, q.Page)
	})

	t.Run("padded status filter is trimmed", func(t *testing.T) {
		q := ParseReportQuery(" verified ", "", "", "")
		require.NotNil(t, q.Status)
		assert.Equal(t, ReportStatusVerified, *q.Status)
	})

	t.Run("overflowing page clamps to the last page", func(t *testing.T) {
		q := ParseReportQuery("", "", "", "99999999999999999999")
		assert.Equal(t, math.MaxInt, q.Page)

		number, numPages, offset := Paginate(q.Page, 25, ReportPageSize)
		assert.Equal(t, 3, number)
		assert.Equal(t, 3, numPages)
		assert.Equal(t, 20, offset)

		q = ParseReportQuery("", "", "", "-99999999999999999999")
		assert.Equal(t, 1, q.Page)
	})
}

func TestParseReportOrder(t *testing.T) {
	cases := map[string]ReportOrder{
		"created_at":      OrderCreatedAtAsc,
		"-created_at":     OrderCreatedAtDesc,
		"severity":        OrderSeverityAsc,
		"-severity":       OrderSeverityDesc,
		"severity_asc":    OrderSeverityAsc,
		"created_at_desc": OrderCreatedAtDesc,
		"":                OrderCreatedAtDesc,
		"random":          OrderCreatedAtDesc,
	}
	for raw, expected := range cases {
		assert.Equal(t, expected, ParseReportOrder(raw), raw)
	}
}

func TestParseReportStatus(t *testing.T) {
	for _, status := range ReportStatuses {
		parsed, ok := ParseReportStatus(string(status))
		assert.True(t, ok)
		assert.Equal(t, status, parsed)
	}

	_, ok := ParseReportStatus("bogus")
	assert.False(t, ok)
	_, ok = ParseReportStatus("SOLVED")
	assert.False(t, ok)
	_, ok = ParseReportStatus(" solved\n")
	assert.False(t, ok)
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, "Low", SeverityLow.Display())
	assert.Equal(t, "", Severity(5).Display())
	assert.Equal(t, "Critical", SeverityCritical.Display())
}
