package analytics_test

import (
	"testing"
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain/analytics"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func inv(status entity.Status, total string, issue time.Time, due *time.Time) *entity.Invoice {
	return &entity.Invoice{Status: status, Total: d(total), IssueDate: issue, DueDate: due}
}

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 10, 0, 0, 0, time.UTC) }

func TestComputeStats_TotalesPorEstadoEfectivo(t *testing.T) {
	now := day(2025, time.March, 15)
	yesterday := now.AddDate(0, 0, -1)
	invs := []*entity.Invoice{
		inv(entity.StatusPaid, "100", day(2025, time.March, 1), &yesterday),
		inv(entity.StatusSent, "50", day(2025, time.March, 2), &yesterday), // vencida derivada
		inv(entity.StatusSent, "30", day(2025, time.March, 3), nil),
		inv(entity.StatusDraft, "20", day(2025, time.March, 4), nil),
		inv(entity.StatusOverdue, "10", day(2025, time.February, 4), nil),
	}

	s := analytics.ComputeStats(invs, now)

	assert.True(t, d("100").Equal(s.TotalEarnings))
	assert.True(t, d("50").Equal(s.PendingAmount))
	assert.True(t, d("60").Equal(s.OverdueAmount))
	assert.Equal(t, 1, s.PaidInvoicesCount)
	assert.Equal(t, 5, s.TotalInvoices)
	assert.True(t, s.Distribution.Paid.Equal(s.TotalEarnings))
	assert.True(t, s.Distribution.Pending.Equal(s.PendingAmount))
	assert.True(t, s.Distribution.Overdue.Equal(s.OverdueAmount))
}

func TestComputeStats_Tendencias(t *testing.T) {
	now := day(2025, time.March, 20)
	invs := []*entity.Invoice{
		inv(entity.StatusPaid, "150", day(2025, time.March, 1), nil),
		inv(entity.StatusPaid, "100", day(2025, time.February, 1), nil),
		inv(entity.StatusSent, "10", day(2025, time.March, 5), nil),
	}

	s := analytics.ComputeStats(invs, now)

	require.NotNil(t, s.Trends.TotalEarnings)
	assert.Equal(t, int64(50), *s.Trends.TotalEarnings)
	require.NotNil(t, s.Trends.PaidInvoicesCount)
	assert.Equal(t, int64(0), *s.Trends.PaidInvoicesCount)
	assert.Nil(t, s.Trends.PendingAmount, "sin línea base")
	assert.Nil(t, s.Trends.OverdueAmount)
}

func TestComputeStats_EneroComparaConDiciembre(t *testing.T) {
	now := day(2025, time.January, 10)
	invs := []*entity.Invoice{
		inv(entity.StatusPaid, "300", day(2025, time.January, 2), nil),
		inv(entity.StatusPaid, "200", day(2024, time.December, 28), nil),
		inv(entity.StatusPaid, "999", day(2024, time.January, 5), nil),
	}

	s := analytics.ComputeStats(invs, now)

	require.NotNil(t, s.Trends.TotalEarnings)
	assert.Equal(t, int64(50), *s.Trends.TotalEarnings)
}

func TestComputeStats_SinFacturas(t *testing.T) {
	s := analytics.ComputeStats(nil, day(2025, time.May, 1))
	assert.True(t, s.TotalEarnings.IsZero())
	assert.Equal(t, 0, s.TotalInvoices)
	assert.Nil(t, s.Trends.TotalEarnings)
}

func TestTrend(t *testing.T) {
	tests := []struct {
		cur, prev string
		want      *int64
	}{
		{"10", "0", nil},
		{"0", "0", nil},
		{"150", "100", i64(50)},
		{"0", "100", i64(-100)},
		{"1", "3", i64(-67)},    // -66.67
		{"205", "200", i64(3)},  // 2.5 → 3
		{"195", "200", i64(-2)}, // -2.5 → -2
	}
	for _, tt := range tests {
		got := analytics.Trend(d(tt.cur), d(tt.prev))
		if tt.want == nil {
			assert.Nil(t, got, "%s/%s", tt.cur, tt.prev)
			continue
		}
		require.NotNil(t, got)
		assert.Equal(t, *tt.want, *got, "%s/%s", tt.cur, tt.prev)
	}
}

func i64(v int64) *int64 { return &v }
