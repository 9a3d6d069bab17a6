package analytics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/analytics"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(bs []analytics.Bucket) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Label
	}
	return out
}

func TestRevenueSeries_Weekly(t *testing.T) {
	// 2025-03-15 es sábado
	now := day(2025, time.March, 15)
	invs := []*entity.Invoice{
		inv(entity.StatusPaid, "100", day(2025, time.March, 15), nil),
		inv(entity.StatusSent, "40", day(2025, time.March, 9), nil),
		inv(entity.StatusDraft, "999", day(2025, time.March, 15), nil),
		inv(entity.StatusPaid, "7", day(2025, time.March, 8), nil), // fuera de la ventana
	}

	bs, err := analytics.RevenueSeries(invs, analytics.PeriodWeekly, now)
	require.NoError(t, err)

	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, labels(bs))
	assert.True(t, d("40").Equal(bs[0].Revenue))
	assert.True(t, d("100").Equal(bs[6].Revenue))
	for _, b := range bs[1:6] {
		assert.True(t, b.Revenue.IsZero())
	}
}

func TestRevenueSeries_Month(t *testing.T) {
	now := day(2024, time.February, 10)
	invs := []*entity.Invoice{
		inv(entity.StatusPaid, "10", day(2024, time.February, 1), nil),
		inv(entity.StatusPaid, "5", day(2024, time.February, 29), nil),
		inv(entity.StatusPaid, "3", day(2024, time.January, 29), nil),
	}

	bs, err := analytics.RevenueSeries(invs, analytics.PeriodMonth, now)
	require.NoError(t, err)

	require.Len(t, bs, 29)
	assert.Equal(t, "1", bs[0].Label)
	assert.Equal(t, "29", bs[28].Label)
	assert.True(t, d("10").Equal(bs[0].Revenue))
	assert.True(t, d("5").Equal(bs[28].Revenue))
}

func TestRevenueSeries_Monthly(t *testing.T) {
	now := day(2025, time.June, 1)
	past := day(2025, time.May, 1)
	invs := []*entity.Invoice{
		inv(entity.StatusPaid, "10", day(2025, time.January, 3), nil),
		inv(entity.StatusSent, "20", day(2025, time.January, 20), &past), // vencida, cuenta
		inv(entity.StatusPaid, "30", day(2025, time.December, 31), nil),
		inv(entity.StatusPaid, "40", day(2024, time.December, 31), nil),
	}

	bs, err := analytics.RevenueSeries(invs, analytics.PeriodMonthly, now)
	require.NoError(t, err)

	require.Len(t, bs, 12)
	assert.Equal(t, "Jan", bs[0].Label)
	assert.Equal(t, "Dec", bs[11].Label)
	assert.True(t, d("30").Equal(bs[0].Revenue))
	assert.True(t, d("30").Equal(bs[11].Revenue))
}

func TestRevenueSeries_PeriodoDesconocido(t *testing.T) {
	_, err := analytics.RevenueSeries(nil, analytics.Period("yearly"), day(2025, time.June, 1))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = analytics.ParsePeriod("daily")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	p, err := analytics.ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, analytics.PeriodWeekly, p)
}
