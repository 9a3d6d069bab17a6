package analytics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/lifecycle"
	"github.com/shopspring/decimal"
)

// Period agrupación de la serie de ingresos.
type Period string

const (
	PeriodWeekly  Period = "weekly"  // últimos 7 días, etiquetas Sun..Sat
	PeriodMonth   Period = "month"   // días del mes en curso, etiquetas 1..N
	PeriodMonthly Period = "monthly" // meses del año en curso, etiquetas Jan..Dec
)

// ParsePeriod valida el período recibido; vacío equivale a weekly.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodWeekly, nil
	case PeriodWeekly, PeriodMonth, PeriodMonthly:
		return Period(s), nil
	}
	return "", fmt.Errorf("%w: período desconocido %q", domain.ErrInvalidInput, s)
}

// Bucket un punto de la serie.
type Bucket struct {
	Label   string
	Revenue decimal.Decimal
}

// CountsAsRevenue indica si la factura suma en la serie de ingresos.
// Se excluyen los borradores: solo facturas enviadas, vencidas o pagadas representan ingreso facturado.
func CountsAsRevenue(inv *entity.Invoice, now time.Time) bool {
	return lifecycle.EffectiveStatus(inv, now) != entity.StatusDraft
}

// RevenueSeries agrupa el total de las facturas por fecha de emisión según period.
// Los días y meses se evalúan en la zona horaria de now.
func RevenueSeries(invs []*entity.Invoice, period Period, now time.Time) ([]Bucket, error) {
	loc := now.Location()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	var (
		buckets []Bucket
		index   func(issue time.Time) int
	)

	switch period {
	case PeriodWeekly:
		first := today.AddDate(0, 0, -6)
		buckets = make([]Bucket, 7)
		for i := range buckets {
			buckets[i].Label = first.AddDate(0, 0, i).Weekday().String()[:3]
		}
		index = func(issue time.Time) int {
			iy, im, id := issue.Date()
			day := time.Date(iy, im, id, 0, 0, 0, 0, loc)
			for i := 0; i < 7; i++ {
				if first.AddDate(0, 0, i).Equal(day) {
					return i
				}
			}
			return -1
		}
	case PeriodMonth:
		days := time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
		buckets = make([]Bucket, days)
		for i := range buckets {
			buckets[i].Label = strconv.Itoa(i + 1)
		}
		index = func(issue time.Time) int {
			iy, im, id := issue.Date()
			if iy != y || im != m {
				return -1
			}
			return id - 1
		}
	case PeriodMonthly:
		buckets = make([]Bucket, 12)
		for i := range buckets {
			buckets[i].Label = time.Month(i + 1).String()[:3]
		}
		index = func(issue time.Time) int {
			iy, im, _ := issue.Date()
			if iy != y {
				return -1
			}
			return int(im) - 1
		}
	default:
		return nil, fmt.Errorf("%w: período desconocido %q", domain.ErrInvalidInput, period)
	}

	for _, inv := range invs {
		if !CountsAsRevenue(inv, now) {
			continue
		}
		if i := index(inv.IssueDate.In(loc)); i >= 0 {
			buckets[i].Revenue = buckets[i].Revenue.Add(inv.Total)
		}
	}
	return buckets, nil
}
