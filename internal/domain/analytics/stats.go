// Package analytics agrega las facturas de un usuario para el tablero:
// totales por estado efectivo, tendencias mes contra mes, distribución y serie de ingresos.
// Todo es de solo lectura; nada aquí modifica facturas.
package analytics

import (
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/lifecycle"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// Trends variación porcentual de cada métrica entre el mes actual y el anterior.
// nil significa "sin línea base" (el mes anterior fue cero), distinto de 0%.
type Trends struct {
	TotalEarnings     *int64
	PendingAmount     *int64
	OverdueAmount     *int64
	PaidInvoicesCount *int64
}

// Distribution totales por categoría para gráficos de proporción.
type Distribution struct {
	Paid    decimal.Decimal
	Pending decimal.Decimal
	Overdue decimal.Decimal
}

// Stats resumen del tablero.
type Stats struct {
	TotalEarnings     decimal.Decimal
	PendingAmount     decimal.Decimal
	OverdueAmount     decimal.Decimal
	PaidInvoicesCount int
	TotalInvoices     int
	Trends            Trends
	Distribution      Distribution
}

type totals struct {
	earnings  decimal.Decimal
	pending   decimal.Decimal
	overdue   decimal.Decimal
	paidCount int
}

func (t *totals) add(inv *entity.Invoice, now time.Time) {
	switch st := lifecycle.EffectiveStatus(inv, now); {
	case st == entity.StatusPaid:
		t.earnings = t.earnings.Add(inv.Total)
		t.paidCount++
	case st == entity.StatusOverdue:
		t.overdue = t.overdue.Add(inv.Total)
	case lifecycle.IsPending(st):
		t.pending = t.pending.Add(inv.Total)
	}
}

// ComputeStats calcula las estadísticas del tablero en el instante now.
// El estado de cada factura se clasifica con lifecycle.EffectiveStatus, igual que en el listado.
func ComputeStats(invs []*entity.Invoice, now time.Time) Stats {
	var all, cur, prev totals

	curYear, curMonth, _ := now.Date()
	prevYear, prevMonth := curYear, curMonth-1
	if curMonth == time.January {
		prevYear, prevMonth = curYear-1, time.December
	}

	for _, inv := range invs {
		all.add(inv, now)
		y, m, _ := inv.IssueDate.In(now.Location()).Date()
		switch {
		case y == curYear && m == curMonth:
			cur.add(inv, now)
		case y == prevYear && m == prevMonth:
			prev.add(inv, now)
		}
	}

	return Stats{
		TotalEarnings:     all.earnings,
		PendingAmount:     all.pending,
		OverdueAmount:     all.overdue,
		PaidInvoicesCount: all.paidCount,
		TotalInvoices:     len(invs),
		Trends: Trends{
			TotalEarnings:     Trend(cur.earnings, prev.earnings),
			PendingAmount:     Trend(cur.pending, prev.pending),
			OverdueAmount:     Trend(cur.overdue, prev.overdue),
			PaidInvoicesCount: Trend(decimal.NewFromInt(int64(cur.paidCount)), decimal.NewFromInt(int64(prev.paidCount))),
		},
		Distribution: Distribution{
			Paid:    all.earnings,
			Pending: all.pending,
			Overdue: all.overdue,
		},
	}
}

// Trend devuelve round(((current - previous) / previous) × 100), o nil si previous es cero.
// El redondeo es hacia +∞ en los medios (-2.5 → -2, 2.5 → 3).
func Trend(current, previous decimal.Decimal) *int64 {
	if previous.IsZero() {
		return nil
	}
	pct := current.Sub(previous).Div(previous).Mul(hundred)
	v := pct.Add(half).Floor().IntPart()
	return &v
}
