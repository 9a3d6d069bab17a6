// Package analytics contiene los casos de uso del tablero: estadísticas,
// serie de ingresos y resumen combinado, con caché acotada en el tiempo.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jhoicas/Facturas-api/internal/application/dto"
	"github.com/jhoicas/Facturas-api/internal/domain/analytics"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
)

// LowStockCounter cuenta artículos en o bajo su umbral (implementado por inventory.CatalogUseCase).
type LowStockCounter interface {
	CountLowStock(ctx context.Context, userID string) (int, error)
}

// DashboardUseCase agrega la colección de facturas del usuario.
//
// Los resultados se guardan en un LRU con expiración: la obsolescencia máxima es el TTL,
// y cualquier mutación de facturas del usuario invalida sus entradas de inmediato.
type DashboardUseCase struct {
	invoices repository.InvoiceRepository
	lowStock LowStockCounter
	cache    *expirable.LRU[string, any]
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso. size <= 0 o ttl <= 0 desactivan la caché.
func NewDashboardUseCase(invoices repository.InvoiceRepository, lowStock LowStockCounter, size int, ttl time.Duration) *DashboardUseCase {
	uc := &DashboardUseCase{invoices: invoices, lowStock: lowStock, now: time.Now}
	if size > 0 && ttl > 0 {
		uc.cache = expirable.NewLRU[string, any](size, nil, ttl)
	}
	return uc
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

func cacheKey(userID, kind, period string) string {
	return userID + "|" + kind + "|" + period
}

// InvalidateUser descarta todas las entradas en caché del usuario.
func (uc *DashboardUseCase) InvalidateUser(userID string) {
	if uc.cache == nil {
		return
	}
	prefix := userID + "|"
	for _, k := range uc.cache.Keys() {
		if strings.HasPrefix(k, prefix) {
			uc.cache.Remove(k)
		}
	}
}

// GetStats devuelve las estadísticas del tablero.
func (uc *DashboardUseCase) GetStats(ctx context.Context, userID string) (*dto.StatsResponse, error) {
	key := cacheKey(userID, "stats", "")
	if v, ok := uc.cached(key); ok {
		return v.(*dto.StatsResponse), nil
	}
	invs, err := uc.invoices.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("analytics: listar facturas: %w", err)
	}
	out := toStatsResponse(analytics.ComputeStats(invs, uc.now()))
	uc.store(key, out)
	return out, nil
}

// GetRevenue devuelve la serie de ingresos del período (weekly, month, monthly).
func (uc *DashboardUseCase) GetRevenue(ctx context.Context, userID, period string) (*dto.RevenueResponse, error) {
	p, err := analytics.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	key := cacheKey(userID, "revenue", string(p))
	if v, ok := uc.cached(key); ok {
		return v.(*dto.RevenueResponse), nil
	}
	invs, err := uc.invoices.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("analytics: listar facturas: %w", err)
	}
	out, err := revenue(invs, p, uc.now())
	if err != nil {
		return nil, err
	}
	uc.store(key, out)
	return out, nil
}

// GetSummary construye el resumen combinado del tablero.
//
// Dos lecturas en paralelo:
//  1. Facturas del usuario → estadísticas + serie
//  2. Artículos con stock bajo
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID, period string) (*dto.DashboardSummaryDTO, error) {
	p, err := analytics.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	now := uc.now()

	type invoicesResult struct {
		invs []*entity.Invoice
		err  error
	}
	type lowStockResult struct {
		n   int
		err error
	}

	invCh := make(chan invoicesResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		invs, err := uc.invoices.ListByUser(ctx, userID)
		invCh <- invoicesResult{invs, err}
	}()
	go func() {
		n, err := uc.lowStock.CountLowStock(ctx, userID)
		lowCh <- lowStockResult{n, err}
	}()

	inv := <-invCh
	low := <-lowCh

	if inv.err != nil {
		return nil, fmt.Errorf("dashboard: facturas: %w", inv.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	rev, err := revenue(inv.invs, p, now)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardSummaryDTO{
		Stats:         *toStatsResponse(analytics.ComputeStats(inv.invs, now)),
		Revenue:       *rev,
		LowStockItems: low.n,
		DateLabel:     monthLabel(now),
	}, nil
}

func (uc *DashboardUseCase) cached(key string) (any, bool) {
	if uc.cache == nil {
		return nil, false
	}
	return uc.cache.Get(key)
}

func (uc *DashboardUseCase) store(key string, v any) {
	if uc.cache != nil {
		uc.cache.Add(key, v)
	}
}

func revenue(invs []*entity.Invoice, p analytics.Period, now time.Time) (*dto.RevenueResponse, error) {
	buckets, err := analytics.RevenueSeries(invs, p, now)
	if err != nil {
		return nil, err
	}
	out := &dto.RevenueResponse{Period: string(p), Data: make([]dto.RevenuePointDTO, 0, len(buckets))}
	for _, b := range buckets {
		out.Data = append(out.Data, dto.RevenuePointDTO{Name: b.Label, Revenue: b.Revenue})
	}
	return out, nil
}

func toStatsResponse(s analytics.Stats) *dto.StatsResponse {
	return &dto.StatsResponse{
		TotalEarnings:     s.TotalEarnings,
		PendingAmount:     s.PendingAmount,
		OverdueAmount:     s.OverdueAmount,
		PaidInvoicesCount: s.PaidInvoicesCount,
		TotalInvoices:     s.TotalInvoices,
		Trends: dto.TrendsDTO{
			TotalEarnings:     s.Trends.TotalEarnings,
			PendingAmount:     s.Trends.PendingAmount,
			OverdueAmount:     s.Trends.OverdueAmount,
			PaidInvoicesCount: s.Trends.PaidInvoicesCount,
		},
		Distribution: []dto.DistributionSliceDTO{
			{Name: "Paid", Value: s.Distribution.Paid},
			{Name: "Pending", Value: s.Distribution.Pending},
			{Name: "Overdue", Value: s.Distribution.Overdue},
		},
	}
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Marzo 2025".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
