package dto

import "github.com/shopspring/decimal"

// TrendsDTO variación % mes contra mes; null = sin línea base.
type TrendsDTO struct {
	TotalEarnings     *int64 `json:"totalEarnings"`
	PendingAmount     *int64 `json:"pendingAmount"`
	OverdueAmount     *int64 `json:"overdueAmount"`
	PaidInvoicesCount *int64 `json:"paidInvoicesCount"`
}

// DistributionSliceDTO porción del gráfico de distribución.
type DistributionSliceDTO struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// StatsResponse respuesta de GET /api/analytics/stats.
type StatsResponse struct {
	TotalEarnings     decimal.Decimal        `json:"totalEarnings"`
	PendingAmount     decimal.Decimal        `json:"pendingAmount"`
	OverdueAmount     decimal.Decimal        `json:"overdueAmount"`
	PaidInvoicesCount int                    `json:"paidInvoicesCount"`
	TotalInvoices     int                    `json:"totalInvoices"`
	Trends            TrendsDTO              `json:"trends"`
	Distribution      []DistributionSliceDTO `json:"distribution"`
}

// RevenuePointDTO un punto de la serie.
type RevenuePointDTO struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RevenueResponse respuesta de GET /api/analytics/revenue.
type RevenueResponse struct {
	Period string            `json:"period"`
	Data   []RevenuePointDTO `json:"data"`
}

// DashboardSummaryDTO resumen combinado del tablero.
type DashboardSummaryDTO struct {
	Stats         StatsResponse   `json:"stats"`
	Revenue       RevenueResponse `json:"revenue"`
	LowStockItems int             `json:"lowStockItems"`
	DateLabel     string          `json:"dateLabel"`
}
