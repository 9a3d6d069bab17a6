package dto

import "github.com/shopspring/decimal"

// CatalogItemRequest body para POST/PUT /api/items.
// TaxRatePercent nil = tasa por defecto de la categoría.
type CatalogItemRequest struct {
	ProductID         string           `json:"product_id,omitempty"`
	Name              string           `json:"name"`
	Description       string           `json:"description,omitempty"`
	UnitPrice         decimal.Decimal  `json:"unit_price"`
	CostPrice         decimal.Decimal  `json:"cost_price"`
	Unit              string           `json:"unit,omitempty"`
	Category          string           `json:"category,omitempty"`
	TaxRatePercent    *decimal.Decimal `json:"tax_rate_percent,omitempty"`
	QuantityOnHand    int              `json:"quantity_on_hand"`
	LowStockThreshold int              `json:"low_stock_threshold"`
}

// RestockRequest body para PUT /api/items/:id/stock. Quantity es absoluta.
// UnitCost opcional: si entra mercancía, recalcula el costo promedio ponderado.
type RestockRequest struct {
	Quantity int              `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
}

// CatalogItemResponse artículo en respuestas.
type CatalogItemResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id,omitempty"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	Unit              string          `json:"unit,omitempty"`
	Category          string          `json:"category,omitempty"`
	TaxRatePercent    decimal.Decimal `json:"tax_rate_percent"`
	QuantityOnHand    int             `json:"quantity_on_hand"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	LowStock          bool            `json:"low_stock"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}
