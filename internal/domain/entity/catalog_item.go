package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItem representa un artículo del catálogo del usuario.
// QuantityOnHand baja al crear facturas que lo referencian y se fija en absoluto al reabastecer.
type CatalogItem struct {
	ID                string
	UserID            string
	ProductID         string // código propio del usuario (SKU)
	Name              string
	Description       string
	UnitPrice         decimal.Decimal // precio de venta
	CostPrice         decimal.Decimal // costo, para margen
	Unit              string
	Category          string
	TaxRatePercent    decimal.Decimal // 0–100
	QuantityOnHand    int
	LowStockThreshold int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
