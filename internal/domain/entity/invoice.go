package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party es la instantánea desnormalizada de emisor o receptor guardada dentro de la factura.
// Editar el Client después no modifica facturas ya emitidas.
type Party struct {
	Name    string
	Email   string
	Address string
	Phone   string
}

// LineItem representa una línea facturable. Pertenece a una sola factura.
type LineItem struct {
	ID             string
	CatalogItemID  string // vacío = línea de texto libre (sin inventario)
	Description    string
	Quantity       int
	UnitPrice      decimal.Decimal
	TaxRatePercent decimal.Decimal // 0–100; 0 = sin tasa propia
	CostPrice      decimal.Decimal // costo interno, no se muestra al comprador
}

// Amount devuelve quantity × unitPrice (antes de impuestos).
func (l LineItem) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Invoice representa una factura de un usuario (tenant).
// Inmutable después de creada salvo Status, PaymentDate y UpdatedAt.
type Invoice struct {
	ID             string
	UserID         string
	InvoiceNumber  string // "INV-NNN", único por usuario
	IssueDate      time.Time
	DueDate        *time.Time
	Status         Status // estado almacenado; ver lifecycle.EffectiveStatus para el efectivo
	BilledTo       Party
	BilledFrom     Party
	LineItems      []LineItem
	FlatTaxPercent decimal.Decimal // modelo legado a nivel factura
	Currency       string
	Notes          string
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	PaymentDate    *time.Time // solo cuando Status = paid
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
