// Package money contiene el cálculo de totales e impuestos de una factura (servicio de dominio puro).
//
// Conviven dos modelos de impuesto:
//   - Plano: un único porcentaje sobre el subtotal (facturas legadas / modo simple).
//   - Por línea: cada línea aplica su propia tasa a quantity × unitPrice.
//
// El modelo por línea tiene prioridad en cuanto alguna línea define una tasa distinta de cero.
// Todo el cálculo es decimal exacto; el redondeo a 2 decimales ocurre solo al presentar.
package money

import (
	"fmt"

	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// TaxModel identifica el modelo de impuesto aplicado.
type TaxModel string

const (
	TaxModelFlat    TaxModel = "flat"
	TaxModelPerLine TaxModel = "per_line"
)

var (
	hundred    = decimal.NewFromInt(100)
	maxPercent = decimal.NewFromInt(100)
)

// Totals resultado del cálculo.
type Totals struct {
	Subtotal  decimal.Decimal // Σ quantity × unitPrice, siempre antes de impuestos
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
	Model     TaxModel
}

// ComputeTotals calcula subtotal, impuesto y total de un conjunto de líneas.
// Cero líneas produce todo en cero (borrador vacío válido).
func ComputeTotals(lines []entity.LineItem, flatTaxPercent decimal.Decimal) Totals {
	var subtotal, lineTax decimal.Decimal
	perLine := false
	for _, l := range lines {
		amount := l.Amount()
		subtotal = subtotal.Add(amount)
		if !l.TaxRatePercent.IsZero() {
			perLine = true
			lineTax = lineTax.Add(amount.Mul(l.TaxRatePercent).Div(hundred))
		}
	}

	if perLine {
		return Totals{
			Subtotal:  subtotal,
			TaxAmount: lineTax,
			Total:     subtotal.Add(lineTax),
			Model:     TaxModelPerLine,
		}
	}

	tax := subtotal.Mul(flatTaxPercent).Div(hundred)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
		Model:     TaxModelFlat,
	}
}

// ValidateLines valida las líneas en el borde de entrada, antes de llegar al calculador.
// Rechaza cantidades no positivas, precios negativos, tasas fuera de 0–100 y líneas sin descripción.
func ValidateLines(lines []entity.LineItem) error {
	seen := make(map[string]struct{}, len(lines))
	for i, l := range lines {
		if l.Quantity <= 0 {
			return fmt.Errorf("%w: línea %d: la cantidad debe ser positiva", domain.ErrInvalidInput, i+1)
		}
		if l.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: línea %d: precio unitario negativo", domain.ErrInvalidInput, i+1)
		}
		if l.CostPrice.IsNegative() {
			return fmt.Errorf("%w: línea %d: costo negativo", domain.ErrInvalidInput, i+1)
		}
		if err := ValidatePercent(l.TaxRatePercent); err != nil {
			return fmt.Errorf("línea %d: %w", i+1, err)
		}
		if l.Description == "" && l.CatalogItemID == "" {
			return fmt.Errorf("%w: línea %d: descripción requerida", domain.ErrInvalidInput, i+1)
		}
		if l.ID != "" {
			if _, dup := seen[l.ID]; dup {
				return fmt.Errorf("%w: línea %d: id de línea repetido", domain.ErrInvalidInput, i+1)
			}
			seen[l.ID] = struct{}{}
		}
	}
	return nil
}

// ValidatePercent verifica que p esté en el rango 0–100.
func ValidatePercent(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(maxPercent) {
		return fmt.Errorf("%w: porcentaje fuera de rango 0–100: %s", domain.ErrInvalidInput, p.String())
	}
	return nil
}
