package money_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(qty int, price, rate string) entity.LineItem {
	return entity.LineItem{Description: "x", Quantity: qty, UnitPrice: dec(price), TaxRatePercent: dec(rate)}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		lines        []entity.LineItem
		flat         string
		wantSubtotal string
		wantTax      string
		wantTotal    string
		wantModel    money.TaxModel
	}{
		{
			name:         "sin líneas",
			lines:        nil,
			flat:         "18",
			wantSubtotal: "0",
			wantTax:      "0",
			wantTotal:    "0",
			wantModel:    money.TaxModelFlat,
		},
		{
			name:         "modelo por línea 18% y 5%",
			lines:        []entity.LineItem{line(2, "100", "18"), line(1, "50", "5")},
			flat:         "0",
			wantSubtotal: "250",
			wantTax:      "38.5",
			wantTotal:    "288.5",
			wantModel:    money.TaxModelPerLine,
		},
		{
			name:         "modelo plano 18%",
			lines:        []entity.LineItem{line(10, "100", "0")},
			flat:         "18",
			wantSubtotal: "1000",
			wantTax:      "180",
			wantTotal:    "1180",
			wantModel:    money.TaxModelFlat,
		},
		{
			name:         "por línea gana sobre el plano",
			lines:        []entity.LineItem{line(1, "100", "5"), line(1, "100", "0")},
			flat:         "18",
			wantSubtotal: "200",
			wantTax:      "5",
			wantTotal:    "205",
			wantModel:    money.TaxModelPerLine,
		},
		{
			name:         "sin redondeo intermedio",
			lines:        []entity.LineItem{line(3, "0.333", "18"), line(7, "1.111", "18")},
			flat:         "0",
			wantSubtotal: "8.776",
			wantTax:      "1.57968",
			wantTotal:    "10.35568",
			wantModel:    money.TaxModelPerLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.ComputeTotals(tt.lines, dec(tt.flat))
			assert.True(t, dec(tt.wantSubtotal).Equal(got.Subtotal), "subtotal: %s", got.Subtotal)
			assert.True(t, dec(tt.wantTax).Equal(got.TaxAmount), "tax: %s", got.TaxAmount)
			assert.True(t, dec(tt.wantTotal).Equal(got.Total), "total: %s", got.Total)
			assert.Equal(t, tt.wantModel, got.Model)
		})
	}
}

// El subtotal es Σ quantity × unitPrice sin importar el modelo de impuesto.
func TestComputeTotals_SubtotalIndependienteDelModelo(t *testing.T) {
	lines := []entity.LineItem{line(4, "12.5", "0"), line(2, "7.25", "0")}
	flat := money.ComputeTotals(lines, dec("10"))

	lines[0].TaxRatePercent = dec("28")
	perLine := money.ComputeTotals(lines, dec("10"))

	assert.True(t, dec("64.5").Equal(flat.Subtotal))
	assert.True(t, flat.Subtotal.Equal(perLine.Subtotal))
	assert.True(t, dec("70.95").Equal(flat.Total))
	// 50 × 1.28 + 14.5
	assert.True(t, dec("78.5").Equal(perLine.Total))
}

func TestValidateLines(t *testing.T) {
	tests := []struct {
		name    string
		lines   []entity.LineItem
		wantErr bool
	}{
		{"válidas", []entity.LineItem{line(1, "10", "5")}, false},
		{"cantidad cero", []entity.LineItem{line(0, "10", "5")}, true},
		{"cantidad negativa", []entity.LineItem{line(-2, "10", "5")}, true},
		{"precio negativo", []entity.LineItem{line(1, "-1", "5")}, true},
		{"tasa mayor a 100", []entity.LineItem{line(1, "10", "101")}, true},
		{"tasa negativa", []entity.LineItem{line(1, "10", "-5")}, true},
		{"sin descripción ni catálogo", []entity.LineItem{{Quantity: 1, UnitPrice: dec("1")}}, true},
		{"id repetido", []entity.LineItem{
			{ID: "a", Description: "x", Quantity: 1, UnitPrice: dec("1")},
			{ID: "a", Description: "y", Quantity: 1, UnitPrice: dec("1")},
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := money.ValidateLines(tt.lines)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidInput))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDefaultTaxRateForCategory(t *testing.T) {
	assert.True(t, dec("5").Equal(money.DefaultTaxRateForCategory("Vegetables")))
	assert.True(t, dec("18").Equal(money.DefaultTaxRateForCategory("  Electrical Appliances ")))
	assert.True(t, money.DefaultTaxRateForCategory("desconocida").IsZero())
}

func TestFormat(t *testing.T) {
	out := money.Format(dec("1234.5"), "USD", "en-US")
	assert.Contains(t, out, "1,234.50")

	// Moneda inválida: se degrada a número fijo + código
	assert.Equal(t, "10.00 XX", money.Format(dec("10"), "XX", "en"))
}
