package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Tasas por defecto según la categoría del catálogo (GST India: 0, 5, 12, 18, 28).
// Se usan al crear un artículo sin tasa explícita.
var categoryTaxRates = map[string]int64{
	"vegetables":            5,
	"fruits":                5,
	"groceries":             5,
	"dairy":                 5,
	"clothing":              12,
	"stationery":            12,
	"services":              18,
	"electronics":           18,
	"electrical appliances": 18,
	"furniture":             18,
	"software":              18,
	"automobiles":           28,
	"tobacco":               28,
}

// DefaultTaxRateForCategory devuelve la tasa por defecto de la categoría, o cero si no se conoce.
func DefaultTaxRateForCategory(category string) decimal.Decimal {
	rate, ok := categoryTaxRates[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromInt(rate)
}
