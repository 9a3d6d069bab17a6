// Package inventory contiene las reglas puras de existencias: umbral de stock bajo y costo promedio.
package inventory

import (
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// IsLowStock la alerta se dispara cuando la existencia es <= al umbral.
// El descuento en sí (nunca por debajo de cero) lo aplica el repositorio en una
// sola sentencia.
func IsLowStock(item *entity.CatalogItem) bool {
	return item.QuantityOnHand <= item.LowStockThreshold
}

// WeightedAverageCost implementa el costo promedio ponderado al reabastecer.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverageCost(stock, cost, incoming, incomingCost decimal.Decimal) decimal.Decimal {
	sum := stock.Add(incoming)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stock.Mul(cost).Add(incoming.Mul(incomingCost))
	return num.Div(sum)
}
