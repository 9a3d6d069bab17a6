package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/Facturas-api/internal/application/dto"
	"github.com/jhoicas/Facturas-api/internal/application/inventory"
	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCreate_TasaPorCategoria(t *testing.T) {
	items := newFakeItems()
	audit := &fakeAudit{}
	uc := inventory.NewCatalogUseCase(items, audit)

	out, err := uc.Create(context.Background(), "u1", dto.CatalogItemRequest{
		Name:      "Tomate",
		Category:  "Vegetables",
		UnitPrice: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(out.TaxRatePercent))
	assert.Len(t, audit.actions(entity.AuditActionCreate), 1)

	explicit := decimal.NewFromInt(12)
	out, err = uc.Create(context.Background(), "u1", dto.CatalogItemRequest{
		Name: "Nevera", Category: "Electrical Appliances", TaxRatePercent: &explicit,
	})
	require.NoError(t, err)
	assert.True(t, explicit.Equal(out.TaxRatePercent))
}

func TestCatalogCreate_Validacion(t *testing.T) {
	uc := inventory.NewCatalogUseCase(newFakeItems(), &fakeAudit{})
	bad := decimal.NewFromInt(150)

	cases := []dto.CatalogItemRequest{
		{Name: ""},
		{Name: "x", UnitPrice: decimal.NewFromInt(-1)},
		{Name: "x", QuantityOnHand: -1},
		{Name: "x", TaxRatePercent: &bad},
	}
	for _, in := range cases {
		_, err := uc.Create(context.Background(), "u1", in)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	}
}

func TestCatalogRestock_CostoPromedio(t *testing.T) {
	items := newFakeItems(&entity.CatalogItem{
		ID: "a", UserID: "u1", Name: "Cable", QuantityOnHand: 10, CostPrice: decimal.NewFromInt(100),
	})
	audit := &fakeAudit{}
	uc := inventory.NewCatalogUseCase(items, audit)
	cost := decimal.NewFromInt(200)

	out, err := uc.Restock(context.Background(), "u1", "a", dto.RestockRequest{Quantity: 20, UnitCost: &cost})
	require.NoError(t, err)

	assert.Equal(t, 20, out.QuantityOnHand)
	assert.True(t, decimal.NewFromInt(150).Equal(out.CostPrice))
	assert.Len(t, audit.actions(entity.AuditActionRestock), 1)
}

func TestCatalogRestock_Errores(t *testing.T) {
	uc := inventory.NewCatalogUseCase(newFakeItems(), &fakeAudit{})

	_, err := uc.Restock(context.Background(), "u1", "a", dto.RestockRequest{Quantity: -1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Restock(context.Background(), "u1", "no-existe", dto.RestockRequest{Quantity: 1})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCatalogList_StockBajo(t *testing.T) {
	items := newFakeItems(
		&entity.CatalogItem{ID: "a", UserID: "u1", Name: "b-item", QuantityOnHand: 2, LowStockThreshold: 5},
		&entity.CatalogItem{ID: "b", UserID: "u1", Name: "A-item", QuantityOnHand: 50, LowStockThreshold: 5},
		&entity.CatalogItem{ID: "c", UserID: "u2", Name: "ajeno", QuantityOnHand: 0, LowStockThreshold: 5},
	)
	uc := inventory.NewCatalogUseCase(items, &fakeAudit{})

	all, err := uc.List(context.Background(), "u1", false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A-item", all[0].Name)

	low, err := uc.List(context.Background(), "u1", true)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.True(t, low[0].LowStock)

	n, err := uc.CountLowStock(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCatalogDelete_OtroUsuario(t *testing.T) {
	items := newFakeItems(&entity.CatalogItem{ID: "a", UserID: "u2"})
	uc := inventory.NewCatalogUseCase(items, &fakeAudit{})

	err := uc.Delete(context.Background(), "u1", "a")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
