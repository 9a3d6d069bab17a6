package repository

import (
	"context"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
)

// CatalogItemRepository define el puerto de persistencia para CatalogItem.
type CatalogItemRepository interface {
	Create(ctx context.Context, item *entity.CatalogItem) error
	GetByID(ctx context.Context, userID, id string) (*entity.CatalogItem, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.CatalogItem, error)
	Update(ctx context.Context, item *entity.CatalogItem) error
	// DeductQuantity resta qty de la existencia en una sola sentencia, sin bajar de
	// cero, y devuelve el artículo ya actualizado. (nil, nil) si no existe.
	DeductQuantity(ctx context.Context, userID, id string, qty int) (*entity.CatalogItem, error)
	Delete(ctx context.Context, userID, id string) error
}
