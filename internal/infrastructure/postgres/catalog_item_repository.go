package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
)

var _ repository.CatalogItemRepository = (*CatalogItemRepo)(nil)

const catalogColumns = `id, user_id, product_id, name, description, unit_price, cost_price, unit, category,
	tax_rate_percent, quantity_on_hand, low_stock_threshold, created_at, updated_at`

// CatalogItemRepo implementación de CatalogItemRepository.
type CatalogItemRepo struct {
	q Querier
}

// NewCatalogItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogItemRepository(q Querier) *CatalogItemRepo {
	return &CatalogItemRepo{q: q}
}

// Create persiste un artículo.
func (r *CatalogItemRepo) Create(ctx context.Context, it *entity.CatalogItem) error {
	query := `INSERT INTO catalog_items (` + catalogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.UserID, nullIfEmpty(it.ProductID), it.Name, nullIfEmpty(it.Description),
		it.UnitPrice, it.CostPrice, nullIfEmpty(it.Unit), nullIfEmpty(it.Category),
		it.TaxRatePercent, it.QuantityOnHand, it.LowStockThreshold, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert catalog item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo del usuario.
func (r *CatalogItemRepo) GetByID(ctx context.Context, userID, id string) (*entity.CatalogItem, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_items WHERE user_id = $1 AND id = $2`
	it, err := scanCatalogItem(r.q.QueryRow(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog item: %w", err)
	}
	return it, nil
}

// ListByUser lista el catálogo del usuario ordenado por nombre.
func (r *CatalogItemRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CatalogItem, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_items WHERE user_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CatalogItem
	for rows.Next() {
		it, err := scanCatalogItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Update reemplaza los campos editables del artículo, incluida la existencia.
func (r *CatalogItemRepo) Update(ctx context.Context, it *entity.CatalogItem) error {
	query := `
		UPDATE catalog_items
		SET product_id = $3, name = $4, description = $5, unit_price = $6, cost_price = $7,
		    unit = $8, category = $9, tax_rate_percent = $10, quantity_on_hand = $11,
		    low_stock_threshold = $12, updated_at = $13
		WHERE user_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		it.UserID, it.ID, nullIfEmpty(it.ProductID), it.Name, nullIfEmpty(it.Description),
		it.UnitPrice, it.CostPrice, nullIfEmpty(it.Unit), nullIfEmpty(it.Category),
		it.TaxRatePercent, it.QuantityOnHand, it.LowStockThreshold, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update catalog item: %w", err)
	}
	return expectAffected(tag, "artículo")
}

// DeductQuantity descuenta de forma atómica; dos facturas simultáneas no pisan
// el descuento de la otra.
func (r *CatalogItemRepo) DeductQuantity(ctx context.Context, userID, id string, qty int) (*entity.CatalogItem, error) {
	query := `UPDATE catalog_items
		SET quantity_on_hand = GREATEST(quantity_on_hand - $3, 0), updated_at = NOW()
		WHERE user_id = $1 AND id = $2
		RETURNING ` + catalogColumns
	it, err := scanCatalogItem(r.q.QueryRow(ctx, query, userID, id, qty))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("deduct stock: %w", err)
	}
	return it, nil
}

// Delete elimina un artículo. Las líneas de factura guardan su propia copia.
func (r *CatalogItemRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM catalog_items WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete catalog item: %w", err)
	}
	return expectAffected(tag, "artículo")
}

func scanCatalogItem(row pgx.Row) (*entity.CatalogItem, error) {
	var it entity.CatalogItem
	var productID, description, unit, category *string
	err := row.Scan(
		&it.ID, &it.UserID, &productID, &it.Name, &description, &it.UnitPrice, &it.CostPrice,
		&unit, &category, &it.TaxRatePercent, &it.QuantityOnHand, &it.LowStockThreshold,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.ProductID = derefStr(productID)
	it.Description = derefStr(description)
	it.Unit = derefStr(unit)
	it.Category = derefStr(category)
	return &it, nil
}
