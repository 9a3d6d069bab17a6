package localstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
	"gorm.io/gorm"
)

var _ repository.CatalogItemRepository = (*CatalogItemRepo)(nil)

type CatalogItemRepo struct {
	db *gorm.DB
}

func NewCatalogItemRepository(db *gorm.DB) *CatalogItemRepo {
	return &CatalogItemRepo{db: db}
}

func (r *CatalogItemRepo) Create(ctx context.Context, it *entity.CatalogItem) error {
	if err := r.db.WithContext(ctx).Create(toCatalogItemModel(it)).Error; err != nil {
		return fmt.Errorf("insert catalog item: %w", err)
	}
	return nil
}

func (r *CatalogItemRepo) GetByID(ctx context.Context, userID, id string) (*entity.CatalogItem, error) {
	var m catalogItemModel
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog item: %w", err)
	}
	return m.toEntity(), nil
}

func (r *CatalogItemRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CatalogItem, error) {
	var ms []catalogItemModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	list := make([]*entity.CatalogItem, 0, len(ms))
	for i := range ms {
		list = append(list, ms[i].toEntity())
	}
	return list, nil
}

// Update usa Select("*") para que los ceros (existencia 0, tasa 0) también se escriban.
func (r *CatalogItemRepo) Update(ctx context.Context, it *entity.CatalogItem) error {
	m := toCatalogItemModel(it)
	res := r.db.WithContext(ctx).Model(&catalogItemModel{}).
		Where("user_id = ? AND id = ?", it.UserID, it.ID).
		Select("*").Omit("id", "user_id", "created_at").
		Updates(m)
	if err := notFoundIfNone(res, "artículo"); err != nil {
		return fmt.Errorf("update catalog item: %w", err)
	}
	return nil
}

// DeductQuantity resta en la propia sentencia UPDATE (MAX escalar de SQLite) y
// relee dentro de la misma transacción.
func (r *CatalogItemRepo) DeductQuantity(ctx context.Context, userID, id string, qty int) (*entity.CatalogItem, error) {
	var m catalogItemModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&catalogItemModel{}).
			Where("user_id = ? AND id = ?", userID, id).
			Updates(map[string]any{
				"quantity_on_hand": gorm.Expr("MAX(quantity_on_hand - ?, 0)", qty),
				"updated_at":       time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("user_id = ? AND id = ?", userID, id).First(&m).Error
	})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("deduct stock: %w", err)
	}
	return m.toEntity(), nil
}

func (r *CatalogItemRepo) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&catalogItemModel{})
	if err := notFoundIfNone(res, "artículo"); err != nil {
		return fmt.Errorf("delete catalog item: %w", err)
	}
	return nil
}
