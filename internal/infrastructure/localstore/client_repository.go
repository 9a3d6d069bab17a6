package localstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
	"gorm.io/gorm"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

type ClientRepo struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepo {
	return &ClientRepo{db: db}
}

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	m := clientModel(*c)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, userID, id string) (*entity.Client, error) {
	var m clientModel
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	c := entity.Client(m)
	return &c, nil
}

func (r *ClientRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Client, error) {
	var ms []clientModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	list := make([]*entity.Client, 0, len(ms))
	for _, m := range ms {
		c := entity.Client(m)
		list = append(list, &c)
	}
	return list, nil
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	res := r.db.WithContext(ctx).Model(&clientModel{}).
		Where("user_id = ? AND id = ?", c.UserID, c.ID).
		Updates(map[string]any{
			"name":       c.Name,
			"email":      c.Email,
			"phone":      c.Phone,
			"address":    c.Address,
			"notes":      c.Notes,
			"updated_at": c.UpdatedAt,
		})
	if err := notFoundIfNone(res, "cliente"); err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&clientModel{})
	if err := notFoundIfNone(res, "cliente"); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
