package localstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
	"gorm.io/gorm"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

type AuditLogRepo struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepo {
	return &AuditLogRepo{db: db}
}

func (r *AuditLogRepo) Append(ctx context.Context, e *entity.AuditLogEntry) error {
	m := auditLogModel{
		ID:         e.ID,
		UserID:     e.UserID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Details:    e.Details,
		CreatedAt:  e.Timestamp,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *AuditLogRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.AuditLogEntry, error) {
	var ms []auditLogModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	list := make([]*entity.AuditLogEntry, 0, len(ms))
	for _, m := range ms {
		list = append(list, &entity.AuditLogEntry{
			ID:         m.ID,
			UserID:     m.UserID,
			Action:     m.Action,
			EntityType: m.EntityType,
			EntityID:   m.EntityID,
			Details:    m.Details,
			Timestamp:  m.CreatedAt,
		})
	}
	return list, nil
}
