package repository

import (
	"context"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
)

// AuditLogRepository bitácora de solo inserción.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *entity.AuditLogEntry) error
	// ListByUser devuelve las entradas más recientes primero.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.AuditLogEntry, error)
}
