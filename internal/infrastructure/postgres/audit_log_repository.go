package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo bitácora de solo inserción.
type AuditLogRepo struct {
	q Querier
}

func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

func (r *AuditLogRepo) Append(ctx context.Context, e *entity.AuditLogEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, e.Action, e.EntityType, e.EntityID, nullIfEmpty(e.Details), e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *AuditLogRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.AuditLogEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, action, entity_type, entity_id, details, created_at
		FROM audit_logs WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLogEntry
	for rows.Next() {
		var e entity.AuditLogEntry
		var details *string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.EntityType, &e.EntityID, &details, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		e.Details = derefStr(details)
		list = append(list, &e)
	}
	return list, rows.Err()
}
