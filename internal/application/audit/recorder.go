// Package audit registra la bitácora de mutaciones (solo inserción).
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Facturas-api/internal/application/dto"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
	"github.com/jhoicas/Facturas-api/pkg/logger"
)

// Recorder agrega entradas a la bitácora. Un fallo al escribir se registra en el log
// y no se devuelve: la operación principal ya se persistió.
type Recorder struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewRecorder construye el registrador.
func NewRecorder(repo repository.AuditLogRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log.WithComponent("audit"), now: time.Now}
}

// Record agrega una entrada.
func (r *Recorder) Record(ctx context.Context, userID, action, entityType, entityID, details string) {
	entry := &entity.AuditLogEntry{
		ID:         uuid.New().String(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		Timestamp:  r.now(),
	}
	if err := r.repo.Append(ctx, entry); err != nil {
		r.log.Warn().Err(err).
			Str("user_id", userID).
			Str("action", action).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Msg("no se pudo escribir la bitácora")
	}
}

// List devuelve la bitácora del usuario, más reciente primero.
func (r *Recorder) List(ctx context.Context, userID string, page dto.PageRequest) ([]*dto.AuditLogResponse, error) {
	page.DefaultPage()
	entries, err := r.repo.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &dto.AuditLogResponse{
			ID:         e.ID,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Details:    e.Details,
			Timestamp:  e.Timestamp,
		})
	}
	return out, nil
}
