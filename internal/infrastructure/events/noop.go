package events

import (
	"context"

	"github.com/jhoicas/Facturas-api/internal/application/ports"
	"github.com/jhoicas/Facturas-api/pkg/logger"
)

var _ ports.EventPublisher = (*LogPublisher)(nil)

// LogPublisher no envía a ningún broker: solo deja el evento en el log a nivel debug.
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event ports.Event) error {
	p.log.Debug().
		Str("event", event.Name).
		Str("user_id", event.UserID).
		Str("entity_id", event.EntityID).
		Msg("evento de dominio")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
