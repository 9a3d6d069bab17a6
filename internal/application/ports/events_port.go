package ports

import (
	"context"
	"time"
)

// Nombres de eventos de dominio publicados por los casos de uso.
const (
	EventInvoiceCreated = "invoice.created"
	EventInvoiceSent    = "invoice.sent"
	EventInvoicePaid    = "invoice.paid"
	EventInvoiceOverdue = "invoice.overdue"
	EventStockLow       = "stock.low"
)

// Event evento de dominio. Payload se serializa como JSON por el adaptador.
type Event struct {
	Name       string         `json:"name"`
	UserID     string         `json:"user_id"`
	EntityID   string         `json:"entity_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// EventPublisher puerto de salida para publicar eventos (Kafka, RabbitMQ, no-op).
// Los casos de uso registran los errores de publicación; nunca los propagan.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
