package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Facturas-api/internal/application/ports"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel subconjunto de *amqp.Channel usado por el publicador.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

var _ ports.EventPublisher = (*RabbitMQPublisher)(nil)

// RabbitMQPublisher publica eventos persistentes en una cola durable (exchange por defecto).
type RabbitMQPublisher struct {
	conn  *amqp.Connection // nil cuando se inyecta el canal
	ch    Channel
	queue string
}

// NewRabbitMQPublisher abre conexión y canal, y declara la cola.
func NewRabbitMQPublisher(url, queue string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	p, err := NewRabbitMQPublisherWithChannel(ch, queue)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// NewRabbitMQPublisherWithChannel permite inyectar un canal (tests).
func NewRabbitMQPublisherWithChannel(ch Channel, queue string) (*RabbitMQPublisher, error) {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("rabbitmq declare %s: %w", queue, err)
	}
	return &RabbitMQPublisher{ch: ch, queue: queue}, nil
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, event ports.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         event.Name,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", event.Name, err)
	}
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
