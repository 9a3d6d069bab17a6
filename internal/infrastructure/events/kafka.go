// Package events contiene los adaptadores de ports.EventPublisher: Kafka, RabbitMQ y no-op.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Facturas-api/internal/application/ports"
	skafka "github.com/segmentio/kafka-go"
)

// Writer subconjunto de kafka.Writer que usamos; permite inyectar un writer falso en tests.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

// KafkaPublisher publica eventos como JSON. La clave del mensaje es el UserID para
// conservar el orden por tenant dentro de una partición.
type KafkaPublisher struct {
	writer Writer
}

// NewKafkaPublisher crea un productor real contra broker/topic.
func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	w := &skafka.Writer{
		Addr:                   skafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &skafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

// NewKafkaPublisherWithWriter permite inyectar un writer de prueba.
func NewKafkaPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event ports.Event) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := skafka.Message{
		Key:   []byte(event.UserID),
		Value: b,
		Headers: []skafka.Header{
			{Key: "event", Value: []byte(event.Name)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write %s: %w", event.Name, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
