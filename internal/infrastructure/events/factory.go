package events

import (
	"fmt"

	"github.com/jhoicas/Facturas-api/internal/application/ports"
	"github.com/jhoicas/Facturas-api/pkg/config"
	"github.com/jhoicas/Facturas-api/pkg/logger"
)

// NewPublisher elige el adaptador según EVENTS_DRIVER.
func NewPublisher(cfg config.EventsConfig, log *logger.Logger) (ports.EventPublisher, error) {
	switch cfg.Driver {
	case config.EventsKafka:
		log.Info().Str("broker", cfg.KafkaBroker).Str("topic", cfg.KafkaTopic).Msg("eventos: kafka")
		return NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic), nil
	case config.EventsRabbitMQ:
		log.Info().Str("queue", cfg.RabbitMQQueue).Msg("eventos: rabbitmq")
		return NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue)
	case config.EventsNone, "":
		return NewLogPublisher(log), nil
	}
	return nil, fmt.Errorf("driver de eventos desconocido: %q", cfg.Driver)
}
