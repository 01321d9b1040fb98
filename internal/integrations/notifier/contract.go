package notifier

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/companion-booking/internal/domain"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher доставляет событие во внешний нотификатор
type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// MetricsRecorder учитывает результат публикации
type MetricsRecorder interface {
	EventPublished(eventType string, ok bool)
}

// amqpChannel подмножество *amqp.Channel, которое нужно издателю
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}
