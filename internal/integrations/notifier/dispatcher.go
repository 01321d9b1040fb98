package notifier

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/companion-booking/internal/domain"
)

// Dispatcher отправляет события после коммита
// Ошибка доставки только логируется: состояние бронирования от нее не зависит
type Dispatcher struct {
	publisher Publisher
	metrics   MetricsRecorder
	log       Logger
}

// NewDispatcher metrics может быть nil
func NewDispatcher(publisher Publisher, metrics MetricsRecorder, log Logger) *Dispatcher {
	return &Dispatcher{publisher: publisher, metrics: metrics, log: log}
}

func (d *Dispatcher) Dispatch(ctx context.Context, events ...domain.Event) {
	for _, event := range events {
		if event.ID == "" {
			event.ID = uuid.NewString()
		}

		err := d.publisher.Publish(ctx, event)
		if d.metrics != nil {
			d.metrics.EventPublished(string(event.Type), err == nil)
		}
		if err != nil {
			d.log.Warn("Dispatch: event %s id=%s not delivered: %v", event.Type, event.ID, err)
		}
	}
}
