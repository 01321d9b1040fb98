package notifier

import (
	"context"

	"github.com/m04kA/companion-booking/internal/domain"
)

// LogPublisher пишет события в лог, когда брокер отключен в конфигурации
type LogPublisher struct {
	log Logger
}

func NewLogPublisher(log Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.Event) error {
	p.log.Info("Event %s id=%s recipients=%v payload=%v", event.Type, event.ID, event.Recipients, event.Payload)
	return nil
}
