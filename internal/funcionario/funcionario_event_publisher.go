package funcionario

import (
	"context"

	"hr-service/internal/events"
)

//go:generate mockgen -source=funcionario_event_publisher.go -destination=mock/funcionario_event_publisher_mock.go -package=mock
type EventPublisher interface {
	Publish(ctx context.Context, event events.FuncionarioEvent) error
}

type noopEventPublisher struct{}

func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

func (noopEventPublisher) Publish(context.Context, events.FuncionarioEvent) error {
	return nil
}
