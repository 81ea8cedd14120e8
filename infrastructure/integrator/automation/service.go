package automation

import (
	"context"

	"github.com/alsham360/prima-api/infrastructure/integrator/automation/automationclient"
	"github.com/alsham360/prima-api/internal/domain"
)

type AutomationIntegrator interface {
	Deliver(ctx context.Context, entry *domain.OutboxEntry) error
	CheckConnection(ctx context.Context) (bool, error)
}

type AutomationService struct {
	Client automationclient.Client
}

func New(client automationclient.Client) AutomationIntegrator {
	return &AutomationService{
		Client: client,
	}
}

// Deliver envia a entrada do outbox usando o ID dela como ID de entrega, o que permite deduplicar no destino
func (s *AutomationService) Deliver(ctx context.Context, entry *domain.OutboxEntry) error {
	return s.Client.PostEvent(ctx, automationclient.PostEventParams{
		EventType:  entry.EventType,
		DeliveryID: entry.ID,
		Payload:    entry.Payload,
	})
}

func (s *AutomationService) CheckConnection(ctx context.Context) (bool, error) {
	if err := s.Client.Ping(ctx); err != nil {
		return false, err
	}
	return true, nil
}
