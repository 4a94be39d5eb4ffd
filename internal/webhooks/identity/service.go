package identitywebhook

import (
	"context"

	"github.com/admaster-ai/admaster-backend/internal/directory"
	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
	"github.com/admaster-ai/admaster-backend/pkg/metrics"
)

type directoryService interface {
	ApplyEvent(ctx context.Context, event directory.Event) error
}

// Service applies verified identity events to the user directory.
type Service struct {
	directory directoryService
	metrics   *metrics.AppMetrics
}

// NewService builds the identity webhook service.
func NewService(directorySvc directoryService, appMetrics *metrics.AppMetrics) (*Service, error) {
	if directorySvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "directory service required")
	}
	return &Service{directory: directorySvc, metrics: appMetrics}, nil
}

// HandleEvent shape-validates the event payload and applies it to the
// directory. Unsupported event types are acknowledged without applying
// anything; that is the contract with the provider, which otherwise retries.
func (s *Service) HandleEvent(ctx context.Context, event *Event) error {
	if event == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "identity event required")
	}

	switch event.Type {
	case EventUserCreated, EventUserUpdated:
		payload, err := decodeUserPayload(event.Data)
		if err != nil {
			s.metrics.IncWebhookEvent(event.Type, metrics.OutcomeRejected)
			return err
		}
		kind := directory.EventCreated
		if event.Type == EventUserUpdated {
			kind = directory.EventUpdated
		}
		if err := s.directory.ApplyEvent(ctx, toDirectoryEvent(kind, payload)); err != nil {
			s.metrics.IncWebhookEvent(event.Type, metrics.OutcomeError)
			return err
		}
		s.metrics.IncWebhookEvent(event.Type, metrics.OutcomeOK)
		return nil

	case EventUserDeleted:
		payload, err := decodeUserPayload(event.Data)
		if err != nil {
			s.metrics.IncWebhookEvent(event.Type, metrics.OutcomeRejected)
			return err
		}
		err = s.directory.ApplyEvent(ctx, directory.Event{
			Kind:       directory.EventDeleted,
			ExternalID: payload.ID,
		})
		if err != nil {
			s.metrics.IncWebhookEvent(event.Type, metrics.OutcomeError)
			return err
		}
		s.metrics.IncWebhookEvent(event.Type, metrics.OutcomeOK)
		return nil

	default:
		s.metrics.IncWebhookEvent(event.Type, metrics.OutcomeIgnored)
		return nil
	}
}

func toDirectoryEvent(kind directory.EventKind, payload *UserPayload) directory.Event {
	event := directory.Event{
		Kind:       kind,
		ExternalID: payload.ID,
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		ImageURL:   payload.ImageURL,
	}
	if email := payload.PrimaryEmail(); email != "" {
		event.Email = &email
	}
	return event
}
