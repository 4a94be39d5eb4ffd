package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/admaster-ai/admaster-backend/internal/identity"
	"github.com/admaster-ai/admaster-backend/pkg/db/models"
	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
)

type repository interface {
	Upsert(ctx context.Context, input UpsertInput) (*models.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*models.User, error)
	DeleteByExternalID(ctx context.Context, externalID string) error
	TouchLastLogin(ctx context.Context, externalID string, at time.Time) error
}

// Service owns the mapping from external identities to local user records.
type Service interface {
	ApplyEvent(ctx context.Context, event Event) error
	Resolve(ctx context.Context, claim identity.Claim) (*models.User, error)
}

type service struct {
	repo repository
}

// NewService builds the directory service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("directory repository required")
	}
	return &service{repo: repo}, nil
}

// ApplyEvent applies one identity change. Create and update merge the
// provided fields into the record keyed on external id, creating it when
// absent; delete removes it. Applying the same event twice leaves the same
// record as applying it once.
func (s *service) ApplyEvent(ctx context.Context, event Event) error {
	if strings.TrimSpace(event.ExternalID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "event external id required")
	}

	switch event.Kind {
	case EventCreated, EventUpdated:
		_, err := s.repo.Upsert(ctx, UpsertInput{
			ExternalID: event.ExternalID,
			Email:      event.Email,
			FirstName:  event.FirstName,
			LastName:   event.LastName,
			ImageURL:   event.ImageURL,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply user upsert")
		}
		return nil
	case EventDeleted:
		if err := s.repo.DeleteByExternalID(ctx, event.ExternalID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply user delete")
		}
		return nil
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported event kind %q", event.Kind))
	}
}

// Resolve returns the local user for a verified claim, lazily creating a
// minimal record when webhook delivery has not caught up yet. The lazy create
// goes through the same atomic upsert, so a race with a concurrent ApplyEvent
// for the same id collapses to the existing row.
func (s *service) Resolve(ctx context.Context, claim identity.Claim) (*models.User, error) {
	externalID := strings.TrimSpace(claim.ExternalID)
	if externalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "claim missing external id")
	}

	now := time.Now().UTC()
	user, err := s.repo.FindByExternalID(ctx, externalID)
	switch {
	case err == nil:
		if touchErr := s.repo.TouchLastLogin(ctx, externalID, now); touchErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, touchErr, "record user login")
		}
		return user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.lazyCreate(ctx, claim, externalID, now)
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve user")
	}
}

func (s *service) lazyCreate(ctx context.Context, claim identity.Claim, externalID string, now time.Time) (*models.User, error) {
	email := strings.TrimSpace(claim.Email)
	if email == "" {
		email = fmt.Sprintf("%s@users.noreply", externalID)
	}

	input := UpsertInput{
		ExternalID:  externalID,
		Email:       &email,
		LastLoginAt: &now,
	}
	if claim.FirstName != "" {
		input.FirstName = &claim.FirstName
	}
	if claim.LastName != "" {
		input.LastName = &claim.LastName
	}

	user, err := s.repo.Upsert(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lazily create user")
	}
	return user, nil
}
