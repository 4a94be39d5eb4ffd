package brands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/admaster-ai/admaster-backend/pkg/db/models"
	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
)

const (
	maxDescriptionLength = 500
	maxLanguageLength    = 10
)

type repository interface {
	FindByBusinessID(ctx context.Context, businessID uuid.UUID) (*models.Brand, error)
	GetOrCreateByBusinessID(ctx context.Context, businessID uuid.UUID) (*models.Brand, error)
	Update(ctx context.Context, brand *models.Brand) error
}

type businessGuard interface {
	FindByIDAndOwner(ctx context.Context, id uuid.UUID, ownerExternalID string) (*models.Business, error)
}

// Service exposes brand operations, always behind a business ownership
// check. A business owned by someone else is reported as not found.
type Service interface {
	GetForBusiness(ctx context.Context, ownerExternalID string, businessID uuid.UUID) (*BrandDTO, error)
	UpdateForBusiness(ctx context.Context, ownerExternalID string, businessID uuid.UUID, input UpdateBrandInput) (*BrandDTO, error)
	MarkComplete(ctx context.Context, ownerExternalID string, businessID uuid.UUID) (*BrandDTO, error)
}

type service struct {
	repo       repository
	businesses businessGuard
}

// NewService builds a brand service with the provided dependencies.
func NewService(repo repository, businesses businessGuard) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("brand repository required")
	}
	if businesses == nil {
		return nil, fmt.Errorf("business repository required")
	}
	return &service{repo: repo, businesses: businesses}, nil
}

func (s *service) GetForBusiness(ctx context.Context, ownerExternalID string, businessID uuid.UUID) (*BrandDTO, error) {
	if err := s.ensureOwnedBusiness(ctx, ownerExternalID, businessID); err != nil {
		return nil, err
	}

	brand, err := s.repo.GetOrCreateByBusinessID(ctx, businessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}
	return FromModel(brand), nil
}

func (s *service) UpdateForBusiness(ctx context.Context, ownerExternalID string, businessID uuid.UUID, input UpdateBrandInput) (*BrandDTO, error) {
	if err := s.ensureOwnedBusiness(ctx, ownerExternalID, businessID); err != nil {
		return nil, err
	}
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	brand, err := s.repo.GetOrCreateByBusinessID(ctx, businessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}

	if input.Description != nil {
		brand.Description = *input.Description
	}
	if input.LogoURL != nil {
		logo := *input.LogoURL
		brand.LogoURL = &logo
	}
	if input.BrandColors != nil {
		brand.BrandColors = pq.StringArray(append([]string(nil), (*input.BrandColors)...))
	}
	if input.ToneOfVoice != nil {
		brand.ToneOfVoice = pq.StringArray(append([]string(nil), (*input.ToneOfVoice)...))
	}
	if input.Language != nil {
		brand.Language = *input.Language
	}
	if input.IsComplete != nil {
		brand.IsComplete = *input.IsComplete
	}

	if err := s.repo.Update(ctx, brand); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update brand")
	}
	return FromModel(brand), nil
}

func (s *service) MarkComplete(ctx context.Context, ownerExternalID string, businessID uuid.UUID) (*BrandDTO, error) {
	if err := s.ensureOwnedBusiness(ctx, ownerExternalID, businessID); err != nil {
		return nil, err
	}

	brand, err := s.repo.FindByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}

	brand.IsComplete = true
	if err := s.repo.Update(ctx, brand); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update brand")
	}
	return FromModel(brand), nil
}

func (s *service) ensureOwnedBusiness(ctx context.Context, ownerExternalID string, businessID uuid.UUID) error {
	if ownerExternalID == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "owner external id required")
	}

	if _, err := s.businesses.FindByIDAndOwner(ctx, businessID, ownerExternalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "business not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load business")
	}
	return nil
}

func validateUpdate(input UpdateBrandInput) error {
	if input.Description != nil && utf8.RuneCountInString(*input.Description) > maxDescriptionLength {
		return pkgerrors.New(pkgerrors.CodeValidation, "brand description is too long")
	}
	if input.Language != nil {
		language := strings.TrimSpace(*input.Language)
		if language == "" || utf8.RuneCountInString(language) > maxLanguageLength {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid brand language")
		}
	}
	return nil
}
