package businesses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/admaster-ai/admaster-backend/pkg/db/models"
	"github.com/admaster-ai/admaster-backend/pkg/enums"
	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
)

const maxNameLength = 200

type repository interface {
	Create(ctx context.Context, business *models.Business) error
	FindByIDAndOwner(ctx context.Context, id uuid.UUID, ownerExternalID string) (*models.Business, error)
	ListByOwner(ctx context.Context, ownerExternalID string, status *enums.BusinessStatus) ([]models.Business, error)
	CountByOwner(ctx context.Context, ownerExternalID string) (int64, error)
	Update(ctx context.Context, business *models.Business) error
	DeleteByIDAndOwner(ctx context.Context, id uuid.UUID, ownerExternalID string) (int64, error)
}

// Service exposes owner-scoped business operations. A business id that
// belongs to someone else is reported as not found, never as forbidden.
type Service interface {
	Create(ctx context.Context, ownerExternalID string, input CreateBusinessInput) (*BusinessDTO, error)
	List(ctx context.Context, ownerExternalID string, params ListParams) (*ListResult, error)
	GetByID(ctx context.Context, ownerExternalID string, id uuid.UUID) (*BusinessDTO, error)
	Update(ctx context.Context, ownerExternalID string, id uuid.UUID, input UpdateBusinessInput) (*BusinessDTO, error)
	Delete(ctx context.Context, ownerExternalID string, id uuid.UUID) error
	CheckOwnership(ctx context.Context, ownerExternalID string) (*OwnershipCheckDTO, error)
}

type service struct {
	repo repository
}

// NewService builds a business service with the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("business repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, ownerExternalID string, input CreateBusinessInput) (*BusinessDTO, error) {
	if ownerExternalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "owner external id required")
	}
	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Website) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business website is required")
	}
	if !input.Industry.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown industry")
	}
	if input.Size != "" && !input.Size.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown business size")
	}

	business := input.toModel(ownerExternalID)
	if err := s.repo.Create(ctx, business); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create business")
	}
	return FromModel(business), nil
}

func (s *service) List(ctx context.Context, ownerExternalID string, params ListParams) (*ListResult, error) {
	if ownerExternalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "owner external id required")
	}
	if params.Status != nil && !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown business status")
	}

	records, err := s.repo.ListByOwner(ctx, ownerExternalID, params.Status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list businesses")
	}

	result := &ListResult{
		Businesses: make([]BusinessDTO, 0, len(records)),
		Total:      len(records),
	}
	for i := range records {
		result.Businesses = append(result.Businesses, *FromModel(&records[i]))
	}
	return result, nil
}

func (s *service) GetByID(ctx context.Context, ownerExternalID string, id uuid.UUID) (*BusinessDTO, error) {
	business, err := s.loadOwned(ctx, ownerExternalID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(business), nil
}

func (s *service) Update(ctx context.Context, ownerExternalID string, id uuid.UUID, input UpdateBusinessInput) (*BusinessDTO, error) {
	business, err := s.loadOwned(ctx, ownerExternalID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := validateName(*input.Name); err != nil {
			return nil, err
		}
		business.Name = *input.Name
	}
	if input.Website != nil {
		if strings.TrimSpace(*input.Website) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "business website is required")
		}
		business.Website = *input.Website
	}
	if input.Industry != nil {
		if !input.Industry.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown industry")
		}
		business.Industry = *input.Industry
	}
	if input.Size != nil {
		if !input.Size.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown business size")
		}
		business.Size = *input.Size
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown business status")
		}
		business.Status = *input.Status
	}

	if err := s.repo.Update(ctx, business); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update business")
	}
	return FromModel(business), nil
}

func (s *service) Delete(ctx context.Context, ownerExternalID string, id uuid.UUID) error {
	if ownerExternalID == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "owner external id required")
	}

	affected, err := s.repo.DeleteByIDAndOwner(ctx, id, ownerExternalID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete business")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "business not found")
	}
	return nil
}

func (s *service) CheckOwnership(ctx context.Context, ownerExternalID string) (*OwnershipCheckDTO, error) {
	if ownerExternalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "owner external id required")
	}

	count, err := s.repo.CountByOwner(ctx, ownerExternalID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count businesses")
	}
	return &OwnershipCheckDTO{HasBusiness: count > 0, BusinessCount: count}, nil
}

func (s *service) loadOwned(ctx context.Context, ownerExternalID string, id uuid.UUID) (*models.Business, error) {
	if ownerExternalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "owner external id required")
	}

	business, err := s.repo.FindByIDAndOwner(ctx, id, ownerExternalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "business not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load business")
	}
	return business, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "business name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return pkgerrors.New(pkgerrors.CodeValidation, "business name is too long")
	}
	return nil
}
