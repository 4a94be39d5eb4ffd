package campaigns

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/admaster-ai/admaster-backend/pkg/config"
	"github.com/admaster-ai/admaster-backend/pkg/db/models"
	"github.com/admaster-ai/admaster-backend/pkg/enums"
	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
	pkgpagination "github.com/admaster-ai/admaster-backend/pkg/pagination"
)

const maxTitleLength = 200

type repository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	FindByIDAndOwner(ctx context.Context, id uuid.UUID, ownerExternalID string) (*models.Campaign, error)
	List(ctx context.Context, opts listQuery) ([]models.Campaign, error)
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, ownerExternalID string, from, to enums.CampaignStatus) (int64, error)
	DeleteByIDAndOwner(ctx context.Context, id uuid.UUID, ownerExternalID string) (int64, error)
}

type businessGuard interface {
	FindByIDAndOwner(ctx context.Context, id uuid.UUID, ownerExternalID string) (*models.Business, error)
}

// Service exposes owner-scoped campaign operations. A campaign id that
// belongs to someone else is reported as not found, never as forbidden.
type Service interface {
	Create(ctx context.Context, ownerExternalID string, input CreateCampaignInput) (*CampaignDTO, error)
	List(ctx context.Context, ownerExternalID string, params ListParams) (*ListResult, error)
	GetByID(ctx context.Context, ownerExternalID string, id uuid.UUID) (*CampaignDTO, error)
	UpdateStatus(ctx context.Context, ownerExternalID string, id uuid.UUID, target enums.CampaignStatus) (*CampaignDTO, error)
	Delete(ctx context.Context, ownerExternalID string, id uuid.UUID) error
}

type service struct {
	repo       repository
	businesses businessGuard
	defaults   config.CampaignConfig
}

// NewService builds a campaign service with the provided dependencies.
func NewService(repo repository, businesses businessGuard, defaults config.CampaignConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("campaign repository required")
	}
	if businesses == nil {
		return nil, fmt.Errorf("business repository required")
	}
	return &service{repo: repo, businesses: businesses, defaults: defaults}, nil
}

func (s *service) Create(ctx context.Context, ownerExternalID string, input CreateCampaignInput) (*CampaignDTO, error) {
	if ownerExternalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "owner external id required")
	}
	if input.BusinessID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business id required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "campaign title is required")
	}
	if utf8.RuneCountInString(input.Title) > maxTitleLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "campaign title is too long")
	}
	if strings.TrimSpace(input.URL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "campaign url is required")
	}

	goal := input.ConversionGoal
	if goal == "" {
		goal = enums.ConversionGoalWebsiteTraffic
	}
	if !goal.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown conversion goal")
	}

	currency := input.BudgetCurrency
	if currency == "" {
		currency = enums.Currency(s.defaults.DefaultCurrency)
	}
	if !currency.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown budget currency")
	}

	budget := s.defaults.DefaultDailyBudget
	if input.DailyBudget != nil {
		budget = *input.DailyBudget
	}
	if budget.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "daily budget must not be negative")
	}

	if _, err := s.businesses.FindByIDAndOwner(ctx, input.BusinessID, ownerExternalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "business not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load business")
	}

	campaign := &models.Campaign{
		ID:              uuid.New(),
		BusinessID:      input.BusinessID,
		OwnerExternalID: ownerExternalID,
		Title:           input.Title,
		URL:             input.URL,
		ConversionGoal:  goal,
		BudgetCurrency:  currency,
		DailyBudget:     budget,
		Status:          enums.CampaignStatusDraft,
	}
	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create campaign")
	}
	return FromModel(campaign), nil
}

func (s *service) List(ctx context.Context, ownerExternalID string, params ListParams) (*ListResult, error) {
	if ownerExternalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "owner external id required")
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	query := listQuery{
		ownerExternalID: ownerExternalID,
		limit:           pkgpagination.LimitWithBuffer(params.Limit),
	}
	if params.Cursor != "" {
		cursor, err := pkgpagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.cursor = cursor
	}

	rows, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list campaigns")
	}

	nextCursor := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		nextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	items := make([]CampaignDTO, len(rows))
	for i := range rows {
		items[i] = *FromModel(&rows[i])
	}
	return &ListResult{Items: items, Cursor: nextCursor}, nil
}

func (s *service) GetByID(ctx context.Context, ownerExternalID string, id uuid.UUID) (*CampaignDTO, error) {
	campaign, err := s.loadOwned(ctx, ownerExternalID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(campaign), nil
}

func (s *service) UpdateStatus(ctx context.Context, ownerExternalID string, id uuid.UUID, target enums.CampaignStatus) (*CampaignDTO, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown campaign status")
	}

	campaign, err := s.loadOwned(ctx, ownerExternalID, id)
	if err != nil {
		return nil, err
	}
	if campaign.Status == target {
		return FromModel(campaign), nil
	}
	if !canTransition(campaign.Status, target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("campaign cannot move from %s to %s", campaign.Status, target))
	}

	affected, err := s.repo.UpdateStatusFrom(ctx, id, ownerExternalID, campaign.Status, target)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update campaign status")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "campaign status changed concurrently")
	}

	campaign.Status = target
	return FromModel(campaign), nil
}

func (s *service) Delete(ctx context.Context, ownerExternalID string, id uuid.UUID) error {
	if ownerExternalID == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "owner external id required")
	}

	affected, err := s.repo.DeleteByIDAndOwner(ctx, id, ownerExternalID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete campaign")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
	}
	return nil
}

func (s *service) loadOwned(ctx context.Context, ownerExternalID string, id uuid.UUID) (*models.Campaign, error) {
	if ownerExternalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "owner external id required")
	}

	campaign, err := s.repo.FindByIDAndOwner(ctx, id, ownerExternalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load campaign")
	}
	return campaign, nil
}
