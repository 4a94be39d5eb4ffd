package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/admaster-ai/admaster-backend/api/middleware"
	"github.com/admaster-ai/admaster-backend/api/responses"
	"github.com/admaster-ai/admaster-backend/api/validators"
	"github.com/admaster-ai/admaster-backend/internal/campaigns"
	"github.com/admaster-ai/admaster-backend/pkg/enums"
	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
	"github.com/admaster-ai/admaster-backend/pkg/logger"
	"github.com/admaster-ai/admaster-backend/pkg/pagination"
)

type campaignCreateRequest struct {
	BusinessID     string           `json:"business_id" validate:"required"`
	Title          string           `json:"title" validate:"required,min=1,max=200"`
	URL            string           `json:"url" validate:"required"`
	ConversionGoal string           `json:"conversion_goal"`
	BudgetCurrency string           `json:"budget_currency"`
	DailyBudget    *decimal.Decimal `json:"daily_budget"`
}

func (r campaignCreateRequest) toInput() (campaigns.CreateCampaignInput, error) {
	businessID, err := uuid.Parse(strings.TrimSpace(r.BusinessID))
	if err != nil {
		return campaigns.CreateCampaignInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid business id")
	}

	input := campaigns.CreateCampaignInput{
		BusinessID:  businessID,
		Title:       strings.TrimSpace(r.Title),
		URL:         strings.TrimSpace(r.URL),
		DailyBudget: r.DailyBudget,
	}

	if goal := strings.TrimSpace(r.ConversionGoal); goal != "" {
		parsed, err := enums.ParseConversionGoal(goal)
		if err != nil {
			return campaigns.CreateCampaignInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid conversion goal")
		}
		input.ConversionGoal = parsed
	}
	if currency := strings.TrimSpace(r.BudgetCurrency); currency != "" {
		parsed, err := enums.ParseCurrency(currency)
		if err != nil {
			return campaigns.CreateCampaignInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid budget currency")
		}
		input.BudgetCurrency = parsed
	}

	return input, nil
}

// CampaignCreate registers a campaign under one of the caller's businesses.
func CampaignCreate(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		owner := middleware.ExternalIDFromContext(r.Context())

		var payload campaignCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), owner, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// CampaignList returns the caller's campaigns newest first with an opaque
// continuation cursor.
func CampaignList(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		owner := middleware.ExternalIDFromContext(r.Context())

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))

		list, err := svc.List(r.Context(), owner, campaigns.ListParams{
			Params: pagination.Params{Limit: limit, Cursor: cursor},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// CampaignDetail returns one owned campaign by id.
func CampaignDetail(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		owner := middleware.ExternalIDFromContext(r.Context())

		id, err := campaignIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		campaign, err := svc.GetByID(r.Context(), owner, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, campaign)
	}
}

type campaignStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CampaignUpdateStatus moves a campaign through its lifecycle.
func CampaignUpdateStatus(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		owner := middleware.ExternalIDFromContext(r.Context())

		id, err := campaignIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload campaignStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		target, err := enums.ParseCampaignStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid campaign status"))
			return
		}

		updated, err := svc.UpdateStatus(r.Context(), owner, id, target)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// CampaignDelete removes one owned campaign.
func CampaignDelete(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		owner := middleware.ExternalIDFromContext(r.Context())

		id, err := campaignIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), owner, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}

func campaignIDParam(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "campaignID"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "campaign id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid campaign id")
	}
	return id, nil
}
