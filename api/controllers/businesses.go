package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/admaster-ai/admaster-backend/api/middleware"
	"github.com/admaster-ai/admaster-backend/api/responses"
	"github.com/admaster-ai/admaster-backend/api/validators"
	"github.com/admaster-ai/admaster-backend/internal/businesses"
	"github.com/admaster-ai/admaster-backend/pkg/enums"
	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
	"github.com/admaster-ai/admaster-backend/pkg/logger"
)

type businessCreateRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Website  string `json:"website" validate:"required"`
	Industry string `json:"industry" validate:"required"`
	Size     string `json:"size"`
}

func (r businessCreateRequest) toInput() (businesses.CreateBusinessInput, error) {
	industry, err := enums.ParseIndustry(strings.TrimSpace(r.Industry))
	if err != nil {
		return businesses.CreateBusinessInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid industry")
	}

	input := businesses.CreateBusinessInput{
		Name:     strings.TrimSpace(r.Name),
		Website:  strings.TrimSpace(r.Website),
		Industry: industry,
	}

	if size := strings.TrimSpace(r.Size); size != "" {
		parsed, err := enums.ParseBusinessSize(size)
		if err != nil {
			return businesses.CreateBusinessInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid business size")
		}
		input.Size = parsed
	}

	return input, nil
}

// BusinessCreate registers a new business owned by the caller.
func BusinessCreate(svc businesses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "business service unavailable"))
			return
		}

		owner := middleware.ExternalIDFromContext(r.Context())

		var payload businessCreateRequest
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

// BusinessList returns every business owned by the caller, optionally
// narrowed by status.
func BusinessList(svc businesses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "business service unavailable"))
			return
		}

		owner := middleware.ExternalIDFromContext(r.Context())

		params := businesses.ListParams{}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseBusinessStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid business status"))
				return
			}
			params.Status = &status
		}

		list, err := svc.List(r.Context(), owner, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// BusinessDetail returns one owned business by id.
func BusinessDetail(svc businesses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "business service unavailable"))
			return
		}

		owner := middleware.ExternalIDFromContext(r.Context())

		id, err := businessIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		business, err := svc.GetByID(r.Context(), owner, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, business)
	}
}

type businessUpdateRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Website  *string `json:"website,omitempty" validate:"omitempty,min=1"`
	Industry *string `json:"industry,omitempty"`
	Size     *string `json:"size,omitempty"`
	Status   *string `json:"status,omitempty"`
}

func (r businessUpdateRequest) toInput() (businesses.UpdateBusinessInput, error) {
	input := businesses.UpdateBusinessInput{
		Name:    r.Name,
		Website: r.Website,
	}

	if r.Industry != nil {
		industry, err := enums.ParseIndustry(strings.TrimSpace(*r.Industry))
		if err != nil {
			return businesses.UpdateBusinessInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid industry")
		}
		input.Industry = &industry
	}
	if r.Size != nil {
		size, err := enums.ParseBusinessSize(strings.TrimSpace(*r.Size))
		if err != nil {
			return businesses.UpdateBusinessInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid business size")
		}
		input.Size = &size
	}
	if r.Status != nil {
		status, err := enums.ParseBusinessStatus(strings.TrimSpace(*r.Status))
		if err != nil {
			return businesses.UpdateBusinessInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid business status")
		}
		input.Status = &status
	}

	return input, nil
}

// BusinessUpdate adjusts the mutable fields of one owned business.
func BusinessUpdate(svc businesses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "business service unavailable"))
			return
		}

		owner := middleware.ExternalIDFromContext(r.Context())

		id, err := businessIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload businessUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), owner, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// BusinessDelete removes one owned business and everything hanging off it.
func BusinessDelete(svc businesses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "business service unavailable"))
			return
		}

		owner := middleware.ExternalIDFromContext(r.Context())

		id, err := businessIDParam(r)
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

// BusinessOwnershipCheck answers the onboarding redirect question.
func BusinessOwnershipCheck(svc businesses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "business service unavailable"))
			return
		}

		owner := middleware.ExternalIDFromContext(r.Context())

		check, err := svc.CheckOwnership(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, check)
	}
}

func businessIDParam(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "businessID"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "business id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid business id")
	}
	return id, nil
}
