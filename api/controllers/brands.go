package controllers

import (
	"net/http"

	"github.com/admaster-ai/admaster-backend/api/middleware"
	"github.com/admaster-ai/admaster-backend/api/responses"
	"github.com/admaster-ai/admaster-backend/api/validators"
	"github.com/admaster-ai/admaster-backend/internal/brands"
	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
	"github.com/admaster-ai/admaster-backend/pkg/logger"
)

// BrandFetch returns the brand profile for an owned business, creating an
// empty one on first read.
func BrandFetch(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "brand service unavailable"))
			return
		}

		owner := middleware.ExternalIDFromContext(r.Context())

		businessID, err := businessIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.GetForBusiness(r.Context(), owner, businessID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, brand)
	}
}

type brandUpdateRequest struct {
	Description *string   `json:"description,omitempty" validate:"omitempty,max=500"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	BrandColors *[]string `json:"brand_colors,omitempty"`
	ToneOfVoice *[]string `json:"tone_of_voice,omitempty"`
	Language    *string   `json:"language,omitempty" validate:"omitempty,min=1,max=10"`
	IsComplete  *bool     `json:"is_complete,omitempty"`
}

func (r brandUpdateRequest) toInput() brands.UpdateBrandInput {
	return brands.UpdateBrandInput{
		Description: r.Description,
		LogoURL:     r.LogoURL,
		BrandColors: r.BrandColors,
		ToneOfVoice: r.ToneOfVoice,
		Language:    r.Language,
		IsComplete:  r.IsComplete,
	}
}

// BrandUpdate partial-merges the provided brand fields.
func BrandUpdate(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "brand service unavailable"))
			return
		}

		owner := middleware.ExternalIDFromContext(r.Context())

		businessID, err := businessIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload brandUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.UpdateForBusiness(r.Context(), owner, businessID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, brand)
	}
}

// BrandComplete marks the brand profile as reviewed.
func BrandComplete(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "brand service unavailable"))
			return
		}

		owner := middleware.ExternalIDFromContext(r.Context())

		businessID, err := businessIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.MarkComplete(r.Context(), owner, businessID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, brand)
	}
}
