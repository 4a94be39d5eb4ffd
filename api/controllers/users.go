package controllers

import (
	"net/http"

	"github.com/admaster-ai/admaster-backend/api/middleware"
	"github.com/admaster-ai/admaster-backend/api/responses"
	"github.com/admaster-ai/admaster-backend/internal/businesses"
	"github.com/admaster-ai/admaster-backend/internal/directory"
	"github.com/admaster-ai/admaster-backend/pkg/enums"
	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
	"github.com/admaster-ai/admaster-backend/pkg/logger"
)

// CurrentUser returns the directory record resolved for the caller.
func CurrentUser(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())
		if user == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}
		responses.WriteSuccess(w, directory.FromModel(user))
	}
}

type userProfileResponse struct {
	User             *directory.UserDTO `json:"user"`
	BusinessCount    int                `json:"business_count"`
	ActiveBusinesses int                `json:"active_businesses"`
}

// CurrentUserProfile returns the caller's record together with its business
// ownership counts.
func CurrentUserProfile(svc businesses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "business service unavailable"))
			return
		}

		user := middleware.UserFromContext(r.Context())
		if user == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		list, err := svc.List(r.Context(), user.ExternalID, businesses.ListParams{})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		active := 0
		for _, b := range list.Businesses {
			if b.Status == enums.BusinessStatusActive {
				active++
			}
		}

		responses.WriteSuccess(w, userProfileResponse{
			User:             directory.FromModel(user),
			BusinessCount:    list.Total,
			ActiveBusinesses: active,
		})
	}
}
