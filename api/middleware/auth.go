package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/admaster-ai/admaster-backend/api/responses"
	"github.com/admaster-ai/admaster-backend/internal/identity"
	"github.com/admaster-ai/admaster-backend/pkg/db/models"
	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
	"github.com/admaster-ai/admaster-backend/pkg/logger"
	"github.com/admaster-ai/admaster-backend/pkg/metrics"
)

type credentialVerifier interface {
	Verify(ctx context.Context, rawToken string) (*identity.Claim, error)
}

type userResolver interface {
	Resolve(ctx context.Context, claim identity.Claim) (*models.User, error)
}

// RequireUser verifies the bearer token against the identity provider's
// signing keys and resolves the verified claim to a directory user before
// any handler runs. The resolved user and its external id are seeded into
// the request context.
func RequireUser(verifier credentialVerifier, directory userResolver, logg *logger.Logger, appMetrics *metrics.AppMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				appMetrics.IncVerification(metrics.OutcomeRejected)
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				appMetrics.IncVerification(metrics.OutcomeRejected)
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claim, err := verifier.Verify(r.Context(), token)
			if err != nil {
				appMetrics.IncVerification(verificationOutcome(err))
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			appMetrics.IncVerification(metrics.OutcomeOK)

			user, err := directory.Resolve(r.Context(), *claim)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithUser(r.Context(), user)
			ctx = WithExternalID(ctx, user.ExternalID)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":     user.ID.String(),
					"external_id": user.ExternalID,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// verificationOutcome separates credential rejections from signing-key
// availability failures so the two do not share an alerting signal.
func verificationOutcome(err error) string {
	if pkgErr := pkgerrors.As(err); pkgErr != nil && pkgErr.Code() == pkgerrors.CodeDependency {
		return metrics.OutcomeError
	}
	return metrics.OutcomeRejected
}
