package webhooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/admaster-ai/admaster-backend/api/responses"
	identitywebhook "github.com/admaster-ai/admaster-backend/internal/webhooks/identity"
	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
	"github.com/admaster-ai/admaster-backend/pkg/logger"
	"github.com/admaster-ai/admaster-backend/pkg/metrics"
)

type identityEventService interface {
	HandleEvent(ctx context.Context, event *identitywebhook.Event) error
}

type signatureVerifier interface {
	Verify(now time.Time, header identitywebhook.SignatureHeader, payload []byte) error
}

type replayGuard interface {
	CheckAndMark(ctx context.Context, messageID string) (bool, error)
	Release(ctx context.Context, messageID string) error
}

// IdentityWebhook ingests identity provider events. The signature is checked
// before anything else; a request that fails it is answered 400 and never
// touches the directory.
func IdentityWebhook(svc identityEventService, verifier signatureVerifier, guard replayGuard, logg *logger.Logger, appMetrics *metrics.AppMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook service unavailable"))
			return
		}
		if verifier == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook verifier unavailable"))
			return
		}
		if guard == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "replay guard unavailable"))
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request body"))
			return
		}

		header := identitywebhook.HeaderFromRequest(r)
		if err := verifier.Verify(time.Now(), header, payload); err != nil {
			if logg != nil {
				warnCtx := logg.WithFields(ctx, map[string]any{
					"message_id":  header.MessageID,
					"remote_addr": r.RemoteAddr,
				})
				logg.Warn(warnCtx, "webhook.signature_rejected")
			}
			appMetrics.IncWebhookEvent("", metrics.OutcomeRejected)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var event identitywebhook.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			appMetrics.IncWebhookEvent("", metrics.OutcomeRejected)
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode event envelope"))
			return
		}

		alreadyDelivered, err := guard.CheckAndMark(ctx, header.MessageID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check replay guard"))
			return
		}
		if alreadyDelivered {
			appMetrics.IncWebhookEvent(event.Type, metrics.OutcomeReplay)
			responses.WriteSuccess(w, nil)
			return
		}

		if err := svc.HandleEvent(ctx, &event); err != nil {
			_ = guard.Release(ctx, header.MessageID)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(ctx, fmt.Sprintf("identity event %s processed", header.MessageID))
		}
		responses.WriteSuccess(w, nil)
	}
}
