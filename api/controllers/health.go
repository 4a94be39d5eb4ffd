package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/admaster-ai/admaster-backend/api/responses"
	"github.com/admaster-ai/admaster-backend/pkg/config"
	"github.com/admaster-ai/admaster-backend/pkg/db"
	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
	"github.com/admaster-ai/admaster-backend/pkg/logger"
	"github.com/admaster-ai/admaster-backend/pkg/redis"
)

const envHeader = "X-AdMaster-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady answers 200 once every backing dependency responds to a ping.
// Failures are aggregated so one probe reports everything that is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		var errs error
		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				errs = multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database ping"))
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				errs = multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis ping"))
			}
		}

		if errs != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "readiness check failed"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
