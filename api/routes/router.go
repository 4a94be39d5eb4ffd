package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/admaster-ai/admaster-backend/api/controllers"
	webhookcontrollers "github.com/admaster-ai/admaster-backend/api/controllers/webhooks"
	"github.com/admaster-ai/admaster-backend/api/middleware"
	"github.com/admaster-ai/admaster-backend/internal/brands"
	"github.com/admaster-ai/admaster-backend/internal/businesses"
	"github.com/admaster-ai/admaster-backend/internal/campaigns"
	"github.com/admaster-ai/admaster-backend/internal/directory"
	"github.com/admaster-ai/admaster-backend/internal/identity"
	identitywebhook "github.com/admaster-ai/admaster-backend/internal/webhooks/identity"
	"github.com/admaster-ai/admaster-backend/pkg/config"
	"github.com/admaster-ai/admaster-backend/pkg/db"
	"github.com/admaster-ai/admaster-backend/pkg/logger"
	"github.com/admaster-ai/admaster-backend/pkg/metrics"
	"github.com/admaster-ai/admaster-backend/pkg/redis"
)

type credentialVerifier interface {
	Verify(ctx context.Context, rawToken string) (*identity.Claim, error)
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	appMetrics *metrics.AppMetrics,
	dbP db.Pinger,
	redisP redis.Pinger,
	verifier credentialVerifier,
	directorySvc directory.Service,
	webhookVerifier *identitywebhook.Verifier,
	webhookSvc *identitywebhook.Service,
	replayGuard *identitywebhook.ReplayGuard,
	businessSvc businesses.Service,
	brandSvc brands.Service,
	campaignSvc campaigns.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(appMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Get("/readyz", controllers.HealthReady(cfg, logg, dbP, redisP))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/webhooks/identity", webhookcontrollers.IdentityWebhook(webhookSvc, webhookVerifier, replayGuard, logg, appMetrics))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(verifier, directorySvc, logg, appMetrics))

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", controllers.CurrentUser(logg))
				r.Get("/profile", controllers.CurrentUserProfile(businessSvc, logg))
			})

			r.Route("/businesses", func(r chi.Router) {
				r.Post("/", controllers.BusinessCreate(businessSvc, logg))
				r.Get("/", controllers.BusinessList(businessSvc, logg))
				r.Get("/check/has-business", controllers.BusinessOwnershipCheck(businessSvc, logg))
				r.Route("/{businessID}", func(r chi.Router) {
					r.Get("/", controllers.BusinessDetail(businessSvc, logg))
					r.Put("/", controllers.BusinessUpdate(businessSvc, logg))
					r.Delete("/", controllers.BusinessDelete(businessSvc, logg))
					r.Route("/brand", func(r chi.Router) {
						r.Get("/", controllers.BrandFetch(brandSvc, logg))
						r.Put("/", controllers.BrandUpdate(brandSvc, logg))
						r.Post("/complete", controllers.BrandComplete(brandSvc, logg))
					})
				})
			})

			r.Route("/campaigns", func(r chi.Router) {
				r.Post("/", controllers.CampaignCreate(campaignSvc, logg))
				r.Get("/", controllers.CampaignList(campaignSvc, logg))
				r.Route("/{campaignID}", func(r chi.Router) {
					r.Get("/", controllers.CampaignDetail(campaignSvc, logg))
					r.Patch("/status", controllers.CampaignUpdateStatus(campaignSvc, logg))
					r.Delete("/", controllers.CampaignDelete(campaignSvc, logg))
				})
			})
		})
	})

	return r
}
