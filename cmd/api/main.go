package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/admaster-ai/admaster-backend/api/routes"
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
	"github.com/admaster-ai/admaster-backend/pkg/migrate"
	"github.com/admaster-ai/admaster-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	appMetrics := metrics.NewAppMetrics(prometheus.DefaultRegisterer)

	keyCache, err := identity.NewKeyCache(identity.KeyCacheOptions{
		JWKSURL:         cfg.Identity.JWKSURL,
		FetchTimeout:    cfg.Identity.FetchTimeout,
		RefreshAttempts: cfg.Identity.RefreshAttempts,
		RefreshCooldown: cfg.Identity.RefreshCooldown,
		Metrics:         appMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create jwks key cache", err)
		os.Exit(1)
	}

	verifier, err := identity.NewVerifier(keyCache, identity.VerifierOptions{
		Issuer:            cfg.Identity.Issuer,
		AuthorizedParties: cfg.Identity.AuthorizedParties,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create credential verifier", err)
		os.Exit(1)
	}

	directorySvc, err := directory.NewService(directory.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create user directory", err)
		os.Exit(1)
	}

	webhookVerifier, err := identitywebhook.NewVerifier(cfg.Webhook.SigningSecret, cfg.Webhook.Tolerance)
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook verifier", err)
		os.Exit(1)
	}

	webhookSvc, err := identitywebhook.NewService(directorySvc, appMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook service", err)
		os.Exit(1)
	}

	replayGuard, err := identitywebhook.NewReplayGuard(redisClient, cfg.Webhook.ReplayTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook replay guard", err)
		os.Exit(1)
	}

	businessRepo := businesses.NewRepository(dbClient.DB())

	businessSvc, err := businesses.NewService(businessRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create business service", err)
		os.Exit(1)
	}

	brandSvc, err := brands.NewService(brands.NewRepository(dbClient.DB()), businessRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create brand service", err)
		os.Exit(1)
	}

	campaignSvc, err := campaigns.NewService(campaigns.NewRepository(dbClient.DB()), businessRepo, cfg.Campaign)
	if err != nil {
		logg.Error(context.Background(), "failed to create campaign service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			appMetrics,
			dbClient,
			redisClient,
			verifier,
			directorySvc,
			webhookVerifier,
			webhookSvc,
			replayGuard,
			businessSvc,
			brandSvc,
			campaignSvc,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
