package migrate

import (
	"context"
	"fmt"

	"github.com/admaster-ai/admaster-backend/pkg/config"
	"github.com/admaster-ai/admaster-backend/pkg/db"
	"github.com/admaster-ai/admaster-backend/pkg/logger"
)

// MaybeRunDev applies pending migrations at startup. It only fires in dev
// with the auto-migrate flag set, and only against Postgres since that is
// the dialect goose is pinned to.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.Flags.AutoMigrate {
		return nil
	}
	if cfg.DB.Driver != "" && cfg.DB.Driver != "postgres" {
		logg.Warn(ctx, fmt.Sprintf("auto-migrate skipped: driver %q is not postgres", cfg.DB.Driver))
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	logg.Info(ctx, "applying pending migrations")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("auto-migrate up: %w", err)
	}

	logg.Info(ctx, "schema is up to date")
	return nil
}
