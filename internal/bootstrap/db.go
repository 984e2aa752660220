package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fmi-projects/project-management-api/config"
	"github.com/fmi-projects/project-management-api/internal/storage/postgres"
)

// OpenDB connects to Postgres and, when configured, applies the embedded
// schema.
func OpenDB(ctx context.Context, cfg *config.DatabaseConfig, log zerolog.Logger) (*sql.DB, error) {
	db, err := postgres.NewConnection(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db migrate: %w", err)
		}
		log.Info().Msg("database schema applied")
	}

	return db, nil
}
