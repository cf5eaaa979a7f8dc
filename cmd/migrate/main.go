package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"catalog-search-backend/config"
	"catalog-search-backend/pkg/logger"
)

// Usage:
//
//	go run ./cmd/migrate        # apply all pending migrations
//	go run ./cmd/migrate down   # roll back the most recent migration
func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	m, err := migrate.New(
		fmt.Sprintf("file://%s", cfg.MigrationsPath),
		pgxURL(cfg.DBUrl),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize migrator")
	}
	defer m.Close()

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	default:
		log.Fatal().Str("direction", direction).Msg("Unknown migration direction, expected 'up' or 'down'")
	}

	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("No migrations to apply")
			return
		}
		log.Fatal().Err(err).Msg("Migration failed")
	}

	version, dirty, _ := m.Version()
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migration applied")
}

// pgxURL rewrites a postgres:// DSN to the pgx5:// scheme the
// golang-migrate pgx/v5 driver registers itself under.
func pgxURL(dsn string) string {
	if strings.HasPrefix(dsn, "postgresql://") {
		return "pgx5://" + strings.TrimPrefix(dsn, "postgresql://")
	}
	if strings.HasPrefix(dsn, "postgres://") {
		return "pgx5://" + strings.TrimPrefix(dsn, "postgres://")
	}
	return dsn
}
