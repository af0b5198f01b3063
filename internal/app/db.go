package app

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/realbreda/clubsite/internal/config"
	"github.com/realbreda/clubsite/internal/domain/player"
	"github.com/realbreda/clubsite/internal/domain/playerstats"
	"github.com/realbreda/clubsite/internal/domain/user"
	"github.com/realbreda/clubsite/internal/infrastructure/repository/memory"
	"github.com/realbreda/clubsite/internal/infrastructure/repository/postgres"
	"github.com/realbreda/clubsite/internal/platform/logging"
)

// buildRepositories selects the persistence backend. Without DB_URL the
// service runs on seeded in-memory repositories, which is the local dev mode.
func buildRepositories(cfg config.Config, logger *logging.Logger) (
	player.Repository,
	playerstats.Repository,
	user.Repository,
	func(),
	error,
) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("DB_URL not configured, using seeded in-memory repositories")
		return memory.NewPlayerRepository(memory.SeedPlayers()),
			memory.NewPlayerStatsRepository(memory.SeedPlayerStats()),
			memory.NewUserRepository(memory.SeedUsers()),
			nil,
			nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	closeDB := func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("close database", "error", closeErr)
		}
	}

	logger.Info("database connected", "db_name", dbNameFromURL(cfg.DBURL))

	return postgres.NewPlayerRepository(db),
		postgres.NewPlayerStatsRepository(db),
		postgres.NewUserRepository(db),
		closeDB,
		nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Connect("postgres", dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return db, nil
}
