package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/realbreda/clubsite/internal/domain/playerstats"
	qb "github.com/realbreda/clubsite/internal/platform/querybuilder"
)

const playerStatsUpsertSuffix = `ON CONFLICT (player_id, league)
DO UPDATE SET
    appearances = EXCLUDED.appearances,
    goals = EXCLUDED.goals,
    assists = EXCLUDED.assists,
    clean_sheets = EXCLUDED.clean_sheets,
    motm_awards = EXCLUDED.motm_awards,
    rating = EXCLUDED.rating,
    updated_at = EXCLUDED.updated_at`

type PlayerStatsRepository struct {
	db *sqlx.DB
}

var playerStatsSelectColumns = []string{
	"player_id",
	"league",
	"appearances",
	"goals",
	"assists",
	"clean_sheets",
	"motm_awards",
	"rating::text AS rating",
	"updated_at",
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) ListAll(ctx context.Context) ([]playerstats.Row, error) {
	query, args, err := qb.Select(playerStatsSelectColumns...).From("player_stats").
		OrderBy("player_id ASC", "league ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player stats query: %w", err)
	}

	var rows []playerStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player stats: %w", err)
	}

	out := make([]playerstats.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerStatsRepository) Upsert(ctx context.Context, row playerstats.Row) error {
	updatedAt := row.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	query, args, err := qb.InsertModel(
		"player_stats",
		newPlayerStatsInsertModel(row.PlayerID, row.League, row.Line, updatedAt),
		playerStatsUpsertSuffix,
	)
	if err != nil {
		return fmt.Errorf("build upsert player stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player stats player=%s league=%s: %w", row.PlayerID, row.League, err)
	}
	return nil
}

// UpsertBoth writes both league rows for one player in a single transaction
// so a partial update can never be observed.
func (r *PlayerStatsRepository) UpsertBoth(ctx context.Context, playerID string, eafc, competitive playerstats.StatLine) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert player stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	updatedAt := time.Now().UTC()
	lines := []struct {
		league playerstats.League
		line   playerstats.StatLine
	}{
		{league: playerstats.LeagueEAFC, line: eafc},
		{league: playerstats.LeagueCompetitive, line: competitive},
	}
	for _, item := range lines {
		query, args, err := qb.InsertModel(
			"player_stats",
			newPlayerStatsInsertModel(playerID, item.league, item.line, updatedAt),
			playerStatsUpsertSuffix,
		)
		if err != nil {
			return fmt.Errorf("build upsert player stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert player stats player=%s league=%s: %w", playerID, item.league, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert player stats tx: %w", err)
	}
	return nil
}
