package playerstats

import "context"

type Repository interface {
	// ListAll returns every statistics row across both leagues.
	ListAll(ctx context.Context) ([]Row, error)
	// Upsert writes one row keyed by (player_id, league); a conflict
	// overwrites the counters and bumps updated_at.
	Upsert(ctx context.Context, row Row) error
	// UpsertBoth writes both league rows for one player atomically.
	UpsertBoth(ctx context.Context, playerID string, eafc, competitive StatLine) error
}
