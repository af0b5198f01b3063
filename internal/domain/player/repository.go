package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	// ListByJerseyNumber returns the full roster ordered by jersey number ascending.
	ListByJerseyNumber(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
}
