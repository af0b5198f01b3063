package user

import "context"

// Repository describes profile lookups needed by the session resolver.
type Repository interface {
	GetByID(ctx context.Context, userID string) (Profile, bool, error)
	GetByUsername(ctx context.Context, username string) (Profile, bool, error)
}
