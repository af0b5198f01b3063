package memory

import (
	"context"
	"sync"

	"github.com/realbreda/clubsite/internal/domain/user"
)

type UserRepository struct {
	mu         sync.RWMutex
	byID       map[string]user.Profile
	byUsername map[string]user.Profile
}

func NewUserRepository(profiles []user.Profile) *UserRepository {
	byID := make(map[string]user.Profile, len(profiles))
	byUsername := make(map[string]user.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
		byUsername[p.Username] = p
	}

	return &UserRepository{
		byID:       byID,
		byUsername: byUsername,
	}
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[userID]
	return p, ok, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (user.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUsername[username]
	return p, ok, nil
}
