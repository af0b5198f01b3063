package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/realbreda/clubsite/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players []player.Player
	index   map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	sorted := append([]player.Player(nil), players...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].JerseyNumber < sorted[j].JerseyNumber
	})

	index := make(map[string]player.Player, len(sorted))
	for _, p := range sorted {
		index[p.ID] = p
	}

	return &PlayerRepository{
		players: sorted,
		index:   index,
	}
}

func (r *PlayerRepository) ListByJerseyNumber(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	out = append(out, r.players...)
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[playerID]
	return p, ok, nil
}
