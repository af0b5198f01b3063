package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/realbreda/clubsite/internal/domain/playerstats"
)

type statsKey struct {
	playerID string
	league   playerstats.League
}

type PlayerStatsRepository struct {
	mu   sync.RWMutex
	rows map[statsKey]playerstats.Row
}

func NewPlayerStatsRepository(rows []playerstats.Row) *PlayerStatsRepository {
	index := make(map[statsKey]playerstats.Row, len(rows))
	for _, row := range rows {
		index[statsKey{playerID: row.PlayerID, league: row.League}] = row
	}
	return &PlayerStatsRepository{rows: index}
}

func (r *PlayerStatsRepository) ListAll(_ context.Context) ([]playerstats.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.Row, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PlayerID != out[j].PlayerID {
			return out[i].PlayerID < out[j].PlayerID
		}
		return out[i].League < out[j].League
	})
	return out, nil
}

func (r *PlayerStatsRepository) Upsert(_ context.Context, row playerstats.Row) error {
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	r.rows[statsKey{playerID: row.PlayerID, league: row.League}] = row
	r.mu.Unlock()
	return nil
}

func (r *PlayerStatsRepository) UpsertBoth(_ context.Context, playerID string, eafc, competitive playerstats.StatLine) error {
	updatedAt := time.Now().UTC()

	r.mu.Lock()
	r.rows[statsKey{playerID: playerID, league: playerstats.LeagueEAFC}] = playerstats.Row{
		PlayerID:  playerID,
		League:    playerstats.LeagueEAFC,
		Line:      eafc,
		UpdatedAt: updatedAt,
	}
	r.rows[statsKey{playerID: playerID, league: playerstats.LeagueCompetitive}] = playerstats.Row{
		PlayerID:  playerID,
		League:    playerstats.LeagueCompetitive,
		Line:      competitive,
		UpdatedAt: updatedAt,
	}
	r.mu.Unlock()
	return nil
}
