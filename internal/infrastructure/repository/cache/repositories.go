package cache

import (
	"context"

	"github.com/realbreda/clubsite/internal/domain/player"
	"github.com/realbreda/clubsite/internal/domain/playerstats"
	"github.com/realbreda/clubsite/internal/domain/user"
	basecache "github.com/realbreda/clubsite/internal/platform/cache"
)

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListByJerseyNumber(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list", func(ctx context.Context) (any, error) {
		items, err := r.next.ListByJerseyNumber(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	key := "player:id:" + playerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

type PlayerStatsRepository struct {
	next  playerstats.Repository
	cache *basecache.Store
}

func NewPlayerStatsRepository(next playerstats.Repository, cache *basecache.Store) *PlayerStatsRepository {
	return &PlayerStatsRepository{next: next, cache: cache}
}

func (r *PlayerStatsRepository) ListAll(ctx context.Context) ([]playerstats.Row, error) {
	v, err := r.cache.GetOrLoad(ctx, "player-stats:list", func(ctx context.Context) (any, error) {
		items, err := r.next.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return append([]playerstats.Row(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]playerstats.Row)
	return append([]playerstats.Row(nil), items...), nil
}

func (r *PlayerStatsRepository) Upsert(ctx context.Context, row playerstats.Row) error {
	if err := r.next.Upsert(ctx, row); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "player-stats:")
	return nil
}

func (r *PlayerStatsRepository) UpsertBoth(ctx context.Context, playerID string, eafc, competitive playerstats.StatLine) error {
	if err := r.next.UpsertBoth(ctx, playerID, eafc, competitive); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "player-stats:")
	return nil
}

type UserRepository struct {
	next  user.Repository
	cache *basecache.Store
}

func NewUserRepository(next user.Repository, cache *basecache.Store) *UserRepository {
	return &UserRepository{next: next, cache: cache}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.Profile, bool, error) {
	key := "user:id:" + userID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return cachedProfile{value: item, exists: exists}, nil
	})
	if err != nil {
		return user.Profile{}, false, err
	}

	cached, _ := v.(cachedProfile)
	return cached.value, cached.exists, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.Profile, bool, error) {
	key := "user:username:" + username
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		return cachedProfile{value: item, exists: exists}, nil
	})
	if err != nil {
		return user.Profile{}, false, err
	}

	cached, _ := v.(cachedProfile)
	return cached.value, cached.exists, nil
}

type cachedProfile struct {
	value  user.Profile
	exists bool
}
