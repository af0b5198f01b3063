package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/realbreda/clubsite/internal/domain/user"
	qb "github.com/realbreda/clubsite/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

var userSelectColumns = []string{
	"id",
	"username",
	"discord_id",
	"role",
	"owned_player_id",
	"created_at",
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.Profile, bool, error) {
	return r.getOne(ctx, qb.Eq("id", userID))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.Profile, bool, error) {
	return r.getOne(ctx, qb.Eq("username", username))
}

func (r *UserRepository) getOne(ctx context.Context, condition qb.Condition) (user.Profile, bool, error) {
	query, args, err := qb.Select(userSelectColumns...).From("users").
		Where(condition).
		Limit(1).
		ToSQL()
	if err != nil {
		return user.Profile{}, false, fmt.Errorf("build select user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Profile{}, false, nil
		}
		return user.Profile{}, false, fmt.Errorf("select user: %w", err)
	}

	return row.toDomain(), true, nil
}
