package postgres

import (
	"database/sql"
	"time"

	"github.com/realbreda/clubsite/internal/domain/user"
)

type userTableModel struct {
	ID            string         `db:"id"`
	Username      string         `db:"username"`
	DiscordID     sql.NullString `db:"discord_id"`
	Role          string         `db:"role"`
	OwnedPlayerID sql.NullString `db:"owned_player_id"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (m userTableModel) toDomain() user.Profile {
	return user.Profile{
		ID:            m.ID,
		Username:      m.Username,
		DiscordID:     nullStringToString(m.DiscordID),
		Role:          user.Role(m.Role),
		OwnedPlayerID: nullStringToString(m.OwnedPlayerID),
		CreatedAt:     m.CreatedAt,
	}
}
