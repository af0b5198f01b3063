package postgres

import (
	"database/sql"
	"time"

	"github.com/realbreda/clubsite/internal/domain/player"
)

type playerTableModel struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Position     string         `db:"position"`
	JerseyNumber int            `db:"jersey_number"`
	ProfileImage sql.NullString `db:"profile_image"`
	OwnerID      sql.NullString `db:"owner_id"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:           m.ID,
		Name:         m.Name,
		Position:     player.Position(m.Position),
		JerseyNumber: m.JerseyNumber,
		ProfileImage: nullStringToString(m.ProfileImage),
		OwnerID:      nullStringToString(m.OwnerID),
		CreatedAt:    m.CreatedAt,
	}
}

func nullStringToString(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return value.String
}
